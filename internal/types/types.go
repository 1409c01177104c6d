// Package types holds the data structures shared by the handlers, the
// validation pipeline and the storage layer. Keeping them in one place
// prevents import cycles.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// Text is a string that also accepts a bare JSON number, so "age": 34 and
// "age": "34" decode to the same value.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// RegistrationRequest is the raw registration form as submitted by the
// client. Nothing in it has been validated.
//
// The label tag is the human-readable field name used in "<label> is
// required" messages.
type RegistrationRequest struct {
	Name           string `json:"name"           validate:"required" label:"Name"`
	Address        string `json:"address"        validate:"required" label:"Address"`
	Email          string `json:"email"          validate:"required" label:"Email"`
	DateOfBirth    string `json:"dateOfbirth"    validate:"required" label:"Date of birth"`
	Gender         string `json:"gender"         validate:"required" label:"Gender"`
	Age            Text   `json:"age"            validate:"required" label:"Age"`
	CardHolderName string `json:"cardHolderName" validate:"required" label:"Card holder name"`
	CardNumber     string `json:"cardNumber"     validate:"required" label:"Card number"`
	ExpiryDate     string `json:"expiryDate"     validate:"required" label:"Expiry date"`
	CVV            Text   `json:"cvv"            validate:"required" label:"CVV"`
	TimeStamp      string `json:"timeStamp"`
	Phone          string `json:"phone"          validate:"required" label:"Phone"`
	City           string `json:"city"           validate:"required" label:"City"`
}

// RegistrationRequestFromForm builds a request from URL-encoded form values
// using the same keys as the JSON body.
func RegistrationRequestFromForm(form url.Values) RegistrationRequest {
	return RegistrationRequest{
		Name:           form.Get("name"),
		Address:        form.Get("address"),
		Email:          form.Get("email"),
		DateOfBirth:    form.Get("dateOfbirth"),
		Gender:         form.Get("gender"),
		Age:            Text(form.Get("age")),
		CardHolderName: form.Get("cardHolderName"),
		CardNumber:     form.Get("cardNumber"),
		ExpiryDate:     form.Get("expiryDate"),
		CVV:            Text(form.Get("cvv")),
		TimeStamp:      form.Get("timeStamp"),
		Phone:          form.Get("phone"),
		City:           form.Get("city"),
	}
}

// Customer is a validated, normalized registration ready to be stored.
// CardNumber has its separators stripped and TimeStamp is in
// "YYYY-MM-DD HH:MM:SS" UTC form.
type Customer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"dateOfbirth"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	TimeStamp      string `json:"timeStamp"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
}
