// Package validation turns a raw registration form into a normalized
// customer record, or into the complete list of reasons it was rejected.
//
// Every rule runs on every request. A form with five problems gets five
// messages back, in a fixed order, rather than only the first.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/customers-api/internal/types"
)

// Messages returned to the client. They are part of the API contract.
const (
	MsgInvalidEmail       = "Invalid email format"
	MsgInvalidCardNumber  = "Invalid credit card number format"
	MsgDateOfBirthFormat  = "Date of birth must be in YYYY-MM-DD format"
	MsgInvalidDateOfBirth = "Invalid date of birth"
	MsgAgeMismatch        = "Age does not match date of birth"
	MsgExpiryFormat       = "Expiry date must be in MM/YY format"
	MsgExpiryPast         = "Expiry date must be in the future"
	MsgInvalidCVV         = "CVV must be 3 or 4 digits"
	MsgAgeNotPositive     = "Age must be a positive number"
	MsgInvalidTimestamp   = "Invalid timestamp format"
	MsgInvalidPhone       = "Invalid phone number format"
)

// Validator runs the registration validation pipeline. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator.
func New() *Validator {
	v := validator.New()
	// Report fields by their label so missing-field messages read
	// "Date of birth is required" instead of "DateOfBirth".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("label")
	})
	return &Validator{validate: v}
}

// Validate checks req as of now. When the returned slice is empty the
// customer is ready to be stored; otherwise the customer is the zero value
// and the slice holds every failure in pipeline order.
func (v *Validator) Validate(req types.RegistrationRequest, now time.Time) (types.Customer, []string) {
	errs := v.missingFields(req)

	if !IsValidEmail(req.Email) {
		errs = append(errs, MsgInvalidEmail)
	}

	cardNumber := NormalizeCardNumber(req.CardNumber)
	if !IsValidCardNumber(cardNumber) {
		errs = append(errs, MsgInvalidCardNumber)
	}

	errs = append(errs, checkDateOfBirth(req.DateOfBirth, string(req.Age), now)...)

	if month, year, ok := ParseExpiry(req.ExpiryDate); !ok {
		errs = append(errs, MsgExpiryFormat)
	} else if ExpiryPassed(month, year, now) {
		errs = append(errs, MsgExpiryPast)
	}

	if !IsValidCVV(string(req.CVV)) {
		errs = append(errs, MsgInvalidCVV)
	}

	if !IsPositiveAge(string(req.Age)) {
		errs = append(errs, MsgAgeNotPositive)
	}

	timestamp, err := NormalizeTimestamp(req.TimeStamp, now)
	if err != nil {
		errs = append(errs, MsgInvalidTimestamp)
	}

	if !IsValidPhone(req.Phone) {
		errs = append(errs, MsgInvalidPhone)
	}

	if len(errs) > 0 {
		return types.Customer{}, errs
	}

	age, _ := ParseAge(string(req.Age))
	return types.Customer{
		Name:           req.Name,
		Address:        req.Address,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Age:            age,
		CardHolderName: req.CardHolderName,
		CardNumber:     cardNumber,
		ExpiryDate:     req.ExpiryDate,
		CVV:            string(req.CVV),
		TimeStamp:      timestamp,
		Phone:          req.Phone,
		City:           req.City,
	}, nil
}

func (v *Validator) missingFields(req types.RegistrationRequest) []string {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
	}
	return msgs
}

// checkDateOfBirth validates the date of birth and, when it parses, that
// the submitted age agrees with it. An age that is not a number is left to
// the positivity check.
func checkDateOfBirth(dateOfBirth, submittedAge string, now time.Time) []string {
	if !HasDateShape(dateOfBirth) {
		return []string{MsgDateOfBirthFormat}
	}

	dob, err := ParseDateOfBirth(dateOfBirth)
	if err != nil {
		return []string{MsgInvalidDateOfBirth}
	}

	age, err := ParseAge(submittedAge)
	if err != nil {
		return nil
	}
	if !AgeMatches(AgeOn(dob, now), age) {
		return []string{MsgAgeMismatch}
	}
	return nil
}
