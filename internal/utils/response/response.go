// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Error bodies come in two shapes:
//
//	{ "error": "Email already registered" }
//	{ "errors": ["Name is required", "Invalid email format"] }
//
// The first is a single failure, the second the full list produced by the
// validation pipeline.
package response

import (
	"encoding/json"
	"net/http"
)

// Error is the body for a single failure.
type Error struct {
	Error string `json:"error"`
}

// ValidationErrors is the body for a rejected registration.
type ValidationErrors struct {
	Errors []string `json:"errors"`
}

// Message is the body for informational responses.
type Message struct {
	Message string `json:"message"`
}

// Registered is the body returned after a customer is stored.
type Registered struct {
	Message    string `json:"message"`
	CustomerID int64  `json:"customerId"`
}

// WriteJSON writes data as JSON with the given HTTP status code.
//
// Header() → WriteHeader() → body, in that order: once WriteHeader is
// called, headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps a message into the single-error shape.
func GeneralError(msg string) Error {
	return Error{Error: msg}
}

// ValidationError wraps pipeline messages into the error-list shape.
// A nil slice is encoded as an empty array.
func ValidationError(errs []string) ValidationErrors {
	if errs == nil {
		errs = []string{}
	}
	return ValidationErrors{Errors: errs}
}
