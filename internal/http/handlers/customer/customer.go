// Package customer contains the HTTP handler for customer registration.
//
// Handlers follow the closure/factory pattern: Register is called once at
// startup with its dependencies and returns the http.HandlerFunc that runs
// on every request.
package customer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/aanand-mishra/customers-api/internal/metrics"
	"github.com/aanand-mishra/customers-api/internal/storage"
	"github.com/aanand-mishra/customers-api/internal/types"
	"github.com/aanand-mishra/customers-api/internal/utils/response"
	"github.com/aanand-mishra/customers-api/internal/validation"
)

// Client-facing error messages.
const (
	MsgEmailRegistered = "Email already registered"
	MsgDatabaseError   = "Database error occurred: "
	MsgInternalError   = "Internal server error"
	MsgBodyTooLarge    = "request body too large"
)

// Deps are the collaborators of the registration handler.
type Deps struct {
	Storage   storage.Storage
	Validator *validation.Validator
	Metrics   *metrics.Metrics
	Log       *slog.Logger

	// Now is the reference time for age and expiry checks.
	Now func() time.Time
}

// Register handles POST /api/customer/register.
//
// Request body (JSON or URL-encoded form):
//
//	{ "name": "Jane Doe", "email": "jane@example.com", "dateOfbirth": "1990-05-01", ... }
//
// Responses:
//
//	201 Created      {"message": "customer Jane Doe has registered", "customerId": 1}
//	400 Bad Request  {"errors": [...]} when validation fails
//	400 Bad Request  {"error": "Email already registered"}
//	400 Bad Request  {"error": "Database error occurred: <message>"}
//	500 Internal     {"error": "Internal server error"}
func Register(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				d.Log.Error("server error",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())))
				d.Metrics.IncRegistration(metrics.OutcomeInternal)
				_ = response.WriteJSON(w, http.StatusInternalServerError,
					response.GeneralError(MsgInternalError))
			}
		}()

		req, err := decodeRequest(r)
		if err != nil {
			d.Metrics.IncRegistration(metrics.OutcomeInvalid)
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				_ = response.WriteJSON(w, http.StatusRequestEntityTooLarge,
					response.GeneralError(MsgBodyTooLarge))
				return
			}
			_ = response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError("invalid request body: "+err.Error()))
			return
		}

		customer, errs := d.Validator.Validate(req, d.Now())
		if len(errs) > 0 {
			d.Log.Debug("registration rejected", slog.Int("errors", len(errs)))
			d.Metrics.IncRegistration(metrics.OutcomeInvalid)
			d.Metrics.IncValidationFailures(errs)
			_ = response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		id, err := d.Storage.CreateCustomer(r.Context(), customer)
		if err != nil {
			d.Log.Error("database error", slog.String("error", err.Error()))

			if errors.Is(err, storage.ErrEmailExists) {
				d.Metrics.IncRegistration(metrics.OutcomeDuplicate)
				_ = response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(MsgEmailRegistered))
				return
			}

			msg := err.Error()
			var queryErr *storage.QueryError
			if errors.As(err, &queryErr) {
				msg = queryErr.Message()
			}
			d.Metrics.IncRegistration(metrics.OutcomeStorageError)
			_ = response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(MsgDatabaseError+msg))
			return
		}

		d.Log.Info("customer registered", slog.Int64("id", id))
		d.Metrics.IncRegistration(metrics.OutcomeCreated)

		_ = response.WriteJSON(w, http.StatusCreated, response.Registered{
			Message:    fmt.Sprintf("customer %s has registered", customer.Name),
			CustomerID: id,
		})
	}
}

// decodeRequest reads a URL-encoded form or, for any other content type,
// a JSON object. An empty body decodes to an empty request so every
// required field is reported.
func decodeRequest(r *http.Request) (types.RegistrationRequest, error) {
	var req types.RegistrationRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		return types.RegistrationRequestFromForm(r.PostForm), nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return req, nil
	}
	return req, err
}
