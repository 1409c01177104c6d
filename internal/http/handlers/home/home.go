// Package home serves the API root.
package home

import (
	"net/http"

	"github.com/aanand-mishra/customers-api/internal/utils/response"
)

// New handles GET / with a fixed greeting.
func New(greeting string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = response.WriteJSON(w, http.StatusOK, response.Message{Message: greeting})
	}
}
