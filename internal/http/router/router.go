// Package router wires handlers and middleware into the application's
// http.Handler.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/customers-api/internal/config"
	"github.com/aanand-mishra/customers-api/internal/http/handlers/customer"
	"github.com/aanand-mishra/customers-api/internal/http/handlers/home"
	"github.com/aanand-mishra/customers-api/internal/http/middleware"
	"github.com/aanand-mishra/customers-api/internal/metrics"
	"github.com/aanand-mishra/customers-api/internal/storage"
	"github.com/aanand-mishra/customers-api/internal/validation"
)

// New returns the full handler tree.
//
// Route table:
//
//	GET  /                        → greeting
//	POST /api/customer/register   → register a customer
//	GET  /metrics                 → Prometheus metrics
func New(cfg *config.Config, store storage.Storage, m *metrics.Metrics, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", home.New(cfg.Greeting))
	mux.HandleFunc("POST /api/customer/register", customer.Register(customer.Deps{
		Storage:   store,
		Validator: validation.New(),
		Metrics:   m,
		Log:       log,
		Now:       time.Now,
	}))
	mux.Handle("GET /metrics", m.Handler())

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.AllowedOrigin),
		middleware.BodyLimit(cfg.MaxBodyBytes),
		middleware.Latency(m),
	)
}
