// Package api exposes a wallet over HTTP.
//
// The surface is the wallet capability set, one route per operation,
// plus an export endpoint for GetAll. Any wallet.Wallet backend can be
// mounted; the handlers add no storage semantics of their own.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/jmcleod/lockbox/wallet"
)

//go:embed openapi.yaml
var openapiSpec []byte

// API holds the dependencies needed by the REST handlers.
type API struct {
	wallet    wallet.Wallet
	audit     *auditLogger
	tokenHash string
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// WithAuthToken enables bearer-token authentication. tokenHash is an
// argon2id-encoded hash as produced by util.HashToken; the raw token is
// never held by the server.
func WithAuthToken(tokenHash string) Option {
	return func(a *API) {
		a.tokenHash = tokenHash
	}
}

// New creates a new API instance serving w.
func New(w wallet.Wallet, opts ...Option) *API {
	a := &API{wallet: w}
	for _, opt := range opts {
		opt(a)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	return a
}

// Router returns a chi.Router with all API routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/docs",
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/redoc",
	}, nil))

	r.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)

		r.Get("/wallet/keys", a.handleListNames)
		r.Get("/wallet/keys/{name}", a.handleGet)
		r.Head("/wallet/keys/{name}", a.handleContains)
		r.Put("/wallet/keys/{name}", a.handlePut)
		r.Delete("/wallet/keys/{name}", a.handleRemove)
		r.Get("/wallet/export", a.handleExport)
	})

	return r
}
