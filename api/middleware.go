package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jmcleod/lockbox/internal/util"
)

type contextKey int

const requestIDKey contextKey = iota

// requestID tags every request with a UUID so audit entries can be
// correlated across log lines.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// authMiddleware enforces bearer-token authentication when a token hash
// is configured. Without one the API is open, which is only sensible on
// a loopback deployment.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.tokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			a.audit.log(AuditAuthFailure, r)
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		match, err := util.VerifyToken(token, a.tokenHash)
		if err != nil || !match {
			a.audit.log(AuditAuthFailure, r)
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
