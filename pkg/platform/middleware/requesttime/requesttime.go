// Package requesttime provides middleware for request-scoped time. Every
// operation in a request uses the same "now", and readiness passes derive
// "today" from it.
package requesttime

import (
	"net/http"
	"time"

	"readiness/pkg/requestcontext"
)

// AsOfParam is the query parameter that pins the request date (dd.mm.yyyy).
const AsOfParam = "as_of"

const asOfLayout = "02.01.2006"

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AsOf lets a request evaluate as of another day by passing ?as_of=dd.mm.yyyy.
// Malformed values are rejected with 400 so a typo never silently falls back
// to today. Must run after Middleware.
func AsOf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get(AsOfParam)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		day, err := time.Parse(asOfLayout, raw)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad_request","error_description":"as_of must be in dd.mm.yyyy format"}`))
			return
		}
		ctx := requestcontext.WithTime(r.Context(), day)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
