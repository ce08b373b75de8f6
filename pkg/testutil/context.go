package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"readiness/pkg/requestcontext"
)

// WithURLParams attaches chi route parameters so handlers can be called
// directly without a router.
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// WithRequestTime pins the request time, as the requesttime middleware would.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID sets the request ID, as the requestid middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
