package testutil

import (
	"context"
	"net/http"
	"time"

	"portal/pkg/requestcontext"
)

// ContextAt returns a background context pinned to a specific instant.
// Service tests use it so derived dates and activity timestamps are stable.
func ContextAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

// WithTime pins the request-scoped clock on an HTTP request.
// This simulates what the requesttime middleware would do.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
