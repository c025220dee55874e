package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// serviceContext derives the context handed to the service. Cancellation is
// not propagated: once admitted, a generation and its retries run to
// completion even if the client goes away. Request-scoped values are kept.
func serviceContext(r *http.Request) context.Context {
	ctx := context.WithoutCancel(r.Context())
	if zlog == nil {
		return ctx
	}
	l := zlog.With().Str("request_id", middleware.GetReqID(ctx)).Logger()
	return l.WithContext(ctx)
}
