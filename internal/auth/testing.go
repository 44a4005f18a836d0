package auth

import (
	"context"
	"net/http"
)

// WithPrincipal returns a context carrying the given principal. Test helper
// for exercising handlers without running the full middleware chain.
func WithPrincipal(ctx context.Context, pr *Principal) context.Context {
	return context.WithValue(ctx, principalKey, pr)
}

// RequestWithPrincipal attaches a principal to the request context.
func RequestWithPrincipal(r *http.Request, pr *Principal) *http.Request {
	return r.WithContext(WithPrincipal(r.Context(), pr))
}
