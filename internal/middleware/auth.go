package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/onemarketph/backoffice/internal/model"
)

// ErrMissingAuthHeader is returned when the Authorization header is absent
// or not a bearer credential.
var ErrMissingAuthHeader = errors.New("missing or malformed authorization header")

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", ErrMissingAuthHeader
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}

type contextKey string

const contextKeyAdmin contextKey = "admin"

// WithAdmin stores the resolved admin on the request context.
func WithAdmin(ctx context.Context, admin *model.Admin) context.Context {
	return context.WithValue(ctx, contextKeyAdmin, admin)
}

// AdminFromContext returns the authenticated admin, or nil outside the gate.
func AdminFromContext(ctx context.Context) *model.Admin {
	admin, _ := ctx.Value(contextKeyAdmin).(*model.Admin)
	return admin
}
