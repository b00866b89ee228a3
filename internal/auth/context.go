package auth

import (
	"context"
	"strings"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// WithUser attaches the authenticated caller to ctx.
func WithUser(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func UserFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>"
// value, or the value itself when it has no scheme.
func ExtractBearer(header string) string {
	header = strings.TrimSpace(header)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}
