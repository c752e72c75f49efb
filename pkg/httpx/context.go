package httpx

import (
	"context"

	"github.com/billpoint/billpoint/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
	CtxKeyToken  ctxKey = "token"
)

// UserIDFromContext returns the authenticated account id set by AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}

// ClaimsFromContext returns the verified claims set by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (*jwtx.Claims, bool) {
	v, ok := ctx.Value(CtxKeyClaims).(*jwtx.Claims)
	return v, ok && v != nil
}

// RawTokenFromContext returns the bearer token string set by AuthnMiddleware.
func RawTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyToken).(string)
	return v, ok && v != ""
}
