// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/auth"
)

type ownerKey struct{}

// RequireOwner rejects requests without a valid owner bearer token and puts
// the owner id in the request context.
func RequireOwner(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				WriteError(w, r, apperr.Unauthorized(apperr.MsgUnauthorized))
				return
			}
			ownerID, err := auth.ParseOwnerToken(raw, secret)
			if err != nil {
				WriteError(w, r, apperr.Unauthorized(apperr.MsgUnauthorized))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), ownerID)))
		})
	}
}

// WithOwner returns a context carrying ownerID.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerID returns the authenticated owner, or "" outside RequireOwner.
func OwnerID(ctx context.Context) string {
	id, _ := ctx.Value(ownerKey{}).(string)
	return id
}
