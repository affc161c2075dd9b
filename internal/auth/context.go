// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"codeberg.org/oliverandrich/go-accounts/internal/ctxkeys"
	"codeberg.org/oliverandrich/go-accounts/internal/services/token"
)

// WithClaims returns a copy of ctx carrying the verified claims.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ctxkeys.Claims{}, claims)
}

// GetClaims returns the verified claims from the context, or nil if not authenticated.
func GetClaims(ctx context.Context) *token.Claims {
	if claims, ok := ctx.Value(ctxkeys.Claims{}).(*token.Claims); ok {
		return claims
	}
	return nil
}

// IsAuthenticated returns true if the context has verified claims.
func IsAuthenticated(ctx context.Context) bool {
	return GetClaims(ctx) != nil
}
