// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"

	"codeberg.org/oliverandrich/go-accounts/internal/auth"
	"codeberg.org/oliverandrich/go-accounts/internal/models"
	authsvc "codeberg.org/oliverandrich/go-accounts/internal/services/auth"
	"codeberg.org/oliverandrich/go-accounts/internal/services/session"
	"codeberg.org/oliverandrich/go-accounts/internal/services/token"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for account authentication.
type AuthHandlers struct {
	auth     *authsvc.Service
	sessions *session.Manager
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(svc *authsvc.Service, sess *session.Manager) *AuthHandlers {
	return &AuthHandlers{
		auth:     svc,
		sessions: sess,
	}
}

// Signup registers an account and logs it in.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req authsvc.SignupParams
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := req.Validate().Err(); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return h.startSession(c, user)
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req authsvc.LoginParams
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := req.Validate().Err(); err != nil {
		return err
	}

	user, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return h.startSession(c, user)
}

// Logout clears the session cookie. The token itself stays valid until it expires.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return Success(c, nil)
}

// Profile returns the current user.
func (h *AuthHandlers) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	claims := auth.GetClaims(ctx)
	if claims == nil {
		return session.ErrNoSession
	}

	user, err := h.auth.Profile(ctx, claims.UserID)
	if err != nil {
		return err
	}
	return Success(c, user.Profile())
}

func (h *AuthHandlers) startSession(c echo.Context, user *models.User) error {
	cookie, err := h.sessions.Create(token.Claims{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	c.SetCookie(cookie)
	return Success(c, user.Profile())
}
