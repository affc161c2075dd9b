// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session carries signed tokens in an encrypted, HTTP-only cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/go-accounts/internal/config"
	"codeberg.org/oliverandrich/go-accounts/internal/services/token"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// TokenCodec issues and verifies the token stored in the cookie.
type TokenCodec interface {
	Issue(claims token.Claims) (string, error)
	Verify(tokenString string) (*token.Claims, error)
}

// Manager handles the session cookie.
type Manager struct {
	tokens     TokenCodec
	cipher     Cipher
	cookieName string
	secure     bool
}

// NewManager creates a session manager. secure sets the Secure flag on cookies.
func NewManager(cfg *config.SessionConfig, tokens TokenCodec, cipher Cipher, secure bool) *Manager {
	return &Manager{
		tokens:     tokens,
		cipher:     cipher,
		cookieName: cfg.CookieName,
		secure:     secure,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Create issues a token for claims and returns the cookie carrying it.
func (m *Manager) Create(claims token.Claims) (*http.Cookie, error) {
	signed, err := m.tokens.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	value, err := m.cipher.Encrypt(signed)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt token: %w", err)
	}

	return m.cookie(value), nil
}

// Parse returns the verified claims carried by the request's session cookie.
func (m *Manager) Parse(r *http.Request) (*token.Claims, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	signed, err := m.cipher.Decrypt(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	claims, err := m.tokens.Verify(signed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	return claims, nil
}

// Clear returns a cookie that removes the session cookie from the browser.
func (m *Manager) Clear() *http.Cookie {
	c := m.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
