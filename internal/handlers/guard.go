// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/go-accounts/internal/guard"
	"github.com/labstack/echo/v4"
)

// GuardScript serves the client redirect script for policy.
func GuardScript(policy guard.Policy) (echo.HandlerFunc, error) {
	script, err := policy.Script()
	if err != nil {
		return nil, err
	}
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-cache")
		return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", script)
	}, nil
}
