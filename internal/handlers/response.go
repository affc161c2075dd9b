// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/go-accounts/internal/i18n"
	"github.com/labstack/echo/v4"
)

// Envelope wraps every API response.
type Envelope struct {
	Data      any      `json:"Data"`
	Message   string   `json:"Message"`
	Errors    []string `json:"Errors"`
	IsSuccess bool     `json:"IsSuccess"`
}

// Success writes a 200 envelope. A nil data is sent as an empty object.
func Success(c echo.Context, data any) error {
	if data == nil {
		data = struct{}{}
	}
	return c.JSON(http.StatusOK, Envelope{
		IsSuccess: true,
		Message:   i18n.T(c.Request().Context(), "success_general"),
		Data:      data,
		Errors:    []string{},
	})
}

// Failure builds an error envelope.
func Failure(message string, errs []string) Envelope {
	if errs == nil {
		errs = []string{}
	}
	return Envelope{
		IsSuccess: false,
		Message:   message,
		Data:      struct{}{},
		Errors:    errs,
	}
}
