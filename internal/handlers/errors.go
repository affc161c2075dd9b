// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/go-accounts/internal/i18n"
	"codeberg.org/oliverandrich/go-accounts/internal/services/auth"
	"codeberg.org/oliverandrich/go-accounts/internal/services/session"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every error returned by a handler or middleware as
// an envelope. Unknown errors become a generic 500 and are only logged.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	status, body := classify(ctx, err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request_failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		slog.ErrorContext(ctx, "failed to write error response", "error", writeErr)
	}
}

func classify(ctx context.Context, err error) (int, Envelope) {
	var verr *auth.ValidationErrors
	if errors.As(err, &verr) {
		messages := make([]string, len(verr.Errors))
		for i, e := range verr.Errors {
			messages[i] = translateViolation(ctx, e)
		}
		return http.StatusBadRequest, Failure(i18n.T(ctx, "invalid_input"), messages)
	}

	switch {
	case errors.Is(err, auth.ErrEmailAlreadyRegistered):
		return http.StatusBadRequest, Failure(i18n.T(ctx, "email_already_registered"), nil)
	case errors.Is(err, auth.ErrEmailNotRegistered):
		return http.StatusBadRequest, Failure(i18n.T(ctx, "email_not_registered"), nil)
	case errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusUnauthorized, Failure(i18n.T(ctx, "invalid_password"), nil)
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusUnauthorized, Failure(i18n.T(ctx, "email_not_registered"), nil)
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrInvalidSession):
		return http.StatusUnauthorized, Failure(i18n.T(ctx, "unauthorized"), nil)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, Failure(httpErrorMessage(ctx, he), nil)
	}

	return http.StatusInternalServerError, Failure(i18n.T(ctx, "backend_general"), nil)
}

func httpErrorMessage(ctx context.Context, he *echo.HTTPError) string {
	switch he.Code {
	case http.StatusNotFound:
		return i18n.T(ctx, "route_not_found")
	case http.StatusUnauthorized:
		return i18n.T(ctx, "unauthorized")
	}
	if he.Code >= http.StatusInternalServerError {
		return i18n.T(ctx, "backend_general")
	}
	if msg, ok := he.Message.(string); ok && msg != "" {
		return msg
	}
	return i18n.T(ctx, "something_went_wrong")
}

func translateViolation(ctx context.Context, v auth.ValidationError) string {
	msg := i18n.TData(ctx, v.Code, map[string]any{"Field": v.Field})
	if msg == v.Code {
		return v.Message
	}
	return msg
}
