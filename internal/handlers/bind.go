// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"codeberg.org/oliverandrich/go-accounts/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// bindJSON decodes the request body into dst and rejects unknown properties.
// An empty body leaves dst untouched so field validation reports what is missing.
func bindJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &auth.ValidationErrors{Errors: []auth.ValidationError{{
			Field:   typeErr.Field,
			Code:    "invalid_input",
			Message: "Invalid input provided",
		}}}
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		field = strings.Trim(field, `"`)
		return &auth.ValidationErrors{Errors: []auth.ValidationError{{
			Field:   field,
			Code:    "property_not_allowed",
			Message: "property " + field + " should not exist",
		}}}
	}

	return &auth.ValidationErrors{Errors: []auth.ValidationError{{
		Code:    "invalid_body",
		Message: "Request body must be a JSON object.",
	}}}
}
