// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models_test

import (
	"encoding/json"
	"testing"

	"codeberg.org/oliverandrich/go-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Profile(t *testing.T) {
	user := &models.User{
		ID:           "6f1c",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
	}

	p := user.Profile()

	assert.Equal(t, models.Profile{
		UserID:    "6f1c",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}, p)
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	user := &models.User{ID: "1", Email: "ada@example.com", PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestProfile_JSONKeys(t *testing.T) {
	data, err := json.Marshal(models.Profile{UserID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"userId":"1","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`, string(data))
}
