// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Env: EnvLocal},
		Auth:    AuthConfig{Secret: "secret"},
		Session: SessionConfig{CookieName: "accessToken"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Secret = ""

	err := cfg.Validate()

	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestValidate_UnknownEnv(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Env = "staging"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown environment")
}

func TestValidate_MissingCookieName(t *testing.T) {
	cfg := validConfig()
	cfg.Session.CookieName = ""

	assert.Error(t, cfg.Validate())
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{EnvLocal, true},
		{EnvDev, false},
		{EnvUAT, false},
		{EnvProd, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.expected, ServerConfig{Env: tt.env}.IsLocal())
		})
	}
}

func TestAPIPath(t *testing.T) {
	cfg := validConfig()

	cfg.Server.RoutePrefix = "api"
	assert.Equal(t, "/api", cfg.APIPath())

	cfg.Server.RoutePrefix = ""
	assert.Empty(t, cfg.APIPath())
}

func TestSMTPEnabled(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.True(t, SMTPConfig{Host: "smtp.example.com"}.Enabled())
}

func TestFlags(t *testing.T) {
	flags := Flags()

	flagNames := make(map[string]bool)
	for _, f := range flags {
		for _, name := range f.Names() {
			flagNames[name] = true
		}
	}

	assert.True(t, flagNames["host"], "should have host flag")
	assert.True(t, flagNames["port"], "should have port flag")
	assert.True(t, flagNames["env"], "should have env flag")
	assert.True(t, flagNames["route-prefix"], "should have route-prefix flag")
	assert.True(t, flagNames["server-secret"], "should have server-secret flag")
	assert.True(t, flagNames["database-dsn"], "should have database-dsn flag")
	assert.True(t, flagNames["session-cookie-name"], "should have session-cookie-name flag")
	assert.True(t, flagNames["smtp-host"], "should have smtp-host flag")
}

func TestNewFromCLI(t *testing.T) {
	app := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)

			assert.Equal(t, "localhost", cfg.Server.Host)
			assert.Equal(t, 8000, cfg.Server.Port)
			assert.Equal(t, EnvLocal, cfg.Server.Env)
			assert.Equal(t, "api", cfg.Server.RoutePrefix)
			assert.Equal(t, "http://localhost:4200", cfg.Server.AppBaseURL)
			assert.Equal(t, "info", cfg.Log.Level)
			assert.Equal(t, "text", cfg.Log.Format)
			assert.Equal(t, "accessToken", cfg.Session.CookieName)
			assert.Equal(t, 587, cfg.SMTP.Port)
			assert.True(t, cfg.SMTP.TLS)
			assert.Empty(t, cfg.Auth.Secret)

			return nil
		},
	}

	err := app.Run(context.Background(), []string{"test"})
	assert.NoError(t, err)
}

func TestNewFromCLI_WithCustomValues(t *testing.T) {
	app := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)

			assert.Equal(t, "0.0.0.0", cfg.Server.Host)
			assert.Equal(t, 9000, cfg.Server.Port)
			assert.Equal(t, EnvProd, cfg.Server.Env)
			assert.Equal(t, "v2/api", cfg.Server.RoutePrefix)
			assert.Equal(t, "https://app.example.com", cfg.Server.AppBaseURL)
			assert.Equal(t, "top-secret", cfg.Auth.Secret)
			assert.Equal(t, "./data/test.db", cfg.Database.DSN)
			assert.False(t, cfg.Server.IsLocal())

			return nil
		},
	}

	args := []string{
		"test",
		"--host", "0.0.0.0",
		"--port", "9000",
		"--env", "PROD",
		"--route-prefix", "/v2/api/",
		"--app-base-url", "https://app.example.com/",
		"--server-secret", "top-secret",
		"--database-dsn", "./data/test.db",
	}
	err := app.Run(context.Background(), args)
	assert.NoError(t, err)
}
