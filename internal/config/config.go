// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

// Deployment environments. Cookies are only sent without the Secure flag in EnvLocal.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvUAT   = "uat"
	EnvProd  = "prod"
)

// ErrMissingSecret is returned by Validate when no server secret is configured.
var ErrMissingSecret = errors.New("server secret is required")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Session  SessionConfig
	SMTP     SMTPConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	Env         string // local, dev, uat, prod
	RoutePrefix string // prefix for API routes, e.g. "api"
	AppBaseURL  string // origin of the web client, used for CORS and mail links
	MaxBodySize int    // in MB
}

// IsLocal reports whether the server runs in local development.
func (s ServerConfig) IsLocal() bool {
	return s.Env == EnvLocal
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct {
	Secret string // signs session tokens and keys the cookie cipher
}

type SessionConfig struct {
	CookieName string
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// Enabled reports whether outgoing mail is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

func NewFromCLI(cmd *cli.Command) *Config {
	return &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			Env:         strings.ToLower(cmd.String("env")),
			RoutePrefix: strings.Trim(cmd.String("route-prefix"), "/"),
			AppBaseURL:  strings.TrimSuffix(cmd.String("app-base-url"), "/"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			Secret: cmd.String("server-secret"),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
	}
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}
	if !slices.Contains([]string{EnvLocal, EnvDev, EnvUAT, EnvProd}, c.Server.Env) {
		return fmt.Errorf("unknown environment %q", c.Server.Env)
	}
	if c.Session.CookieName == "" {
		return errors.New("session cookie name is required")
	}
	return nil
}

// APIPath returns the path under which API routes are mounted, e.g. "/api".
func (c *Config) APIPath() string {
	if c.Server.RoutePrefix == "" {
		return ""
	}
	return "/" + c.Server.RoutePrefix
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8000,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT_BACKEND"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "env",
			Value:   EnvLocal,
			Usage:   "Deployment environment (local, dev, uat, prod)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("APP_ENV"), toml.TOML("server.env", configFile)),
		},
		&cli.StringFlag{
			Name:    "route-prefix",
			Value:   "api",
			Usage:   "Path prefix for API routes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ROUTE_PREFIX"), toml.TOML("server.route_prefix", configFile)),
		},
		&cli.StringFlag{
			Name:    "app-base-url",
			Value:   "http://localhost:4200",
			Usage:   "Origin of the web client (CORS, mail links)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("APP_BASE_URL"), toml.TOML("server.app_base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/accounts.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "server-secret",
			Usage:   "Secret for signing session tokens and encrypting the session cookie (required)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SERVER_SECRET"), toml.TOML("auth.secret", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "accessToken",
			Usage:   "Session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		// SMTP flags; mail is disabled while smtp-host is empty
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP server host (empty disables welcome mails)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP server port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "Sender address for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Usage:   "Sender display name for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
	}
}
