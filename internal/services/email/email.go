// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email sends account notifications over SMTP.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/oliverandrich/go-accounts/internal/config"
	"codeberg.org/oliverandrich/go-accounts/internal/i18n"
	"codeberg.org/oliverandrich/go-accounts/internal/models"
	"github.com/wneessen/go-mail"
)

const sendTimeout = 10 * time.Second

// Service sends welcome mails to newly registered users.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service. baseURL is the web client origin used for links.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// LoginURL returns the client login page linked from mails.
func (s *Service) LoginURL() string {
	return s.baseURL + "/login"
}

// SendWelcome greets user in the locale carried by ctx.
func (s *Service) SendWelcome(ctx context.Context, user *models.User) error {
	msg, err := s.WelcomeMessage(ctx, user)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

// WelcomeMessage builds the welcome mail without sending it.
func (s *Service) WelcomeMessage(ctx context.Context, user *models.User) (*mail.Msg, error) {
	data := map[string]any{
		"FirstName": user.FirstName,
		"LoginURL":  s.LoginURL(),
	}
	return s.message(user.Email,
		i18n.TData(ctx, "welcome_email_subject", data),
		i18n.TData(ctx, "welcome_email_body", data),
	)
}

func (s *Service) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (s *Service) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(sendTimeout),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// implicit TLS on 465, STARTTLS elsewhere
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func (s *Service) send(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
