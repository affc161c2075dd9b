// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/go-accounts/internal/models"
	"codeberg.org/oliverandrich/go-accounts/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrEmailNotRegistered     = errors.New("email is not registered")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrUserNotFound           = errors.New("user not found")
)

// UserStore is the subset of the repository the auth flow depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// WelcomeMailer greets newly registered users.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, user *models.User) error
}

type Service struct {
	users  UserStore
	hasher *PasswordHasher
	mailer WelcomeMailer
}

// NewService wires the auth flow. mailer may be nil to skip welcome mails.
func NewService(users UserStore, hasher *PasswordHasher, mailer WelcomeMailer) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		mailer: mailer,
	}
}

// Signup registers a new account. Input is expected to be validated already.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	_, err := s.users.GetUserByEmail(ctx, params.Email)
	if err == nil {
		slog.WarnContext(ctx, "signup_failed", "email", params.Email, "reason", "email_taken")
		return nil, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	digest, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: digest,
		IsActive:     true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			slog.WarnContext(ctx, "signup_failed", "email", params.Email, "reason", "email_taken_on_insert")
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.InfoContext(ctx, "signup_success", "user_id", user.ID, "email", user.Email)

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, user); err != nil {
			slog.WarnContext(ctx, "welcome_mail_failed", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// Login checks credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, params LoginParams) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.WarnContext(ctx, "login_failed", "email", params.Email, "reason", "user_not_found")
			return nil, ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(params.Password, user.PasswordHash) {
		slog.WarnContext(ctx, "login_failed", "email", params.Email, "reason", "invalid_password")
		return nil, ErrInvalidPassword
	}

	slog.InfoContext(ctx, "login_success", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Profile loads the user identified by a verified token.
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
