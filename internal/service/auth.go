// Package service implements login, registration and token validation on top
// of the credential store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vaughan-dsouza/medvault/internal/models"
)

// PasswordHasher hashes new passwords and verifies submitted ones.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints and checks bearer tokens bound to an email.
type TokenIssuer interface {
	Mint(subject string) (string, error)
	ExtractSubject(token string) (string, error)
	IsValid(token, subject string) bool
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AuthService handles login, registration and token validation.
type AuthService struct {
	store     models.Store
	hasher    PasswordHasher
	tokens    TokenIssuer
	log       *slog.Logger
	now       func() time.Time
	dummyHash string
}

type Option func(*AuthService)

func WithLogger(l *slog.Logger) Option {
	return func(s *AuthService) { s.log = l }
}

// WithClock sets the clock used to derive patient ages.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

// NewAuthService creates an AuthService. It hashes a throwaway password once
// so that logins for unknown emails cost the same as wrong passwords.
func NewAuthService(store models.Store, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) (*AuthService, error) {
	s := &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := hasher.Hash("medvault-unknown-user")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// Login checks the credentials and mints a token. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.log.WarnContext(ctx, "login rejected", "email", email, "reason", "unknown email")
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		s.log.WarnContext(ctx, "login rejected", "email", email, "reason", "password mismatch")
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.Email)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	s.log.InfoContext(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Validate resolves a bearer token to its user. Every failure, including
// lookup errors, is reported as ErrUnauthenticated.
func (s *AuthService) Validate(ctx context.Context, token string) (*models.User, error) {
	email, err := s.tokens.ExtractSubject(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.log.ErrorContext(ctx, "validate token: user lookup", "error", err)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	if !s.tokens.IsValid(token, user.Email) {
		return nil, fmt.Errorf("%w: token expired or invalid", models.ErrUnauthenticated)
	}
	return user, nil
}
