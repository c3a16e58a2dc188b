package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken  = errors.New("malformed token")
	ErrSecretMissing   = errors.New("signing secret not configured")
	ErrUnsupportedAlg  = errors.New("unsupported signing method")
	ErrInvalidTokenTTL = errors.New("token ttl must be positive")
)

// TokenService mints and verifies HMAC-signed JWTs whose subject is the
// user's email.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for minting and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService builds a TokenService. alg is one of HS256, HS384, HS512.
func NewTokenService(secret, alg string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}
	if ttl <= 0 {
		return nil, ErrInvalidTokenTTL
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}

	s := &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Mint signs a token for subject that expires TTL after issuance.
func (s *TokenService) Mint(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExtractSubject verifies structure and signature and returns the subject.
// Expiry is not checked.
func (s *TokenService) ExtractSubject(tokenStr string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(tokenStr, &claims, s.key); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}
	return claims.Subject, nil
}

// IsValid reports whether tokenStr has a good signature, has not expired and
// names subject.
func (s *TokenService) IsValid(tokenStr, subject string) bool {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(subject),
		jwt.WithTimeFunc(s.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, s.key)
	return err == nil && token.Valid
}

func (s *TokenService) key(*jwt.Token) (any, error) {
	return s.secret, nil
}
