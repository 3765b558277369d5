// Package auth issues and reads the bearer tokens that protect the ledger
// API when AUTH_STRATEGY=jwt.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "ledger"

type Service struct {
	cfg    *config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// GenerateToken signs an HS256 token for subject that expires after the
// configured expiry.
func (s *Service) GenerateToken(ctx context.Context, subject string) (string, error) {
	log := s.logger.With("subject", subject)
	log.Debug("GenerateToken called")
	if subject == "" {
		return "", fmt.Errorf("%w: subject is required", domain.ErrValidation)
	}
	if s.cfg == nil || s.cfg.Secret == "" {
		return "", errors.New("jwt secret is not configured")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("GenerateToken successful")
	return tokenString, nil
}

// KeyFunc resolves the verification key for HS256 tokens. The JWT
// middleware verifies request tokens with it.
func (s *Service) KeyFunc(t *jwt.Token) (any, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
	}
	if s.cfg == nil || s.cfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return []byte(s.cfg.Secret), nil
}

// ParseToken validates tokenString and returns its subject.
func (s *Service) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(
		tokenString,
		s.KeyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return s.Subject(token)
}

// Subject extracts the subject of an already validated token, such as the
// one the JWT middleware stores in the request locals.
func (s *Service) Subject(token *jwt.Token) (string, error) {
	if token == nil {
		return "", domain.ErrUnauthorized
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		s.logger.Error("Subject failed", "error", err)
		return "", domain.ErrUnauthorized
	}
	return subject, nil
}
