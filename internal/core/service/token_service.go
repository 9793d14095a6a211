package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// TokenService issues and verifies the double-submit CSRF tokens.
// The token value is an HS256-signed claim set carrying a random nonce,
// issuance and expiry times, and an optional identity binding; clients
// treat it as opaque.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate mints a new token, bound to identity when non-empty.
func (s *TokenService) Generate(identity string) (*domain.SecurityToken, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("token nonce: %w", err)
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.MapClaims{
		"nonce": hex.EncodeToString(nonce),
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}
	if identity != "" {
		claims["sub"] = identity
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.SecurityToken{
		Value:     value,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Identity:  identity,
	}, nil
}

// Verify performs the double-submit check: the submitted value must
// byte-for-byte equal the cookie value, the token must be unexpired,
// and a bound token must be presented by the same identity it was
// issued to. Expiry fails with domain.ErrTokenExpired so callers can
// log "please refresh" apart from "attack suspected"; every other
// failure is domain.ErrTokenInvalid.
func (s *TokenService) Verify(submitted, cookie, identity string) error {
	if submitted == "" || cookie == "" {
		return domain.ErrTokenInvalid
	}
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(cookie)) != 1 {
		return domain.ErrTokenInvalid
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(submitted, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		return domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return domain.ErrTokenInvalid
	}

	if bound, _ := claims["sub"].(string); bound != "" && bound != identity {
		return domain.ErrTokenInvalid
	}

	return nil
}
