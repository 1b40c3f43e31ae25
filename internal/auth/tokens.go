package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"messenger-service/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and resolves the caller credential carried in the
// X-User-Id header. The opaque variant preserves the original wire contract
// (token is the user id itself); the JWT variant is the verifiable upgrade.
type TokenService interface {
	Issue(userID int) (string, error)
	Resolve(token string) (int, error)
}

// NewTokenService picks an implementation from config.
func NewTokenService(cfg config.Config) (TokenService, error) {
	switch cfg.TokenMode {
	case config.TokenModePlain:
		return PlainTokens{}, nil
	case config.TokenModeJWT:
		return JWTTokens{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}, nil
	default:
		return nil, fmt.Errorf("unknown token mode %q", cfg.TokenMode)
	}
}

// PlainTokens treats the stringified user id as the credential.
type PlainTokens struct{}

func (PlainTokens) Issue(userID int) (string, error) {
	return strconv.Itoa(userID), nil
}

func (PlainTokens) Resolve(token string) (int, error) {
	userID, err := strconv.Atoi(token)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// JWTTokens issues signed HS256 tokens with an expiry.
type JWTTokens struct {
	Secret []byte
	TTL    time.Duration
}

func (t JWTTokens) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

func (t JWTTokens) Resolve(token string) (int, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
