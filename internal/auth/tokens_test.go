package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/config"
)

func TestPlainTokensRoundTrip(t *testing.T) {
	tokens := PlainTokens{}

	token, err := tokens.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, "42", token)

	userID, err := tokens.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestPlainTokensRejectsGarbage(t *testing.T) {
	tokens := PlainTokens{}

	for _, token := range []string{"", "abc", "-1", "0"} {
		_, err := tokens.Resolve(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestJWTTokensRoundTrip(t *testing.T) {
	tokens := JWTTokens{Secret: []byte("test-secret"), TTL: time.Hour}

	token, err := tokens.Issue(42)
	require.NoError(t, err)
	assert.NotEqual(t, "42", token)

	userID, err := tokens.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestJWTTokensWrongSecret(t *testing.T) {
	issuer := JWTTokens{Secret: []byte("one"), TTL: time.Hour}
	verifier := JWTTokens{Secret: []byte("two"), TTL: time.Hour}

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTTokensExpired(t *testing.T) {
	tokens := JWTTokens{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, err := tokens.Issue(42)
	require.NoError(t, err)

	_, err = tokens.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceModes(t *testing.T) {
	plain, err := NewTokenService(config.Config{TokenMode: config.TokenModePlain})
	require.NoError(t, err)
	assert.IsType(t, PlainTokens{}, plain)

	jwtService, err := NewTokenService(config.Config{TokenMode: config.TokenModeJWT, JWTSecret: "s", JWTTTL: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, JWTTokens{}, jwtService)

	_, err = NewTokenService(config.Config{TokenMode: "session"})
	assert.Error(t, err)
}
