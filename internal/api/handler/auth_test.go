package handler

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	h := NewHandler(nil, nil, "test-secret")

	token, err := h.generateJWT("anon-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	anonID, err := h.validateAndGetAnonID(token)
	assert.NoError(t, err)
	assert.Equal(t, "anon-123", anonID)
}

func TestValidateAndGetAnonID_WrongSecret(t *testing.T) {
	issuer := NewHandler(nil, nil, "secret-a")
	verifier := NewHandler(nil, nil, "secret-b")

	token, err := issuer.generateJWT("anon-123")
	assert.NoError(t, err)

	_, err = verifier.validateAndGetAnonID(token)
	assert.Error(t, err)
}

func TestValidateAndGetAnonID_MissingClaim(t *testing.T) {
	h := NewHandler(nil, nil, "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(h.JWTSecret)
	assert.NoError(t, err)

	_, err = h.validateAndGetAnonID(signed)
	assert.Error(t, err)
}

func TestValidateAndGetAnonID_Garbage(t *testing.T) {
	h := NewHandler(nil, nil, "test-secret")

	_, err := h.validateAndGetAnonID("not-a-token")
	assert.Error(t, err)
}
