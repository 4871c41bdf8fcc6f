package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"supportchat-backend/internal/middleware"
	"supportchat-backend/internal/models"
)

func newTestAuthService(t *testing.T, secret string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("admin", string(hash), middleware.NewJWTAuth(secret), zerolog.Nop())
}

func TestLogin_Success(t *testing.T) {
	s := newTestAuthService(t, "test-secret")

	tokens, err := s.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "correct horse"})

	require.NoError(t, err)
	assert.Equal(t, 3600, tokens.ExpiresIn)

	token, err := jwt.Parse(tokens.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		req     models.LoginRequest
		wantErr interface{}
	}{
		{"wrong password", "s", models.LoginRequest{Username: "admin", Password: "nope"}, &UnauthorizedError{}},
		{"wrong username", "s", models.LoginRequest{Username: "root", Password: "correct horse"}, &UnauthorizedError{}},
		{"missing fields", "s", models.LoginRequest{}, &ValidationError{}},
		{"no secret", "", models.LoginRequest{Username: "admin", Password: "correct horse"}, &ServiceUnavailableError{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestAuthService(t, tc.secret)

			tokens, err := s.Login(context.Background(), tc.req)

			assert.Nil(t, tokens)
			assert.IsType(t, tc.wantErr, err)
		})
	}
}

func TestLogin_NoPasswordHash(t *testing.T) {
	s := NewAuthService("admin", "", middleware.NewJWTAuth("secret"), zerolog.Nop())

	_, err := s.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "x"})

	assert.IsType(t, &ServiceUnavailableError{}, err)
}
