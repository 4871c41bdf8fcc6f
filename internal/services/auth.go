package services

import (
	"context"
	"crypto/subtle"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"supportchat-backend/internal/middleware"
	"supportchat-backend/internal/models"
)

// AuthService authenticates the single site administrator.
type AuthService struct {
	username     string
	passwordHash []byte
	jwt          *middleware.JWTAuth
	logger       zerolog.Logger
}

func NewAuthService(username, passwordHash string, jwt *middleware.JWTAuth, logger zerolog.Logger) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		jwt:          jwt,
		logger:       logger.With().Str("component", "auth").Logger(),
	}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error) {
	fieldErrors := make(map[string]string)
	if req.Username == "" {
		fieldErrors["username"] = "Username is required"
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if len(s.passwordHash) == 0 || s.jwt == nil || len(s.jwt.Secret) == 0 {
		return nil, &ServiceUnavailableError{Message: "Admin login is not configured"}
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		s.logger.Warn().Str("username", req.Username).Msg("admin login failed")
		return nil, &UnauthorizedError{Message: "Invalid username or password"}
	}

	token, err := s.jwt.GenerateAccessToken(s.username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", s.username).Msg("admin logged in")
	return &models.AuthTokens{
		AccessToken: token,
		ExpiresIn:   int(middleware.AccessTokenTTL.Seconds()),
	}, nil
}
