package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/permission"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login surface does not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates users and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	secret    string
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, validate *validator.Validate, secret string, ttl time.Duration, logger zerolog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &authService{
		users:     users,
		validator: validate,
		secret:    secret,
		ttl:       ttl,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	// A stored role outside the closed set is a deployment defect, not a
	// login failure; surface it loudly.
	role, err := permission.ParseRole(user.Role)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("user carries unknown role")
		return dto.LoginResponse{}, err
	}

	claims := jwt.MapClaims{
		"sub":    user.ID,
		"email":  user.Email,
		"org_id": user.OrganizationID,
		"role":   string(role),
		"exp":    time.Now().Add(s.ttl).Unix(),
		"iat":    time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
