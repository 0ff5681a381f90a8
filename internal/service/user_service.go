package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/permission"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// UserService manages organization membership.
type UserService interface {
	List(ctx context.Context, orgID uint) ([]dto.UserResponse, error)
	Create(ctx context.Context, actorID, orgID uint, payload dto.UserCreateRequest) (dto.UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	recorder  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(users repository.UserRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, orgID uint) ([]dto.UserResponse, error) {
	users, err := s.users.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Create(ctx context.Context, actorID, orgID uint, payload dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	role, err := permission.ParseRole(payload.Role)
	if err != nil {
		return dto.UserResponse{}, err
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(payload.Name),
		Email:          strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash:   hash,
		Role:           string(role),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.recorder.Record(ctx, ActivityEntry{
		UserID:  actorID,
		Action:  ActionUserCreated,
		Details: "added " + user.Email,
		Metadata: map[string]interface{}{
			"created_user_id": user.ID,
			"role":            user.Role,
		},
	}); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}
