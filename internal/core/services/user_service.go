package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/internal/dto"
	"github.com/finbook/finbook_backend/internal/middleware"
	"github.com/finbook/finbook_backend/internal/utils"
)

// ErrEmailTaken indicates a registration attempt with an email that is
// already in use.
var ErrEmailTaken = fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)

// UserService implements user registration and lookup.
type UserService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// RegisterUser creates a new user with a hashed password. The raw password is
// never stored or logged.
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to hash password", apperrors.ErrInternal)
	}

	user := domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	saved, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.Int64("user_id", saved.UserID))
	return saved, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
