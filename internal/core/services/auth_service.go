package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/internal/middleware"
	"github.com/finbook/finbook_backend/internal/utils"
)

// ErrInvalidCredentials is returned for a bad email or password. The two
// cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

// AuthService verifies credentials and issues JWT access tokens.
type AuthService struct {
	userRepo  portsrepo.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepository, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// Authenticate verifies the email/password pair and returns the user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GenerateAccessToken issues a signed JWT whose subject is the user ID.
func (s *AuthService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := utils.GenerateJWT(strconv.FormatInt(user.UserID, 10), s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sign access token", slog.String("error", err.Error()))
		return "", time.Time{}, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternal)
	}
	return token, expiresAt, nil
}
