package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook_backend/internal/apperrors"
	"github.com/finbook/finbook_backend/internal/core/domain"
	"github.com/finbook/finbook_backend/internal/core/services"
	"github.com/finbook/finbook_backend/internal/dto"
	"github.com/finbook/finbook_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockUserRepository
	userService *services.UserService
	authService *services.AuthService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.userService = services.NewUserService(suite.mockRepo)
	suite.authService = services.NewAuthService(suite.mockRepo, "test-secret", time.Hour, "finbook-test")
}

func (suite *UserServiceTestSuite) TestRegisterUser_HashesPassword() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "correct horse battery",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == req.Email &&
			user.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, user.PasswordHash)
	})).Return(&domain.User{UserID: 1, Name: req.Name, Email: req.Email}, nil).Once()

	user, err := suite.userService.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(1), user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_EmailTaken() {
	ctx := context.Background()

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.userService.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "correct horse battery",
	})

	suite.Require().ErrorIs(err, services.ErrEmailTaken)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByEmail", ctx, "alex@example.com").Return(&domain.User{
		UserID:       1,
		Email:        "alex@example.com",
		PasswordHash: hash,
	}, nil).Once()

	user, err := suite.authService.Authenticate(ctx, "alex@example.com", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal(int64(1), user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByEmail", ctx, "alex@example.com").Return(&domain.User{
		UserID:       1,
		Email:        "alex@example.com",
		PasswordHash: hash,
	}, nil).Once()

	_, err = suite.authService.Authenticate(ctx, "alex@example.com", "wrong")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailIndistinguishable() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.authService.Authenticate(ctx, "nobody@example.com", "whatever")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestGenerateAccessToken_SubjectIsUserID() {
	ctx := context.Background()

	token, expiresAt, err := suite.authService.GenerateAccessToken(ctx, &domain.User{UserID: 42})

	suite.Require().NoError(err)
	suite.True(expiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("42", claims.Subject)
	suite.Equal("finbook-test", claims.Issuer)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
