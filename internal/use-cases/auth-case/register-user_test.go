package auth_case

import (
	"context"
	"errors"
	"testing"
	"time"

	auth_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/auth-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPaseto(t *testing.T) *utils.PasetoMaker {
	t.Helper()
	maker, err := utils.NewPasetoMaker(utils.GenerateSymmetricKey())
	require.NoError(t, err)
	return maker
}

func janeRequest() auth_dto.RegisterUserRequest {
	return auth_dto.RegisterUserRequest{
		FullName: "Jane Doe",
		Username: "janedoe",
		Email:    "jane@x.com",
		Password: "secret12",
	}
}

func TestRegisterUser_Success(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockAuthRepo)
	sessions := new(MockSessionStore)
	taskQueue := new(use_cases.MockTaskQueue)
	service := &AuthService{
		repo:      repo,
		sessions:  sessions,
		paseto:    newTestPaseto(t),
		taskQueue: taskQueue,
	}

	req := janeRequest()

	repo.On("CountUsers", ctx, entity.UserCountFilter{Username: &req.Username}).Return(int64(0), (*app_errors.AppError)(nil))
	repo.On("CountUsers", ctx, entity.UserCountFilter{Email: &req.Email}).Return(int64(0), (*app_errors.AppError)(nil))

	repo.On("SaveUser", ctx, mock.MatchedBy(func(u entity.UserEntity) bool {
		return u.Username == "janedoe" && u.Email == "jane@x.com" && u.FullName == "Jane Doe" &&
			u.PasswordHash != "" && u.PasswordHash != req.Password && u.ID != ""
	})).Return(&entity.UserEntity{
		ID:           "user-1",
		Username:     "janedoe",
		Email:        "jane@x.com",
		FullName:     "Jane Doe",
		PasswordHash: "hashed",
		CreatedAt:    time.Now(),
	}, (*app_errors.AppError)(nil))

	sessions.On("Save", ctx, mock.MatchedBy(func(s *SessionTracker) bool {
		return s.UserID == "user-1" && s.JTI != "" && s.Device == "Unknown Device"
	}), DefaultSessionTTL).Return((*app_errors.AppError)(nil))

	taskQueue.On("EnqueueWelcomeEmail", &worker_task.WelcomeEmailPayload{
		UserID:   "user-1",
		Email:    "jane@x.com",
		FullName: "Jane Doe",
		Username: "janedoe",
	}).Return(nil)

	resp, err := service.RegisterUser(ctx, req, auth_dto.LoginMetadata{})

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "janedoe", resp.User.Username)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	repo.AssertExpectations(t)
	sessions.AssertExpectations(t)
	taskQueue.AssertExpectations(t)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockAuthRepo)
	service := &AuthService{
		repo: repo,
	}

	req := janeRequest()
	req.Email = "other@x.com"

	repo.On("CountUsers", ctx, entity.UserCountFilter{Username: &req.Username}).Return(int64(1), (*app_errors.AppError)(nil))

	resp, err := service.RegisterUser(ctx, req, auth_dto.LoginMetadata{})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, app_errors.ErrUserExists, err.Type)
	assert.Equal(t, "auth.username_exists", err.MessageKey)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockAuthRepo)
	service := &AuthService{
		repo: repo,
	}

	req := janeRequest()

	repo.On("CountUsers", ctx, entity.UserCountFilter{Username: &req.Username}).Return(int64(0), (*app_errors.AppError)(nil))
	repo.On("CountUsers", ctx, entity.UserCountFilter{Email: &req.Email}).Return(int64(1), (*app_errors.AppError)(nil))

	_, err := service.RegisterUser(ctx, req, auth_dto.LoginMetadata{})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, app_errors.ErrUserExists, err.Type)
	assert.Equal(t, "auth.email_exists", err.MessageKey)

	repo.AssertExpectations(t)
}

func TestRegisterUser_WelcomeEmailFailureIsIgnored(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockAuthRepo)
	sessions := new(MockSessionStore)
	taskQueue := new(use_cases.MockTaskQueue)
	service := &AuthService{
		repo:      repo,
		sessions:  sessions,
		paseto:    newTestPaseto(t),
		taskQueue: taskQueue,
	}

	req := janeRequest()

	repo.On("CountUsers", ctx, mock.Anything).Return(int64(0), (*app_errors.AppError)(nil))
	repo.On("SaveUser", ctx, mock.Anything).Return(&entity.UserEntity{ID: "user-1", Username: "janedoe", Email: "jane@x.com"}, (*app_errors.AppError)(nil))
	sessions.On("Save", ctx, mock.Anything, DefaultSessionTTL).Return((*app_errors.AppError)(nil))
	taskQueue.On("EnqueueWelcomeEmail", mock.Anything).Return(errors.New("redis down"))

	resp, err := service.RegisterUser(ctx, req, auth_dto.LoginMetadata{})

	assert.Nil(t, err)
	assert.NotNil(t, resp)

	taskQueue.AssertExpectations(t)
}

func TestRegisterUser_SaveRace(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockAuthRepo)
	service := &AuthService{
		repo: repo,
	}

	repo.On("CountUsers", ctx, mock.Anything).Return(int64(0), (*app_errors.AppError)(nil))
	repo.On("SaveUser", ctx, mock.Anything).Return((*entity.UserEntity)(nil),
		app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUserExists, "auth.username_exists", nil))

	resp, err := service.RegisterUser(ctx, janeRequest(), auth_dto.LoginMetadata{})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrUserExists, err.Type)
}
