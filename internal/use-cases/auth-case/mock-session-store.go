package auth_case

import (
	"context"
	"time"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/stretchr/testify/mock"
)

var _ SessionStore = (*MockSessionStore)(nil)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, session *SessionTracker, ttl time.Duration) *app_errors.AppError {
	args := m.Called(ctx, session, ttl)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockSessionStore) Get(ctx context.Context, jti string) (*SessionTracker, *app_errors.AppError) {
	args := m.Called(ctx, jti)
	return args.Get(0).(*SessionTracker), args.Get(1).(*app_errors.AppError)
}

func (m *MockSessionStore) Delete(ctx context.Context, session *SessionTracker) *app_errors.AppError {
	args := m.Called(ctx, session)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockSessionStore) ListForUser(ctx context.Context, userID string) ([]SessionTracker, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]SessionTracker), args.Get(1).(*app_errors.AppError)
}

func (m *MockSessionStore) DeleteAllForUser(ctx context.Context, userID string) *app_errors.AppError {
	args := m.Called(ctx, userID)
	return args.Get(0).(*app_errors.AppError)
}
