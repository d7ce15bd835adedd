package use_cases

import (
	"context"

	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	"github.com/stretchr/testify/mock"
)

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) Stats(ctx context.Context, userID string) (*stats.UserStats, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*stats.UserStats), args.Get(1).(*app_errors.AppError)
}
