package use_cases

import (
	"github.com/Xenn-00/aufgaben-team/internal/queue"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/stretchr/testify/mock"
)

var _ queue.TaskQueueClient = (*MockTaskQueue)(nil)

// Mock TaskQueue for testing
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) EnqueueWelcomeEmail(payload *worker_task.WelcomeEmailPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueTeamInvitationEmail(payload *worker_task.TeamInvitationEmailPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}
