package worker_handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/mail"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var noAppError = (*app_errors.AppError)(nil)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcome(ctx context.Context, w mail.WelcomeMail) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockMailer) SendTeamInvitation(ctx context.Context, inv mail.TeamInvitationMail) error {
	return m.Called(ctx, inv).Error(0)
}

type fixture struct {
	h             *WorkerHandler
	tasks         *use_cases.MockTaskRepo
	invitations   *use_cases.MockInvitationRepo
	notifications *use_cases.MockNotificationRepo
	txManager     *use_cases.MockTxManager
	cache         *use_cases.MockCache
	mailer        *mockMailer
	now           time.Time
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		tasks:         new(use_cases.MockTaskRepo),
		invitations:   new(use_cases.MockInvitationRepo),
		notifications: new(use_cases.MockNotificationRepo),
		txManager:     new(use_cases.MockTxManager),
		cache:         new(use_cases.MockCache),
		mailer:        new(mockMailer),
		now:           time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	f.h = &WorkerHandler{
		txManager:     f.txManager,
		tasks:         f.tasks,
		invitations:   f.invitations,
		notifications: f.notifications,
		cache:         f.cache,
		mailer:        f.mailer,
		opts:          opts,
		now:           func() time.Time { return f.now },
	}
	return f
}

func newTask(t *testing.T, typ string, payload any) *asynq.Task {
	t.Helper()
	var raw []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		assert.NoError(t, err)
		raw = b
	}
	return asynq.NewTask(typ, raw)
}

func TestWelcomeEmail_Sends(t *testing.T) {
	f := newFixture(Options{ClientURL: "http://localhost:5173"})
	ctx := context.Background()

	f.mailer.On("SendWelcome", ctx, mail.WelcomeMail{
		To: "jane@x.com", FullName: "Jane Doe", Username: "janedoe", ClientURL: "http://localhost:5173",
	}).Return(nil)

	err := f.h.WelcomeEmail()(ctx, newTask(t, worker_task.TaskSendWelcomeEmail, worker_task.WelcomeEmailPayload{
		UserID: "u1", Email: "jane@x.com", FullName: "Jane Doe", Username: "janedoe",
	}))

	assert.NoError(t, err)
	f.mailer.AssertExpectations(t)
}

func TestWelcomeEmail_BadPayloadSkipsRetry(t *testing.T) {
	f := newFixture(Options{})

	err := f.h.WelcomeEmail()(context.Background(), asynq.NewTask(worker_task.TaskSendWelcomeEmail, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	f.mailer.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
}

func pendingInvitation(now time.Time) *entity.InvitationDetail {
	msg := "komm ins Team"
	return &entity.InvitationDetail{
		InvitationEntity: entity.InvitationEntity{
			ID:        "inv-1",
			TeamID:    "team-1",
			Role:      entity.TeamRole("member"),
			Status:    entity.InvitationPending,
			Message:   &msg,
			ExpiresAt: now.Add(24 * time.Hour),
		},
		TeamName:        "Core",
		InviterUsername: "jane",
		InviteeUsername: "bob",
		InviteeEmail:    "bob@x.com",
	}
}

func TestTeamInvitationEmail_SendsPending(t *testing.T) {
	f := newFixture(Options{ClientURL: "http://localhost:5173/"})
	ctx := context.Background()
	inv := pendingInvitation(f.now)

	f.invitations.On("GetInvitationDetail", ctx, "inv-1").Return(inv, noAppError)
	f.mailer.On("SendTeamInvitation", ctx, mock.MatchedBy(func(m mail.TeamInvitationMail) bool {
		return m.To == "bob@x.com" && m.TeamName == "Core" && m.Message == "komm ins Team" &&
			m.Link == "http://localhost:5173/invitations"
	})).Return(nil)

	err := f.h.TeamInvitationEmail()(ctx, newTask(t, worker_task.TaskSendTeamInvitationEmail,
		worker_task.TeamInvitationEmailPayload{InvitationID: "inv-1"}))

	assert.NoError(t, err)
	f.mailer.AssertExpectations(t)
}

func TestTeamInvitationEmail_SkipsNonPending(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	inv := pendingInvitation(f.now)
	inv.Status = entity.InvitationCancelled

	f.invitations.On("GetInvitationDetail", ctx, "inv-1").Return(inv, noAppError)

	err := f.h.TeamInvitationEmail()(ctx, newTask(t, worker_task.TaskSendTeamInvitationEmail,
		worker_task.TeamInvitationEmailPayload{InvitationID: "inv-1"}))

	assert.NoError(t, err)
	f.mailer.AssertNotCalled(t, "SendTeamInvitation", mock.Anything, mock.Anything)
}

func TestTeamInvitationEmail_MailerErrorPropagates(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()

	f.invitations.On("GetInvitationDetail", ctx, "inv-1").Return(pendingInvitation(f.now), noAppError)
	f.mailer.On("SendTeamInvitation", ctx, mock.Anything).Return(errors.New("smtp down"))

	err := f.h.TeamInvitationEmail()(ctx, newTask(t, worker_task.TaskSendTeamInvitationEmail,
		worker_task.TeamInvitationEmailPayload{InvitationID: "inv-1"}))

	assert.EqualError(t, err, "smtp down")
}

func TestOverdueReminders_NotifiesAndMarks(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	projectID := "p1"

	f.tasks.On("ListShouldRemindOverdue", ctx, f.now, OverdueBatchSize).Return([]entity.OverdueTask{
		{ID: "t1", Title: "Bericht", OwnerID: "u1", DueDate: f.now.Add(-time.Hour)},
		{ID: "t2", Title: "Review", OwnerID: "u2", ProjectID: &projectID, DueDate: f.now.Add(-2 * time.Hour)},
	}, noAppError)
	f.notifications.On("InsertNotification", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.Type == entity.NotifyTaskOverdue
	})).Return(noAppError).Twice()

	tx := new(use_cases.MockTx)
	f.txManager.On("Begin", ctx).Return(tx, noAppError)
	f.tasks.On("BatchUpdateReminderOverdue", ctx, tx, []string{"t1", "t2"}, f.now).Return(noAppError)
	tx.On("Commit", ctx).Return(noAppError)
	tx.On("Rollback", ctx).Return(noAppError)

	err := f.h.OverdueReminders()(ctx, newTask(t, worker_task.TaskOverdueReminders, nil))

	assert.NoError(t, err)
	f.notifications.AssertExpectations(t)
	f.tasks.AssertExpectations(t)
	tx.AssertCalled(t, "Commit", ctx)
}

func TestOverdueReminders_NothingToDo(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()

	f.tasks.On("ListShouldRemindOverdue", ctx, f.now, OverdueBatchSize).Return([]entity.OverdueTask{}, noAppError)

	err := f.h.OverdueReminders()(ctx, newTask(t, worker_task.TaskOverdueReminders, nil))

	assert.NoError(t, err)
	f.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestMaterializeFailed_DisabledIsNoop(t *testing.T) {
	f := newFixture(Options{MaterializeFailed: false})

	err := f.h.MaterializeFailed()(context.Background(), newTask(t, worker_task.TaskMaterializeFailed, nil))

	assert.NoError(t, err)
	f.tasks.AssertNotCalled(t, "MaterializeFailed", mock.Anything, mock.Anything)
}

func TestMaterializeFailed_Enabled(t *testing.T) {
	f := newFixture(Options{MaterializeFailed: true})
	ctx := context.Background()

	f.tasks.On("MaterializeFailed", ctx, f.now).Return([]string{"user-1", "user-2"}, int64(4), noAppError)
	f.cache.On("Del", ctx, []string{"stats:user:user-1", "stats:user:user-2"}).Return(nil)

	err := f.h.MaterializeFailed()(ctx, newTask(t, worker_task.TaskMaterializeFailed, nil))

	assert.NoError(t, err)
	f.tasks.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestMaterializeFailed_NothingChangedSkipsCache(t *testing.T) {
	f := newFixture(Options{MaterializeFailed: true})
	ctx := context.Background()

	f.tasks.On("MaterializeFailed", ctx, f.now).Return([]string{}, int64(0), noAppError)

	err := f.h.MaterializeFailed()(ctx, newTask(t, worker_task.TaskMaterializeFailed, nil))

	assert.NoError(t, err)
	f.cache.AssertNotCalled(t, "Del", mock.Anything, mock.Anything)
}

func TestMaterializeFailed_CacheErrorDoesNotFailJob(t *testing.T) {
	f := newFixture(Options{MaterializeFailed: true})
	ctx := context.Background()

	f.tasks.On("MaterializeFailed", ctx, f.now).Return([]string{"user-1"}, int64(1), noAppError)
	f.cache.On("Del", ctx, []string{"stats:user:user-1"}).Return(errors.New("redis down"))

	err := f.h.MaterializeFailed()(ctx, newTask(t, worker_task.TaskMaterializeFailed, nil))

	assert.NoError(t, err)
}
