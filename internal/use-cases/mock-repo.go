package use_cases

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	achievement_repo "github.com/Xenn-00/aufgaben-team/internal/repo/achievement-repo"
	auth_repo "github.com/Xenn-00/aufgaben-team/internal/repo/auth-repo"
	invitation_repo "github.com/Xenn-00/aufgaben-team/internal/repo/invitation-repo"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	project_repo "github.com/Xenn-00/aufgaben-team/internal/repo/project-repo"
	task_repo "github.com/Xenn-00/aufgaben-team/internal/repo/task-repo"
	team_repo "github.com/Xenn-00/aufgaben-team/internal/repo/team-repo"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
	"github.com/stretchr/testify/mock"
)

var (
	_ auth_repo.AuthRepoContract                 = (*MockAuthRepo)(nil)
	_ user_repo.UserRepoContract                 = (*MockUserRepo)(nil)
	_ task_repo.TaskRepoContract                 = (*MockTaskRepo)(nil)
	_ team_repo.TeamRepoContract                 = (*MockTeamRepo)(nil)
	_ project_repo.ProjectRepoContract           = (*MockProjectRepo)(nil)
	_ invitation_repo.InvitationRepoContract     = (*MockInvitationRepo)(nil)
	_ notification_repo.NotificationRepoContract = (*MockNotificationRepo)(nil)
	_ achievement_repo.AchievementRepoContract   = (*MockAchievementRepo)(nil)
)

// ---- auth ----

type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CountUsers(ctx context.Context, filter entity.UserCountFilter) (int64, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockAuthRepo) SaveUser(ctx context.Context, model entity.UserEntity) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, model)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockAuthRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, email)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockAuthRepo) FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, username)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

// ---- user ----

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, email)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) FindSummaries(ctx context.Context, userIDs []string) (map[string]entity.UserSummary, *app_errors.AppError) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(map[string]entity.UserSummary), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) ShareTeam(ctx context.Context, userA, userB string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) CountUsers(ctx context.Context) (int, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, userID string, model entity.UserUpdate) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID, model)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) *app_errors.AppError {
	args := m.Called(ctx, userID, passwordHash)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockUserRepo) UpdateAvatar(ctx context.Context, userID string, avatarURL, publicID *string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID, avatarURL, publicID)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, t tx.Tx, userID string) *app_errors.AppError {
	args := m.Called(ctx, t, userID)
	return args.Get(0).(*app_errors.AppError)
}

// ---- task ----

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	args := m.Called(ctx, t, task)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetTaskByID(ctx context.Context, taskID string) (*entity.TaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(*entity.TaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListTasks(ctx context.Context, filter entity.TaskListFilter) ([]entity.TaskEntity, int, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.TaskEntity), args.Int(1), args.Get(2).(*app_errors.AppError)
}

func (m *MockTaskRepo) UpdateTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	args := m.Called(ctx, t, task)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) DeleteTask(ctx context.Context, taskID string) *app_errors.AppError {
	args := m.Called(ctx, taskID)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) CountByStatus(ctx context.Context, ownerID string) (stats.StatusCounts, *app_errors.AppError) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(stats.StatusCounts), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) CountOverdue(ctx context.Context, ownerID string, now time.Time) (int, *app_errors.AppError) {
	args := m.Called(ctx, ownerID, now)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListCompletedSamples(ctx context.Context, ownerID string) ([]stats.CompletedSample, *app_errors.AppError) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]stats.CompletedSample), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListByOwners(ctx context.Context, ownerIDs []string) ([]entity.TaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, ownerIDs)
	return args.Get(0).([]entity.TaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListByProject(ctx context.Context, projectID string) ([]entity.TaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]entity.TaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListShouldRemindOverdue(ctx context.Context, now time.Time, limit int) ([]entity.OverdueTask, *app_errors.AppError) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]entity.OverdueTask), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) BatchUpdateReminderOverdue(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, taskIDs, at)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) MaterializeFailed(ctx context.Context, now time.Time) ([]string, int64, *app_errors.AppError) {
	args := m.Called(ctx, now)
	return args.Get(0).([]string), args.Get(1).(int64), args.Get(2).(*app_errors.AppError)
}

// ---- team ----

type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) InsertTeam(ctx context.Context, team *entity.TeamEntity) *app_errors.AppError {
	args := m.Called(ctx, team)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTeamRepo) GetTeamByID(ctx context.Context, teamID string) (*entity.TeamEntity, *app_errors.AppError) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(*entity.TeamEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTeamRepo) GetTeamByIDForUpdate(ctx context.Context, t tx.Tx, teamID string) (*entity.TeamEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, teamID)
	return args.Get(0).(*entity.TeamEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTeamRepo) GetTeamByInviteCode(ctx context.Context, t tx.Tx, code string) (*entity.TeamEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, code)
	return args.Get(0).(*entity.TeamEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTeamRepo) ListTeamsForUser(ctx context.Context, userID string) ([]entity.TeamSummary, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.TeamSummary), args.Get(1).(*app_errors.AppError)
}

func (m *MockTeamRepo) CountMemberships(ctx context.Context, userID string) (int, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTeamRepo) UpdateTeam(ctx context.Context, t tx.Tx, team *entity.TeamEntity) *app_errors.AppError {
	args := m.Called(ctx, t, team)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTeamRepo) DeleteTeam(ctx context.Context, teamID string) *app_errors.AppError {
	args := m.Called(ctx, teamID)
	return args.Get(0).(*app_errors.AppError)
}

// ---- project ----

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) InsertNewProject(ctx context.Context, project *entity.ProjectEntity) *app_errors.AppError {
	args := m.Called(ctx, project)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockProjectRepo) GetProjectByID(ctx context.Context, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(*entity.ProjectEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockProjectRepo) GetProjectByIDForUpdate(ctx context.Context, t tx.Tx, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, projectID)
	return args.Get(0).(*entity.ProjectEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockProjectRepo) ListProjects(ctx context.Context, filter entity.ProjectListFilter) ([]entity.ProjectEntity, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.ProjectEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockProjectRepo) UpdateProject(ctx context.Context, t tx.Tx, project *entity.ProjectEntity) *app_errors.AppError {
	args := m.Called(ctx, t, project)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockProjectRepo) DeleteProject(ctx context.Context, projectID string) *app_errors.AppError {
	args := m.Called(ctx, projectID)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockProjectRepo) TouchActivity(ctx context.Context, projectID string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, projectID, at)
	return args.Get(0).(*app_errors.AppError)
}

// ---- invitation ----

type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) CancelExpiredPending(ctx context.Context, t tx.Tx, teamID, inviteeID string, now time.Time) (int64, *app_errors.AppError) {
	args := m.Called(ctx, t, teamID, inviteeID, now)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockInvitationRepo) InsertInvitation(ctx context.Context, t tx.Tx, inv *entity.InvitationEntity) *app_errors.AppError {
	args := m.Called(ctx, t, inv)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockInvitationRepo) GetInvitationByID(ctx context.Context, invitationID string) (*entity.InvitationEntity, *app_errors.AppError) {
	args := m.Called(ctx, invitationID)
	return args.Get(0).(*entity.InvitationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockInvitationRepo) GetInvitationByIDForUpdate(ctx context.Context, t tx.Tx, invitationID string) (*entity.InvitationEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, invitationID)
	return args.Get(0).(*entity.InvitationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockInvitationRepo) GetInvitationDetail(ctx context.Context, invitationID string) (*entity.InvitationDetail, *app_errors.AppError) {
	args := m.Called(ctx, invitationID)
	return args.Get(0).(*entity.InvitationDetail), args.Get(1).(*app_errors.AppError)
}

func (m *MockInvitationRepo) UpdateInvitationStatus(ctx context.Context, t tx.Tx, invitationID string, status entity.InvitationStatus, respondedAt time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, invitationID, status, respondedAt)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockInvitationRepo) ListTeamInvitations(ctx context.Context, teamID string, status *entity.InvitationStatus) ([]entity.InvitationDetail, *app_errors.AppError) {
	args := m.Called(ctx, teamID, status)
	return args.Get(0).([]entity.InvitationDetail), args.Get(1).(*app_errors.AppError)
}

func (m *MockInvitationRepo) ListPendingForInvitee(ctx context.Context, inviteeID string, now time.Time) ([]entity.InvitationDetail, *app_errors.AppError) {
	args := m.Called(ctx, inviteeID, now)
	return args.Get(0).([]entity.InvitationDetail), args.Get(1).(*app_errors.AppError)
}

// ---- notification ----

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) InsertNotification(ctx context.Context, n *entity.NotificationEntity) *app_errors.AppError {
	args := m.Called(ctx, n)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockNotificationRepo) ListNotifications(ctx context.Context, filter entity.NotificationListFilter) ([]entity.NotificationEntity, int64, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.NotificationEntity), args.Get(1).(int64), args.Get(2).(*app_errors.AppError)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, recipientID, notificationID string, at time.Time) (*entity.NotificationEntity, *app_errors.AppError) {
	args := m.Called(ctx, recipientID, notificationID, at)
	return args.Get(0).(*entity.NotificationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, *app_errors.AppError) {
	args := m.Called(ctx, recipientID, at)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockNotificationRepo) DeleteNotification(ctx context.Context, recipientID, notificationID string) *app_errors.AppError {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Get(0).(*app_errors.AppError)
}

// ---- achievement ----

type MockAchievementRepo struct {
	mock.Mock
}

func (m *MockAchievementRepo) ListUnlocked(ctx context.Context, userID string) ([]entity.UserAchievement, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.UserAchievement), args.Get(1).(*app_errors.AppError)
}

func (m *MockAchievementRepo) Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, *app_errors.AppError) {
	args := m.Called(ctx, userID, achievementID, at)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockAchievementRepo) UnlockCounts(ctx context.Context) (map[string]int, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Get(1).(*app_errors.AppError)
}
