package team_case

import (
	"context"
	"testing"
	"time"

	team_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/team-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTeam(maxMembers int, members ...entity.TeamMember) *entity.TeamEntity {
	settings := entity.DefaultTeamSettings()
	settings.MaxMembers = maxMembers
	return &entity.TeamEntity{
		ID:         "team-1",
		Name:       "Core",
		OwnerID:    "owner",
		InviteCode: "ABCD1234",
		Members:    members,
		Settings:   settings,
	}
}

var (
	ownerMember = entity.TeamMember{UserID: "owner", Role: entity.TeamRoleOwner}
	adminMember = entity.TeamMember{UserID: "admin", Role: entity.TeamRoleAdmin}
	plainMember = entity.TeamMember{UserID: "member", Role: entity.TeamRoleMember}
	noSummaries = map[string]entity.UserSummary{}
	noAppError  = (*app_errors.AppError)(nil)
)

func expectTx(ctx context.Context, txManager *use_cases.MockTxManager, tx *use_cases.MockTx, commit bool) {
	txManager.On("Begin", ctx).Return(tx, noAppError)
	tx.On("Rollback", ctx).Return(noAppError)
	if commit {
		tx.On("Commit", ctx).Return(noAppError)
	}
}

func TestCreateTeam_RetriesOnInviteCodeClash(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	service := &TeamService{repo: repo, users: users}

	clash := app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrDuplicateKey, "conflict.duplicate_key", nil).
		WithParams(map[string]any{"Constraint": "teams_invite_code_key"})

	repo.On("InsertTeam", ctx, mock.Anything).Return(clash).Once()
	repo.On("InsertTeam", ctx, mock.MatchedBy(func(team *entity.TeamEntity) bool {
		return team.OwnerID == "owner" && len(team.Members) == 1 && team.Members[0].Role == entity.TeamRoleOwner
	})).Return(noAppError).Once()
	users.On("FindSummaries", ctx, []string{"owner"}).Return(noSummaries, noAppError)

	resp, err := service.CreateTeam(ctx, "owner", team_dto.CreateTeamRequest{Name: "Core"})

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.InviteCode, 8)
	assert.Equal(t, entity.TeamRoleOwner, resp.MyRole)
	assert.Equal(t, entity.DefaultTeamMaxMembers, resp.Settings.MaxMembers)
	repo.AssertNumberOfCalls(t, "InsertTeam", 2)
}

func TestGetTeam_InviteCodeHiddenFromPlainMember(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	service := &TeamService{repo: repo, users: users}

	repo.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)
	users.On("FindSummaries", ctx, mock.Anything).Return(noSummaries, noAppError)

	resp, err := service.GetTeam(ctx, "member", "team-1")

	assert.Nil(t, err)
	assert.Empty(t, resp.InviteCode)
	assert.Equal(t, entity.TeamRoleMember, resp.MyRole)
	assert.Equal(t, 2, resp.MemberCount)
}

func TestGetTeam_NonMemberNotFound(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	service := &TeamService{repo: repo}

	repo.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember), noAppError)

	_, err := service.GetTeam(ctx, "stranger", "team-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.Code)
}

func TestAddMember_TeamFull(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, users: users, txManager: txManager}

	users.On("FindByUserID", ctx, "new-user").Return(&entity.UserEntity{ID: "new-user"}, noAppError)
	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(2, ownerMember, adminMember), noAppError)

	resp, err := service.AddMember(ctx, "owner", "team-1", team_dto.AddMemberRequest{UserID: "new-user"})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, app_errors.ErrLimitReached, err.Type)
	repo.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertExpectations(t)
}

func TestAddMember_AlreadyMember(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, users: users, txManager: txManager}

	users.On("FindByUserID", ctx, "member").Return(&entity.UserEntity{ID: "member"}, noAppError)
	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)

	_, err := service.AddMember(ctx, "owner", "team-1", team_dto.AddMemberRequest{UserID: "member"})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusConflict, err.Code)
}

func TestAddMember_PlainMemberForbidden(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, users: users, txManager: txManager}

	users.On("FindByUserID", ctx, "new-user").Return(&entity.UserEntity{ID: "new-user"}, noAppError)
	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)

	_, err := service.AddMember(ctx, "member", "team-1", team_dto.AddMemberRequest{UserID: "new-user"})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestAddMember_Success(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	notifications := new(use_cases.MockNotificationRepo)
	service := &TeamService{repo: repo, users: users, txManager: txManager, notifications: notifications}

	users.On("FindByUserID", ctx, "new-user").Return(&entity.UserEntity{ID: "new-user"}, noAppError)
	expectTx(ctx, txManager, tx, true)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, adminMember), noAppError)
	repo.On("UpdateTeam", ctx, tx, mock.MatchedBy(func(team *entity.TeamEntity) bool {
		m := team.FindMember("new-user")
		return m != nil && m.Role == entity.TeamRoleMember
	})).Return(noAppError)
	notifications.On("InsertNotification", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.RecipientID == "new-user" && n.Type == entity.NotifyMemberAdded
	})).Return(noAppError)
	users.On("FindSummaries", ctx, mock.Anything).Return(noSummaries, noAppError)

	resp, err := service.AddMember(ctx, "admin", "team-1", team_dto.AddMemberRequest{UserID: "new-user"})

	assert.Nil(t, err)
	assert.Equal(t, 3, resp.MemberCount)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestUpdateMember_OwnerRoleImmutable(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, adminMember), noAppError)

	_, err := service.UpdateMember(ctx, "admin", "team-1", "owner", team_dto.UpdateMemberRequest{Role: "member"})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, "team.owner_role_immutable", err.MessageKey)
}

func TestUpdateMember_SanitizesOverrides(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	notifications := new(use_cases.MockNotificationRepo)
	service := &TeamService{repo: repo, users: users, txManager: txManager, notifications: notifications}

	expectTx(ctx, txManager, tx, true)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)
	repo.On("UpdateTeam", ctx, tx, mock.MatchedBy(func(team *entity.TeamEntity) bool {
		m := team.FindMember("member")
		_, hasDelete := m.Permissions["delete_team"]
		return m.Permissions["invite_members"] && !hasDelete
	})).Return(noAppError)
	users.On("FindSummaries", ctx, mock.Anything).Return(noSummaries, noAppError)

	_, err := service.UpdateMember(ctx, "owner", "team-1", "member", team_dto.UpdateMemberRequest{
		Role:        "member",
		Permissions: map[string]bool{"invite_members": true, "delete_team": true},
	})

	assert.Nil(t, err)
	repo.AssertExpectations(t)
	// Rolle unverändert, also keine Benachrichtigung
	notifications.AssertNotCalled(t, "InsertNotification", mock.Anything, mock.Anything)
}

func TestRemoveMember_OwnerCannotBeRemoved(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember), noAppError)

	err := service.RemoveMember(ctx, "owner", "team-1", "owner")

	require.NotNil(t, err)
	assert.Equal(t, "team.owner_cannot_leave", err.MessageKey)
}

func TestRemoveMember_SelfLeave(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	notifications := new(use_cases.MockNotificationRepo)
	service := &TeamService{repo: repo, txManager: txManager, notifications: notifications}

	expectTx(ctx, txManager, tx, true)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)
	repo.On("UpdateTeam", ctx, tx, mock.MatchedBy(func(team *entity.TeamEntity) bool {
		return len(team.Members) == 1 && team.FindMember("member") == nil
	})).Return(noAppError)

	err := service.RemoveMember(ctx, "member", "team-1", "member")

	assert.Nil(t, err)
	repo.AssertExpectations(t)
	notifications.AssertNotCalled(t, "InsertNotification", mock.Anything, mock.Anything)
}

func TestTransferOwnership_PreviousOwnerBecomesAdmin(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	notifications := new(use_cases.MockNotificationRepo)
	service := &TeamService{repo: repo, users: users, txManager: txManager, notifications: notifications}

	expectTx(ctx, txManager, tx, true)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)
	repo.On("UpdateTeam", ctx, tx, mock.MatchedBy(func(team *entity.TeamEntity) bool {
		return team.OwnerID == "member" &&
			team.FindMember("member").Role == entity.TeamRoleOwner &&
			team.FindMember("owner").Role == entity.TeamRoleAdmin
	})).Return(noAppError)
	notifications.On("InsertNotification", ctx, mock.Anything).Return(noAppError)
	users.On("FindSummaries", ctx, mock.Anything).Return(noSummaries, noAppError)

	resp, err := service.TransferOwnership(ctx, "owner", "team-1", team_dto.TransferOwnershipRequest{UserID: "member"})

	assert.Nil(t, err)
	assert.Equal(t, "member", resp.OwnerID)
	assert.Equal(t, entity.TeamRoleAdmin, resp.MyRole)
	repo.AssertExpectations(t)
}

func TestTransferOwnership_OnlyOwner(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, adminMember, plainMember), noAppError)

	_, err := service.TransferOwnership(ctx, "admin", "team-1", team_dto.TransferOwnershipRequest{UserID: "member"})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestJoinByInviteCode_InviteOnly(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, txManager: txManager}

	team := testTeam(10, ownerMember)
	team.Settings.InvitePolicy = entity.InviteInviteOnly
	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByInviteCode", ctx, tx, "ABCD1234").Return(team, noAppError)

	_, err := service.JoinByInviteCode(ctx, "new-user", "abcd1234")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestJoinByInviteCode_Full(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByInviteCode", ctx, tx, "ABCD1234").Return(testTeam(1, ownerMember), noAppError)

	_, err := service.JoinByInviteCode(ctx, "new-user", "ABCD1234")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrLimitReached, err.Type)
}

func TestUpdateTeam_MaxMembersBelowCount(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &TeamService{repo: repo, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember, adminMember, plainMember), noAppError)

	limit := 2
	_, err := service.UpdateTeam(ctx, "owner", "team-1", team_dto.UpdateTeamRequest{
		Settings: &team_dto.TeamSettingsRequest{MaxMembers: &limit},
	})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, 3, err.Params["Count"])
}

func TestTeamStats_AggregatesMemberTasks(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockTeamRepo)
	tasks := new(use_cases.MockTaskRepo)
	service := &TeamService{repo: repo, tasks: tasks}

	repo.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember, plainMember), noAppError)
	tasks.On("ListByOwners", ctx, []string{"owner", "member"}).Return([]entity.TaskEntity{
		{ID: "t1", OwnerID: "owner", Status: entity.TaskCompleted, DueDate: time.Now()},
		{ID: "t2", OwnerID: "member", Status: entity.TaskInProgress, DueDate: time.Now().Add(-time.Hour)},
	}, noAppError)

	result, err := service.TeamStats(ctx, "member", "team-1")

	assert.Nil(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Overview.Total)
	assert.Equal(t, 50, result.Overview.CompletionRate)
	assert.Equal(t, 1, result.TaskProgress.Overdue)
	assert.Len(t, result.MemberActivity, 2)
	tasks.AssertExpectations(t)
}
