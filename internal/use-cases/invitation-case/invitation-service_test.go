package invitation_case

import (
	"context"
	"errors"
	"testing"
	"time"

	invitation_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/invitation-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var noAppError = (*app_errors.AppError)(nil)

func testTeam(maxMembers int, members ...entity.TeamMember) *entity.TeamEntity {
	settings := entity.DefaultTeamSettings()
	settings.MaxMembers = maxMembers
	return &entity.TeamEntity{
		ID:       "team-1",
		Name:     "Core",
		OwnerID:  "owner",
		Members:  members,
		Settings: settings,
	}
}

func pendingInvitation() *entity.InvitationEntity {
	return &entity.InvitationEntity{
		ID:        "inv-1",
		TeamID:    "team-1",
		InviterID: "owner",
		InviteeID: "bob",
		Role:      entity.TeamRoleMember,
		Status:    entity.InvitationPending,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(entity.InvitationTTL),
	}
}

var ownerMember = entity.TeamMember{UserID: "owner", Role: entity.TeamRoleOwner}

func TestSendInvitation_Success(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	taskQueue := new(use_cases.MockTaskQueue)
	notifications := new(use_cases.MockNotificationRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, teams: teams, users: users, txManager: txManager, taskQueue: taskQueue, notifications: notifications}

	teams.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember), noAppError)
	users.On("FindByEmail", ctx, "bob@example.com").Return(&entity.UserEntity{ID: "bob"}, noAppError)
	expectTx(ctx, txManager, tx, true)
	repo.On("CancelExpiredPending", ctx, tx, "team-1", "bob", mock.AnythingOfType("time.Time")).Return(int64(0), noAppError)

	var inserted *entity.InvitationEntity
	repo.On("InsertInvitation", ctx, tx, mock.AnythingOfType("*entity.InvitationEntity")).
		Run(func(args mock.Arguments) { inserted = args.Get(2).(*entity.InvitationEntity) }).
		Return(noAppError)
	taskQueue.On("EnqueueTeamInvitationEmail", mock.AnythingOfType("*worker_task.TeamInvitationEmailPayload")).Return(nil)
	notifications.On("InsertNotification", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.RecipientID == "bob" && n.Type == entity.NotifyTeamInvitation
	})).Return(noAppError)
	repo.On("GetInvitationDetail", ctx, mock.Anything).Return(&entity.InvitationDetail{
		InvitationEntity: *pendingInvitation(), TeamName: "Core",
	}, noAppError)

	resp, err := service.SendInvitation(ctx, "owner", "team-1", invitation_dto.SendInvitationRequest{Email: "Bob@Example.com"})

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Expired)
	require.NotNil(t, inserted)
	assert.Equal(t, entity.TeamRoleMember, inserted.Role)
	assert.Equal(t, entity.InvitationPending, inserted.Status)
	assert.WithinDuration(t, inserted.CreatedAt.Add(entity.InvitationTTL), inserted.ExpiresAt, time.Second)
	taskQueue.AssertCalled(t, "EnqueueTeamInvitationEmail", &worker_task.TeamInvitationEmailPayload{InvitationID: inserted.ID})
	tx.AssertCalled(t, "Commit", ctx)
	notifications.AssertExpectations(t)
}

func TestSendInvitation_QueueFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	taskQueue := new(use_cases.MockTaskQueue)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, teams: teams, users: users, txManager: txManager, taskQueue: taskQueue}

	teams.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember), noAppError)
	users.On("FindByUserID", ctx, "bob").Return(&entity.UserEntity{ID: "bob"}, noAppError)
	expectTx(ctx, txManager, tx, true)
	repo.On("CancelExpiredPending", ctx, tx, "team-1", "bob", mock.Anything).Return(int64(0), noAppError)
	repo.On("InsertInvitation", ctx, tx, mock.Anything).Return(noAppError)
	taskQueue.On("EnqueueTeamInvitationEmail", mock.Anything).Return(errors.New("redis down"))
	repo.On("GetInvitationDetail", ctx, mock.Anything).Return(&entity.InvitationDetail{InvitationEntity: *pendingInvitation()}, noAppError)

	resp, err := service.SendInvitation(ctx, "owner", "team-1", invitation_dto.SendInvitationRequest{UserID: "bob"})

	assert.Nil(t, err)
	assert.NotNil(t, resp)
}

func TestSendInvitation_PendingPairConflict(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	taskQueue := new(use_cases.MockTaskQueue)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, teams: teams, users: users, txManager: txManager, taskQueue: taskQueue}

	teams.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember), noAppError)
	users.On("FindByUserID", ctx, "bob").Return(&entity.UserEntity{ID: "bob"}, noAppError)
	expectTx(ctx, txManager, tx, false)
	// die offene Einladung ist noch gültig, also wird nichts geschlossen
	repo.On("CancelExpiredPending", ctx, tx, "team-1", "bob", mock.Anything).Return(int64(0), noAppError)
	repo.On("InsertInvitation", ctx, tx, mock.Anything).
		Return(app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "invitation.already_pending", nil))

	_, err := service.SendInvitation(ctx, "owner", "team-1", invitation_dto.SendInvitationRequest{UserID: "bob"})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusConflict, err.Code)
	assert.Equal(t, "invitation.already_pending", err.MessageKey)
	taskQueue.AssertNotCalled(t, "EnqueueTeamInvitationEmail", mock.Anything)
	tx.AssertNotCalled(t, "Commit", ctx)
	tx.AssertCalled(t, "Rollback", ctx)
}

func TestSendInvitation_ExpiredPendingIsReplaced(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	users := new(use_cases.MockUserRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, teams: teams, users: users, txManager: txManager}

	teams.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember), noAppError)
	users.On("FindByUserID", ctx, "bob").Return(&entity.UserEntity{ID: "bob"}, noAppError)
	expectTx(ctx, txManager, tx, true)

	var calls []string
	repo.On("CancelExpiredPending", ctx, tx, "team-1", "bob", mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { calls = append(calls, "cancel") }).
		Return(int64(1), noAppError)
	repo.On("InsertInvitation", ctx, tx, mock.AnythingOfType("*entity.InvitationEntity")).
		Run(func(mock.Arguments) { calls = append(calls, "insert") }).
		Return(noAppError)
	repo.On("GetInvitationDetail", ctx, mock.Anything).Return(&entity.InvitationDetail{InvitationEntity: *pendingInvitation()}, noAppError)

	resp, err := service.SendInvitation(ctx, "owner", "team-1", invitation_dto.SendInvitationRequest{UserID: "bob"})

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Expired)
	assert.Equal(t, []string{"cancel", "insert"}, calls)
	tx.AssertCalled(t, "Commit", ctx)
}

func TestSendInvitation_Rejections(t *testing.T) {
	ctx := context.Background()
	plain := entity.TeamMember{UserID: "member", Role: entity.TeamRoleMember, Permissions: map[string]bool{"invite_members": false}}
	bob := entity.TeamMember{UserID: "bob", Role: entity.TeamRoleMember}

	cases := []struct {
		name   string
		caller string
		team   *entity.TeamEntity
		req    invitation_dto.SendInvitationRequest
		code   int
		key    string
	}{
		{"no target", "owner", testTeam(10, ownerMember), invitation_dto.SendInvitationRequest{}, fiber.StatusBadRequest, "invitation.target_required"},
		{"not a member", "stranger", testTeam(10, ownerMember), invitation_dto.SendInvitationRequest{UserID: "bob"}, fiber.StatusNotFound, "team.not_found"},
		{"invite revoked", "member", testTeam(10, ownerMember, plain), invitation_dto.SendInvitationRequest{UserID: "bob"}, fiber.StatusForbidden, ""},
		{"self", "owner", testTeam(10, ownerMember), invitation_dto.SendInvitationRequest{UserID: "owner"}, fiber.StatusBadRequest, "invitation.self_invite"},
		{"already member", "owner", testTeam(10, ownerMember, bob), invitation_dto.SendInvitationRequest{UserID: "bob"}, fiber.StatusConflict, "team.already_member"},
		{"team full", "owner", testTeam(1, ownerMember), invitation_dto.SendInvitationRequest{UserID: "bob"}, fiber.StatusBadRequest, "team.max_members_reached"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(use_cases.MockInvitationRepo)
			teams := new(use_cases.MockTeamRepo)
			users := new(use_cases.MockUserRepo)
			service := &InvitationService{repo: repo, teams: teams, users: users}

			teams.On("GetTeamByID", ctx, "team-1").Return(tc.team, noAppError)
			users.On("FindByUserID", ctx, tc.req.UserID).Return(&entity.UserEntity{ID: tc.req.UserID}, noAppError).Maybe()

			_, err := service.SendInvitation(ctx, tc.caller, "team-1", tc.req)

			require.NotNil(t, err)
			assert.Equal(t, tc.code, err.Code)
			if tc.key != "" {
				assert.Equal(t, tc.key, err.MessageKey)
			}
			repo.AssertNotCalled(t, "InsertInvitation", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func expectTx(ctx context.Context, txManager *use_cases.MockTxManager, tx *use_cases.MockTx, commit bool) {
	txManager.On("Begin", ctx).Return(tx, noAppError)
	tx.On("Rollback", ctx).Return(noAppError)
	if commit {
		tx.On("Commit", ctx).Return(noAppError)
	}
}

func TestAcceptInvitation_Success(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	notifications := new(use_cases.MockNotificationRepo)
	service := &InvitationService{repo: repo, teams: teams, txManager: txManager, notifications: notifications}

	expectTx(ctx, txManager, tx, true)
	repo.On("GetInvitationByIDForUpdate", ctx, tx, "inv-1").Return(pendingInvitation(), noAppError)
	teams.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(10, ownerMember), noAppError)
	teams.On("UpdateTeam", ctx, tx, mock.MatchedBy(func(team *entity.TeamEntity) bool {
		m := team.FindMember("bob")
		return m != nil && m.Role == entity.TeamRoleMember
	})).Return(noAppError)
	repo.On("UpdateInvitationStatus", ctx, tx, "inv-1", entity.InvitationAccepted, mock.AnythingOfType("time.Time")).Return(noAppError)
	// Besitzer und Einladender sind dieselbe Person, also genau eine Benachrichtigung
	notifications.On("InsertNotification", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.RecipientID == "owner" && n.Type == entity.NotifyInvitationAccepted
	})).Return(noAppError).Once()

	resp, err := service.AcceptInvitation(ctx, "bob", "inv-1")

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "team-1", resp.TeamID)
	assert.Equal(t, entity.TeamRoleMember, resp.Role)
	assert.Equal(t, entity.InvitationAccepted, resp.Invitation.Status)
	assert.NotNil(t, resp.Invitation.RespondedAt)
	tx.AssertCalled(t, "Commit", ctx)
	notifications.AssertExpectations(t)
}

func TestAcceptInvitation_AlreadyAccepted(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, teams: teams, txManager: txManager}

	inv := pendingInvitation()
	inv.Status = entity.InvitationAccepted

	expectTx(ctx, txManager, tx, false)
	repo.On("GetInvitationByIDForUpdate", ctx, tx, "inv-1").Return(inv, noAppError)

	_, err := service.AcceptInvitation(ctx, "bob", "inv-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, "invitation.cannot_accept", err.MessageKey)
	assert.Equal(t, "accepted", err.Params["Status"])
	teams.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptInvitation_Expired(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, txManager: txManager}

	inv := pendingInvitation()
	inv.ExpiresAt = time.Now().Add(-time.Minute)

	expectTx(ctx, txManager, tx, false)
	repo.On("GetInvitationByIDForUpdate", ctx, tx, "inv-1").Return(inv, noAppError)

	_, err := service.AcceptInvitation(ctx, "bob", "inv-1")

	require.NotNil(t, err)
	assert.Equal(t, "invitation.expired", err.MessageKey)
}

func TestAcceptInvitation_WrongUser(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetInvitationByIDForUpdate", ctx, tx, "inv-1").Return(pendingInvitation(), noAppError)

	_, err := service.AcceptInvitation(ctx, "mallory", "inv-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestAcceptInvitation_TeamFilledUpMeanwhile(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &InvitationService{repo: repo, teams: teams, txManager: txManager}

	expectTx(ctx, txManager, tx, false)
	repo.On("GetInvitationByIDForUpdate", ctx, tx, "inv-1").Return(pendingInvitation(), noAppError)
	teams.On("GetTeamByIDForUpdate", ctx, tx, "team-1").Return(testTeam(1, ownerMember), noAppError)

	_, err := service.AcceptInvitation(ctx, "bob", "inv-1")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrLimitReached, err.Type)
	repo.AssertNotCalled(t, "UpdateInvitationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDenyInvitation_NotifiesInviter(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	notifications := new(use_cases.MockNotificationRepo)
	service := &InvitationService{repo: repo, notifications: notifications}

	denied := pendingInvitation()
	denied.Status = entity.InvitationDenied

	repo.On("GetInvitationByID", ctx, "inv-1").Return(pendingInvitation(), noAppError)
	repo.On("UpdateInvitationStatus", ctx, nil, "inv-1", entity.InvitationDenied, mock.AnythingOfType("time.Time")).Return(noAppError)
	notifications.On("InsertNotification", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.RecipientID == "owner" && n.Type == entity.NotifyInvitationDenied
	})).Return(noAppError)
	repo.On("GetInvitationDetail", ctx, "inv-1").Return(&entity.InvitationDetail{InvitationEntity: *denied}, noAppError)

	resp, err := service.DenyInvitation(ctx, "bob", "inv-1")

	assert.Nil(t, err)
	assert.Equal(t, entity.InvitationDenied, resp.Status)
	notifications.AssertExpectations(t)
}

func TestDenyInvitation_OnlyInvitee(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	service := &InvitationService{repo: repo}

	repo.On("GetInvitationByID", ctx, "inv-1").Return(pendingInvitation(), noAppError)

	_, err := service.DenyInvitation(ctx, "owner", "inv-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestCancelInvitation_AdminMayCancelOthers(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	service := &InvitationService{repo: repo, teams: teams}

	admin := entity.TeamMember{UserID: "admin", Role: entity.TeamRoleAdmin}
	cancelled := pendingInvitation()
	cancelled.Status = entity.InvitationCancelled

	repo.On("GetInvitationByID", ctx, "inv-1").Return(pendingInvitation(), noAppError)
	teams.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember, admin), noAppError)
	repo.On("UpdateInvitationStatus", ctx, nil, "inv-1", entity.InvitationCancelled, mock.AnythingOfType("time.Time")).Return(noAppError)
	repo.On("GetInvitationDetail", ctx, "inv-1").Return(&entity.InvitationDetail{InvitationEntity: *cancelled}, noAppError)

	resp, err := service.CancelInvitation(ctx, "admin", "inv-1")

	assert.Nil(t, err)
	assert.Equal(t, entity.InvitationCancelled, resp.Status)
}

func TestCancelInvitation_PlainMemberForbidden(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	teams := new(use_cases.MockTeamRepo)
	service := &InvitationService{repo: repo, teams: teams}

	member := entity.TeamMember{UserID: "member", Role: entity.TeamRoleMember}
	repo.On("GetInvitationByID", ctx, "inv-1").Return(pendingInvitation(), noAppError)
	teams.On("GetTeamByID", ctx, "team-1").Return(testTeam(10, ownerMember, member), noAppError)

	_, err := service.CancelInvitation(ctx, "member", "inv-1")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

func TestListMyInvitations_FlagsNothingExpired(t *testing.T) {
	ctx := context.Background()

	repo := new(use_cases.MockInvitationRepo)
	service := &InvitationService{repo: repo}

	repo.On("ListPendingForInvitee", ctx, "bob", mock.AnythingOfType("time.Time")).
		Return([]entity.InvitationDetail{{InvitationEntity: *pendingInvitation(), TeamName: "Core"}}, noAppError)

	resp, err := service.ListMyInvitations(ctx, "bob")

	assert.Nil(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Core", resp[0].TeamName)
	assert.False(t, resp[0].Expired)
}
