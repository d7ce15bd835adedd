package invitation_case

import (
	"context"
	"strings"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	invitation_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/invitation-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/permission"
	"github.com/Xenn-00/aufgaben-team/internal/queue"
	invitation_repo "github.com/Xenn-00/aufgaben-team/internal/repo/invitation-repo"
	notification_repo "github.com/Xenn-00/aufgaben-team/internal/repo/notification-repo"
	team_repo "github.com/Xenn-00/aufgaben-team/internal/repo/team-repo"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	worker_task "github.com/Xenn-00/aufgaben-team/internal/worker/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type InvitationService struct {
	repo          invitation_repo.InvitationRepoContract
	teams         team_repo.TeamRepoContract
	users         user_repo.UserRepoContract
	txManager     tx.TxManager
	taskQueue     queue.TaskQueueClient
	notifications notification_repo.NotificationRepoContract
}

func NewInvitationService(db *pgxpool.Pool, mdb *mongo.Database, taskQueue queue.TaskQueueClient) InvitationServiceContract {
	return &InvitationService{
		repo:          invitation_repo.NewInvitationRepo(db),
		teams:         team_repo.NewTeamRepo(db),
		users:         user_repo.NewUserRepo(db),
		txManager:     tx.NewPgxTxManager(db),
		taskQueue:     taskQueue,
		notifications: notification_repo.NewNotificationRepo(mdb),
	}
}

func (s *InvitationService) SendInvitation(ctx context.Context, userID, teamID string, req invitation_dto.SendInvitationRequest) (*invitation_dto.InvitationResponse, *app_errors.AppError) {
	if !req.HasTarget() {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "invitation.target_required", nil)
	}

	// 1. Team und Berechtigung
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.FindMember(userID) == nil {
		return nil, app_errors.NotFound("team.not_found")
	}
	if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.ManageMembers) &&
		!permission.Has(permission.TeamPolicy, userID, team.Members, permission.InviteMembers) {
		return nil, app_errors.Forbidden()
	}

	// 2. Empfänger auflösen
	var invitee *entity.UserEntity
	if req.UserID != "" {
		invitee, err = s.users.FindByUserID(ctx, req.UserID)
	} else {
		invitee, err = s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	}
	if err != nil {
		return nil, err
	}
	if invitee.ID == userID {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvitation, "invitation.self_invite", nil)
	}
	if team.FindMember(invitee.ID) != nil {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "team.already_member", nil)
	}
	if team.IsFull() {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrLimitReached, "team.max_members_reached", nil)
	}

	role := team.Settings.DefaultRole
	if req.Role != "" {
		role = entity.TeamRole(req.Role)
	}
	if !role.IsValid() || role == entity.TeamRoleOwner {
		role = entity.TeamRoleMember
	}

	id, idErr := utils.NewID()
	if idErr != nil {
		return nil, app_errors.Internal(idErr)
	}

	// 3. Abgelaufene offene Einladung des Paars schließen und neue speichern, beides in einer Transaktion.
	// Ein zweiter noch gültiger Eintrag für dasselbe Paar scheitert am Unique-Index.
	now := time.Now()
	inv := &entity.InvitationEntity{
		ID:        id,
		TeamID:    team.ID,
		InviterID: userID,
		InviteeID: invitee.ID,
		Role:      role,
		Status:    entity.InvitationPending,
		Message:   req.Message,
		CreatedAt: now,
		ExpiresAt: now.Add(entity.InvitationTTL),
	}
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cancelled, err := s.repo.CancelExpiredPending(ctx, tx, team.ID, invitee.ID, now)
	if err != nil {
		return nil, err
	}
	if cancelled > 0 {
		log.Info().Str("team_id", team.ID).Str("invitee_id", invitee.ID).Int64("count", cancelled).
			Msg("abgelaufene Einladung vor Neuversand geschlossen")
	}
	if err := s.repo.InsertInvitation(ctx, tx, inv); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// 4. E-Mail und Benachrichtigung sind best effort
	if s.taskQueue != nil {
		if err := s.taskQueue.EnqueueTeamInvitationEmail(&worker_task.TeamInvitationEmailPayload{InvitationID: inv.ID}); err != nil {
			log.Error().Err(err).Str("invitation_id", inv.ID).Msg("Einladungs-Mail konnte nicht eingereiht werden")
		}
	}
	use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
		RecipientID: invitee.ID,
		Type:        entity.NotifyTeamInvitation,
		Title:       "Team-Einladung",
		Message:     team.Name,
		Data:        map[string]any{"invitationId": inv.ID, "teamId": team.ID, "invitedBy": userID, "role": role},
	})

	return s.detail(ctx, inv.ID, now)
}

func (s *InvitationService) ListTeamInvitations(ctx context.Context, userID, teamID string, query invitation_dto.ListTeamInvitationsQuery) ([]invitation_dto.InvitationResponse, *app_errors.AppError) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.FindMember(userID) == nil {
		return nil, app_errors.NotFound("team.not_found")
	}
	if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.ManageMembers) &&
		!permission.Has(permission.TeamPolicy, userID, team.Members, permission.InviteMembers) {
		return nil, app_errors.Forbidden()
	}

	var status *entity.InvitationStatus
	if query.Status != "" {
		st := entity.InvitationStatus(query.Status)
		status = &st
	}

	details, err := s.repo.ListTeamInvitations(ctx, teamID, status)
	if err != nil {
		return nil, err
	}
	return toResponses(details, time.Now()), nil
}

func (s *InvitationService) ListMyInvitations(ctx context.Context, userID string) ([]invitation_dto.InvitationResponse, *app_errors.AppError) {
	now := time.Now()
	details, err := s.repo.ListPendingForInvitee(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return toResponses(details, now), nil
}

// AcceptInvitation fügt das Mitglied hinzu und markiert die Einladung in einer Transaktion.
func (s *InvitationService) AcceptInvitation(ctx context.Context, userID, invitationID string) (*invitation_dto.AcceptInvitationResponse, *app_errors.AppError) {
	// 0. Transaktion starten
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. Einladung sperren und prüfen
	inv, err := s.repo.GetInvitationByIDForUpdate(ctx, tx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.InviteeID != userID {
		return nil, app_errors.Forbidden()
	}
	if inv.Status != entity.InvitationPending {
		return nil, notPending("invitation.cannot_accept", inv.Status)
	}
	now := time.Now()
	if inv.IsExpired(now) {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvitation, "invitation.expired", nil)
	}

	// 2. Team sperren, Mitglied hinzufügen
	team, err := s.teams.GetTeamByIDForUpdate(ctx, tx, inv.TeamID)
	if err != nil {
		return nil, err
	}
	if team.FindMember(userID) != nil {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "team.already_member", nil)
	}
	if team.IsFull() {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrLimitReached, "team.max_members_reached", nil)
	}
	team.Members = append(team.Members, entity.TeamMember{UserID: userID, Role: inv.Role, JoinedAt: now})

	if err := s.teams.UpdateTeam(ctx, tx, team); err != nil {
		return nil, err
	}

	// 3. Einladung als angenommen markieren
	if err := s.repo.UpdateInvitationStatus(ctx, tx, inv.ID, entity.InvitationAccepted, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// 4. Besitzer und Einladenden informieren
	use_cases.NotifyMany(ctx, s.notifications, []string{team.OwnerID, inv.InviterID}, userID, func(recipientID string) *entity.NotificationEntity {
		return &entity.NotificationEntity{
			RecipientID: recipientID,
			Type:        entity.NotifyInvitationAccepted,
			Title:       "Einladung angenommen",
			Message:     team.Name,
			Data:        map[string]any{"invitationId": inv.ID, "teamId": team.ID, "userId": userID},
		}
	})

	inv.Status = entity.InvitationAccepted
	inv.RespondedAt = &now
	return &invitation_dto.AcceptInvitationResponse{
		Invitation: invitation_dto.InvitationResponse{
			InvitationDetail: entity.InvitationDetail{InvitationEntity: *inv, TeamName: team.Name},
		},
		TeamID: team.ID,
		Role:   inv.Role,
	}, nil
}

func (s *InvitationService) DenyInvitation(ctx context.Context, userID, invitationID string) (*invitation_dto.InvitationResponse, *app_errors.AppError) {
	inv, err := s.repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.InviteeID != userID {
		return nil, app_errors.Forbidden()
	}
	if inv.Status != entity.InvitationPending {
		return nil, notPending("invitation.cannot_deny", inv.Status)
	}

	now := time.Now()
	if err := s.repo.UpdateInvitationStatus(ctx, nil, inv.ID, entity.InvitationDenied, now); err != nil {
		return nil, err
	}

	use_cases.Notify(ctx, s.notifications, &entity.NotificationEntity{
		RecipientID: inv.InviterID,
		Type:        entity.NotifyInvitationDenied,
		Title:       "Einladung abgelehnt",
		Data:        map[string]any{"invitationId": inv.ID, "teamId": inv.TeamID, "userId": userID},
	})

	return s.detail(ctx, inv.ID, now)
}

// CancelInvitation: der Einladende selbst oder wer im Team manage_members hat.
func (s *InvitationService) CancelInvitation(ctx context.Context, userID, invitationID string) (*invitation_dto.InvitationResponse, *app_errors.AppError) {
	inv, err := s.repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if inv.InviterID != userID {
		team, err := s.teams.GetTeamByID(ctx, inv.TeamID)
		if err != nil {
			return nil, err
		}
		if !permission.Has(permission.TeamPolicy, userID, team.Members, permission.ManageMembers) {
			return nil, app_errors.Forbidden()
		}
	}
	if inv.Status != entity.InvitationPending {
		return nil, notPending("invitation.cannot_cancel", inv.Status)
	}

	now := time.Now()
	if err := s.repo.UpdateInvitationStatus(ctx, nil, inv.ID, entity.InvitationCancelled, now); err != nil {
		return nil, err
	}

	return s.detail(ctx, inv.ID, now)
}

func (s *InvitationService) detail(ctx context.Context, invitationID string, now time.Time) (*invitation_dto.InvitationResponse, *app_errors.AppError) {
	d, err := s.repo.GetInvitationDetail(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*d, now)
	return &resp, nil
}

func notPending(key string, status entity.InvitationStatus) *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvitation, key, nil).
		WithParams(map[string]any{"Status": string(status)})
}

func toResponse(d entity.InvitationDetail, now time.Time) invitation_dto.InvitationResponse {
	return invitation_dto.InvitationResponse{
		InvitationDetail: d,
		Expired:          d.Status == entity.InvitationPending && d.IsExpired(now),
	}
}

func toResponses(details []entity.InvitationDetail, now time.Time) []invitation_dto.InvitationResponse {
	out := make([]invitation_dto.InvitationResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toResponse(d, now))
	}
	return out
}
