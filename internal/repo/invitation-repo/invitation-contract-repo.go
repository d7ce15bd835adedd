package invitation_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type InvitationRepoContract interface {
	CancelExpiredPending(ctx context.Context, t tx.Tx, teamID, inviteeID string, now time.Time) (int64, *app_errors.AppError)
	InsertInvitation(ctx context.Context, t tx.Tx, inv *entity.InvitationEntity) *app_errors.AppError
	GetInvitationByID(ctx context.Context, invitationID string) (*entity.InvitationEntity, *app_errors.AppError)
	GetInvitationByIDForUpdate(ctx context.Context, t tx.Tx, invitationID string) (*entity.InvitationEntity, *app_errors.AppError)
	GetInvitationDetail(ctx context.Context, invitationID string) (*entity.InvitationDetail, *app_errors.AppError)
	UpdateInvitationStatus(ctx context.Context, t tx.Tx, invitationID string, status entity.InvitationStatus, respondedAt time.Time) *app_errors.AppError
	ListTeamInvitations(ctx context.Context, teamID string, status *entity.InvitationStatus) ([]entity.InvitationDetail, *app_errors.AppError)
	ListPendingForInvitee(ctx context.Context, inviteeID string, now time.Time) ([]entity.InvitationDetail, *app_errors.AppError)
}
