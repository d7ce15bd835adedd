package invitation_repo

import (
	"context"
	"errors"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invitationColumns = `i.id, i.team_id, i.inviter_id, i.invitee_id, i.role, i.status, i.message, i.created_at, i.responded_at, i.expires_at`

const detailSelect = `
	SELECT ` + invitationColumns + `, t.name, inviter.username, invitee.username, invitee.email
	FROM invitations i
	JOIN teams t ON t.id = i.team_id
	JOIN users inviter ON inviter.id = i.inviter_id
	JOIN users invitee ON invitee.id = i.invitee_id
`

type InvitationRepo struct {
	db *pgxpool.Pool
}

func NewInvitationRepo(db *pgxpool.Pool) InvitationRepoContract {
	return &InvitationRepo{db: db}
}

func scanInvitation(row pgx.Row) (*entity.InvitationEntity, error) {
	var i entity.InvitationEntity
	if err := row.Scan(&i.ID, &i.TeamID, &i.InviterID, &i.InviteeID, &i.Role, &i.Status, &i.Message, &i.CreatedAt, &i.RespondedAt, &i.ExpiresAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func scanDetail(row pgx.Row) (*entity.InvitationDetail, error) {
	var d entity.InvitationDetail
	i := &d.InvitationEntity
	err := row.Scan(&i.ID, &i.TeamID, &i.InviterID, &i.InviteeID, &i.Role, &i.Status, &i.Message, &i.CreatedAt, &i.RespondedAt, &i.ExpiresAt,
		&d.TeamName, &d.InviterUsername, &d.InviteeUsername, &d.InviteeEmail)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CancelExpiredPending gibt das Paar (Team, Eingeladener) wieder frei: abgelaufene,
// noch offene Einladungen blockieren sonst den partiellen Unique-Index.
func (r *InvitationRepo) CancelExpiredPending(ctx context.Context, t tx.Tx, teamID, inviteeID string, now time.Time) (int64, *app_errors.AppError) {
	query := `
		UPDATE invitations
		SET status = 'cancelled', responded_at = $3
		WHERE team_id = $1 AND invitee_id = $2 AND status = 'pending' AND expires_at <= $3
	`
	tag, err := tx.Use(r.db, t).Exec(ctx, query, teamID, inviteeID, now)
	if err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected(), nil
}

// InsertInvitation: der partielle Unique-Index erlaubt nur eine offene Einladung pro (Team, Eingeladener).
func (r *InvitationRepo) InsertInvitation(ctx context.Context, t tx.Tx, inv *entity.InvitationEntity) *app_errors.AppError {
	query := `
		INSERT INTO invitations (id, team_id, inviter_id, invitee_id, role, status, message, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Use(r.db, t).Exec(ctx, query, inv.ID, inv.TeamID, inv.InviterID, inv.InviteeID, inv.Role, inv.Status, inv.Message, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "invitations_pending_pair_key" {
			return app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "invitation.already_pending", err)
		}
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *InvitationRepo) GetInvitationByID(ctx context.Context, invitationID string) (*entity.InvitationEntity, *app_errors.AppError) {
	inv, err := scanInvitation(r.db.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1`, invitationID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "invitation.not_found")
	}
	return inv, nil
}

func (r *InvitationRepo) GetInvitationByIDForUpdate(ctx context.Context, t tx.Tx, invitationID string) (*entity.InvitationEntity, *app_errors.AppError) {
	inv, err := scanInvitation(tx.Use(r.db, t).QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1 FOR UPDATE`, invitationID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "invitation.not_found")
	}
	return inv, nil
}

func (r *InvitationRepo) GetInvitationDetail(ctx context.Context, invitationID string) (*entity.InvitationDetail, *app_errors.AppError) {
	d, err := scanDetail(r.db.QueryRow(ctx, detailSelect+` WHERE i.id = $1`, invitationID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "invitation.not_found")
	}
	return d, nil
}

// UpdateInvitationStatus ändert nur offene Einladungen; Übergänge sind einseitig.
func (r *InvitationRepo) UpdateInvitationStatus(ctx context.Context, t tx.Tx, invitationID string, status entity.InvitationStatus, respondedAt time.Time) *app_errors.AppError {
	query := `
		UPDATE invitations
		SET status = $2, responded_at = $3
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := tx.Use(r.db, t).Exec(ctx, query, invitationID, status, respondedAt)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrInvitation, "invitation.not_pending", nil)
	}
	return nil
}

func (r *InvitationRepo) ListTeamInvitations(ctx context.Context, teamID string, status *entity.InvitationStatus) ([]entity.InvitationDetail, *app_errors.AppError) {
	query := detailSelect + ` WHERE i.team_id = $1`
	args := []any{teamID}
	if status != nil {
		query += ` AND i.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY i.created_at DESC`

	return r.listDetails(ctx, query, args...)
}

func (r *InvitationRepo) ListPendingForInvitee(ctx context.Context, inviteeID string, now time.Time) ([]entity.InvitationDetail, *app_errors.AppError) {
	query := detailSelect + ` WHERE i.invitee_id = $1 AND i.status = 'pending' AND i.expires_at > $2 ORDER BY i.created_at DESC`
	return r.listDetails(ctx, query, inviteeID, now)
}

func (r *InvitationRepo) listDetails(ctx context.Context, query string, args ...any) ([]entity.InvitationDetail, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	out := []entity.InvitationDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return out, nil
}
