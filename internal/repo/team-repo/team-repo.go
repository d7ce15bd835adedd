package team_repo

import (
	"context"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teamColumns = `id, name, description, owner_id, members, invite_code, settings, created_at, updated_at`

// memberOf ist das JSONB-Containment für "userId ist in members".
const memberOf = `members @> jsonb_build_array(jsonb_build_object('userId', $1::text))`

type TeamRepo struct {
	db *pgxpool.Pool
}

func NewTeamRepo(db *pgxpool.Pool) TeamRepoContract {
	return &TeamRepo{db: db}
}

func scanTeam(row pgx.Row) (*entity.TeamEntity, error) {
	var t entity.TeamEntity
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.Members, &t.InviteCode, &t.Settings, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepo) InsertTeam(ctx context.Context, team *entity.TeamEntity) *app_errors.AppError {
	query := `
		INSERT INTO teams (id, name, description, owner_id, members, invite_code, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	if _, err := r.db.Exec(ctx, query, team.ID, team.Name, team.Description, team.OwnerID, team.Members, team.InviteCode, team.Settings, team.CreatedAt); err != nil {
		return app_errors.MapPgxError(err)
	}
	team.UpdatedAt = team.CreatedAt
	return nil
}

func (r *TeamRepo) GetTeamByID(ctx context.Context, teamID string) (*entity.TeamEntity, *app_errors.AppError) {
	t, err := scanTeam(r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, teamID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "team.not_found")
	}
	return t, nil
}

func (r *TeamRepo) GetTeamByIDForUpdate(ctx context.Context, t tx.Tx, teamID string) (*entity.TeamEntity, *app_errors.AppError) {
	team, err := scanTeam(tx.Use(r.db, t).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1 FOR UPDATE`, teamID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "team.not_found")
	}
	return team, nil
}

func (r *TeamRepo) GetTeamByInviteCode(ctx context.Context, t tx.Tx, code string) (*entity.TeamEntity, *app_errors.AppError) {
	team, err := scanTeam(tx.Use(r.db, t).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE invite_code = upper($1) FOR UPDATE`, code))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "team.invalid_invite_code")
	}
	return team, nil
}

func (r *TeamRepo) ListTeamsForUser(ctx context.Context, userID string) ([]entity.TeamSummary, *app_errors.AppError) {
	query := `
		SELECT t.id, t.name, t.description, t.owner_id, jsonb_array_length(t.members), m->>'role', t.created_at
		FROM teams t
		CROSS JOIN LATERAL jsonb_array_elements(t.members) m
		WHERE m->>'userId' = $1
		ORDER BY t.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	teams := []entity.TeamSummary{}
	for rows.Next() {
		var s entity.TeamSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.OwnerID, &s.MemberCount, &s.Role, &s.CreatedAt); err != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		teams = append(teams, s)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return teams, nil
}

func (r *TeamRepo) CountMemberships(ctx context.Context, userID string) (int, *app_errors.AppError) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teams WHERE `+memberOf, userID).Scan(&n); err != nil {
		return 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return n, nil
}

// UpdateTeam schreibt das Aggregat inklusive Mitgliederliste zurück. Overrides in Permissions bleiben erhalten.
func (r *TeamRepo) UpdateTeam(ctx context.Context, t tx.Tx, team *entity.TeamEntity) *app_errors.AppError {
	query := `
		UPDATE teams
		SET name = $2, description = $3, owner_id = $4, members = $5, invite_code = $6, settings = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := tx.Use(r.db, t).QueryRow(ctx, query, team.ID, team.Name, team.Description, team.OwnerID, team.Members, team.InviteCode, team.Settings).
		Scan(&team.UpdatedAt)
	if err != nil {
		return app_errors.MapPgxNotFound(err, "team.not_found")
	}
	return nil
}

func (r *TeamRepo) DeleteTeam(ctx context.Context, teamID string) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NotFound("team.not_found")
	}
	return nil
}
