package project_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `id, name, description, color, icon, owner_id, team_id, members, settings, status,
	start_date, end_date, last_activity_at, archived, archived_at, archived_by, created_at, updated_at`

type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) ProjectRepoContract {
	return &ProjectRepo{db: db}
}

func scanProject(row pgx.Row) (*entity.ProjectEntity, error) {
	var p entity.ProjectEntity
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.Icon, &p.OwnerID, &p.TeamID, &p.Members, &p.Settings, &p.Status,
		&p.StartDate, &p.EndDate, &p.LastActivityAt, &p.Archived, &p.ArchivedAt, &p.ArchivedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) InsertNewProject(ctx context.Context, p *entity.ProjectEntity) *app_errors.AppError {
	query := `
		INSERT INTO projects (id, name, description, color, icon, owner_id, team_id, members, settings, status,
			start_date, end_date, last_activity_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13, $13)
	`
	_, err := r.db.Exec(ctx, query, p.ID, p.Name, p.Description, p.Color, p.Icon, p.OwnerID, p.TeamID, p.Members, p.Settings, p.Status,
		p.StartDate, p.EndDate, p.CreatedAt)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	p.LastActivityAt = p.CreatedAt
	p.UpdatedAt = p.CreatedAt
	return nil
}

func (r *ProjectRepo) GetProjectByID(ctx context.Context, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "project.not_found")
	}
	return p, nil
}

func (r *ProjectRepo) GetProjectByIDForUpdate(ctx context.Context, t tx.Tx, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	p, err := scanProject(tx.Use(r.db, t).QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, projectID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "project.not_found")
	}
	return p, nil
}

// ListProjects liefert Projekte, in denen UserID Mitglied ist, optional auf ein Team eingeschränkt.
func (r *ProjectRepo) ListProjects(ctx context.Context, filter entity.ProjectListFilter) ([]entity.ProjectEntity, *app_errors.AppError) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE members @> jsonb_build_array(jsonb_build_object('userId', $1::text))
		AND archived = $2`
	args := []any{filter.UserID, filter.Archived}
	if filter.TeamID != nil {
		query += fmt.Sprintf(" AND team_id = $%d", len(args)+1)
		args = append(args, *filter.TeamID)
	}
	query += ` ORDER BY last_activity_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	projects := []entity.ProjectEntity{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return projects, nil
}

func (r *ProjectRepo) UpdateProject(ctx context.Context, t tx.Tx, p *entity.ProjectEntity) *app_errors.AppError {
	query := `
		UPDATE projects SET
			name = $2, description = $3, color = $4, icon = $5, members = $6, settings = $7, status = $8,
			start_date = $9, end_date = $10, archived = $11, archived_at = $12, archived_by = $13,
			last_activity_at = now(), updated_at = now()
		WHERE id = $1
		RETURNING last_activity_at, updated_at
	`
	err := tx.Use(r.db, t).QueryRow(ctx, query, p.ID, p.Name, p.Description, p.Color, p.Icon, p.Members, p.Settings, p.Status,
		p.StartDate, p.EndDate, p.Archived, p.ArchivedAt, p.ArchivedBy).Scan(&p.LastActivityAt, &p.UpdatedAt)
	if err != nil {
		return app_errors.MapPgxNotFound(err, "project.not_found")
	}
	return nil
}

func (r *ProjectRepo) DeleteProject(ctx context.Context, projectID string) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NotFound("project.not_found")
	}
	return nil
}

func (r *ProjectRepo) TouchActivity(ctx context.Context, projectID string, at time.Time) *app_errors.AppError {
	if _, err := r.db.Exec(ctx, `UPDATE projects SET last_activity_at = $2 WHERE id = $1 AND last_activity_at < $2`, projectID, at); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}
