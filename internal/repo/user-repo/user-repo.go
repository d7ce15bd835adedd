package user_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserColumns ist die Spaltenreihenfolge, die ScanUser erwartet.
const UserColumns = `id, username, email, password_hash, fullname, bio, avatar_url, avatar_public_id, created_at, updated_at`

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepoContract {
	return &UserRepo{
		db: db,
	}
}

func ScanUser(row pgx.Row) (*entity.UserEntity, error) {
	var u entity.UserEntity
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Bio, &u.AvatarURL, &u.AvatarPublicID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	query := `SELECT ` + UserColumns + ` FROM users WHERE id = $1 LIMIT 1`

	u, err := ScanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "user.not_found")
	}
	return u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	query := `SELECT ` + UserColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`

	u, err := ScanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "user.not_found")
	}
	return u, nil
}

// FindSummaries lädt die öffentlichen Kurzprofile für Mitgliederlisten. Fehlende IDs fehlen in der Map.
func (r *UserRepo) FindSummaries(ctx context.Context, userIDs []string) (map[string]entity.UserSummary, *app_errors.AppError) {
	out := make(map[string]entity.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	query := `SELECT id, username, fullname, avatar_url FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.AvatarURL); err != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	return out, nil
}

// ShareTeam prüft, ob beide Benutzer Mitglied mindestens eines gemeinsamen Teams sind.
func (r *UserRepo) ShareTeam(ctx context.Context, userA, userB string) (bool, *app_errors.AppError) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM teams
			WHERE members @> jsonb_build_array(jsonb_build_object('userId', $1::text))
			AND members @> jsonb_build_array(jsonb_build_object('userId', $2::text))
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return exists, nil
}

func (r *UserRepo) CountUsers(ctx context.Context) (int, *app_errors.AppError) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return count, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, model entity.UserUpdate) (*entity.UserEntity, *app_errors.AppError) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	argPos := 1

	if model.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argPos))
		args = append(args, *model.Username)
		argPos++
	}

	if model.FullName != nil {
		setClauses = append(setClauses, fmt.Sprintf("fullname = $%d", argPos))
		args = append(args, *model.FullName)
		argPos++
	}

	if model.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argPos))
		args = append(args, *model.Email)
		argPos++
	}

	if model.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argPos))
		args = append(args, *model.Bio)
		argPos++
	}

	if len(setClauses) == 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}
	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argPos, UserColumns)

	args = append(args, userID)

	u, err := ScanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "user.not_found")
	}

	return u, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NotFound("user.not_found")
	}
	return nil
}

// UpdateAvatar setzt URL und Public-ID gemeinsam; nil löscht beide.
func (r *UserRepo) UpdateAvatar(ctx context.Context, userID string, avatarURL, publicID *string) (*entity.UserEntity, *app_errors.AppError) {
	query := `
		UPDATE users
		SET avatar_url = $1, avatar_public_id = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + UserColumns

	u, err := ScanUser(r.db.QueryRow(ctx, query, avatarURL, publicID, userID))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "user.not_found")
	}
	return u, nil
}

// DeleteUser entfernt den Benutzer. Aufgaben, eigene Teams und Projekte fallen per ON DELETE CASCADE weg,
// Mitgliedschaften in fremden Teams/Projekten werden aus den JSONB-Listen entfernt.
func (r *UserRepo) DeleteUser(ctx context.Context, t tx.Tx, userID string) *app_errors.AppError {
	q := tx.Use(r.db, t)

	memberFilter := `
		SET members = COALESCE((
			SELECT jsonb_agg(m) FROM jsonb_array_elements(members) m WHERE m->>'userId' <> $1
		), '[]'::jsonb), updated_at = now()
		WHERE members @> jsonb_build_array(jsonb_build_object('userId', $1::text))
	`
	for _, table := range []string{"teams", "projects"} {
		if _, err := q.Exec(ctx, `UPDATE `+table+memberFilter, userID); err != nil {
			return app_errors.MapPgxError(err)
		}
	}

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NotFound("user.not_found")
	}
	return nil
}
