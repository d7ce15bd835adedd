package auth_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepo struct {
	db *pgxpool.Pool
}

func NewAuthRepo(db *pgxpool.Pool) AuthRepoContract {
	return &AuthRepo{
		db: db,
	}
}

// CountUsers zählt Benutzer, auf die alle gesetzten Filter passen. Vergleich ohne Groß-/Kleinschreibung.
func (r *AuthRepo) CountUsers(ctx context.Context, filter entity.UserCountFilter) (int64, *app_errors.AppError) {
	var count int64

	query := `SELECT COUNT(*) FROM users WHERE 1=1` // 1=1 dient als Platzhalter für einfache Erweiterungen
	args := []any{}
	argPos := 1

	if filter.Email != nil {
		query += fmt.Sprintf(" AND lower(email) = lower($%d)", argPos)
		args = append(args, *filter.Email)
		argPos++
	}

	if filter.Username != nil {
		query += fmt.Sprintf(" AND lower(username) = lower($%d)", argPos)
		args = append(args, *filter.Username)
		argPos++
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	return count, nil
}

// SaveUser speichert einen neuen Benutzer und liefert die gespeicherte Zeile zurück.
func (r *AuthRepo) SaveUser(ctx context.Context, model entity.UserEntity) (*entity.UserEntity, *app_errors.AppError) {
	cols := []string{"id", "username", "email", "password_hash", "fullname"}
	vals := []any{model.ID, model.Username, model.Email, model.PasswordHash, model.FullName}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
	INSERT INTO users (%s)
	VALUES (%s)
	RETURNING %s;
	`, strings.Join(cols, ","), strings.Join(placeholders, ","), user_repo.UserColumns)

	u, err := user_repo.ScanUser(r.db.QueryRow(ctx, query, vals...))
	if err != nil {
		var pgErr *pgconn.PgError
		// Race zwischen CountUsers und INSERT: der Unique-Index entscheidet.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_email_key" {
				return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUserExists, "auth.email_exists", err)
			}
			return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUserExists, "auth.username_exists", err)
		}
		return nil, app_errors.MapPgxError(err)
	}

	return u, nil
}

// FindByEmail sucht einen Benutzer anhand der übergebenen E‑Mail-Adresse.
func (r *AuthRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	query := `SELECT ` + user_repo.UserColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`

	u, err := user_repo.ScanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "user.not_found")
	}
	return u, nil
}

// FindByUsername sucht einen Benutzer anhand des Benutzernamens.
func (r *AuthRepo) FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError) {
	query := `SELECT ` + user_repo.UserColumns + ` FROM users WHERE lower(username) = lower($1) LIMIT 1`

	u, err := user_repo.ScanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, app_errors.MapPgxNotFound(err, "user.not_found")
	}
	return u, nil
}
