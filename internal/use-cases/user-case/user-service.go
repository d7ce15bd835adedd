package user_case

import (
	"context"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/cache"
	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	task_repo "github.com/Xenn-00/aufgaben-team/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	auth_case "github.com/Xenn-00/aufgaben-team/internal/use-cases/auth-case"
	"github.com/Xenn-00/aufgaben-team/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type UserService struct {
	repo      user_repo.UserRepoContract
	tasks     task_repo.TaskRepoContract
	txManager tx.TxManager
	cache     cache.Cache
	sessions  auth_case.SessionStore
	loc       *time.Location
	group     singleflight.Group
}

func NewUserService(db *pgxpool.Pool, redis *redis.Client, loc *time.Location) *UserService {
	return &UserService{
		repo:      user_repo.NewUserRepo(db),
		tasks:     task_repo.NewTaskRepo(db),
		txManager: tx.NewPgxTxManager(db),
		cache:     cache.NewRedisCache(redis),
		sessions:  auth_case.NewRedisSessionStore(redis),
		loc:       loc,
	}
}

var _ UserServiceContract = (*UserService)(nil)

func (s *UserService) UserSelfProfile(ctx context.Context, userID string) (*user_dto.UserResponse, *app_errors.AppError) {
	user, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user_dto.FromEntity(user)
	st, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Stats = st

	return &resp, nil
}

// UserProfileByID: volle Sicht für sich selbst, öffentliche Sicht plus Statistik für
// Teamkollegen, sonst nur die minimale Sicht.
func (s *UserService) UserProfileByID(ctx context.Context, targetID, viewerID string) (*user_dto.UserResponse, *app_errors.AppError) {
	if targetID == viewerID {
		return s.UserSelfProfile(ctx, viewerID)
	}

	user, err := s.repo.FindByUserID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	shared, err := s.repo.ShareTeam(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}

	resp := user_dto.PublicFromEntity(user)
	if !shared {
		resp.Bio = nil
		return &resp, nil
	}

	st, err := s.Stats(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp.Stats = st
	return &resp, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, targetID, viewerID string, req user_dto.UpdateProfileRequest) (*user_dto.UserResponse, *app_errors.AppError) {
	if targetID != viewerID {
		return nil, app_errors.Forbidden()
	}
	if req.IsEmpty() {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}

	user, err := s.repo.UpdateProfile(ctx, targetID, userUpdateFrom(req))
	if err != nil {
		return nil, err
	}

	resp := user_dto.FromEntity(user)
	return &resp, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, req user_dto.ChangePasswordRequest) *app_errors.AppError {
	user, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if ok, hashErr := utils.CheckPassword(user.PasswordHash, req.CurrentPassword); !ok || hashErr != nil {
		log.Debug().Err(hashErr).Str("user_id", userID).Msg("Aktuelles Passwort stimmt nicht")
		return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrInvalidCredentials, "auth.invalid_password", hashErr)
	}

	hashed, hashErr := utils.HashPassword(req.NewPassword)
	if hashErr != nil {
		return app_errors.Internal(hashErr)
	}

	return s.repo.UpdatePassword(ctx, userID, hashed)
}

// UpdateAvatarURL setzt eine externe Bild-URL. Eine vorher hochgeladene Datei bleibt beim Bildhoster liegen.
func (s *UserService) UpdateAvatarURL(ctx context.Context, userID string, req user_dto.UpdateAvatarRequest) (*user_dto.AvatarResponse, *app_errors.AppError) {
	user, err := s.repo.UpdateAvatar(ctx, userID, &req.AvatarURL, nil)
	if err != nil {
		return nil, err
	}
	return &user_dto.AvatarResponse{AvatarURL: user.AvatarURL}, nil
}

// DeleteAccount löscht den Benutzer samt Aufgaben und beendet alle Sessions.
func (s *UserService) DeleteAccount(ctx context.Context, targetID, viewerID string, req user_dto.DeleteAccountRequest) *app_errors.AppError {
	if targetID != viewerID {
		return app_errors.Forbidden()
	}

	user, err := s.repo.FindByUserID(ctx, targetID)
	if err != nil {
		return err
	}

	if ok, hashErr := utils.CheckPassword(user.PasswordHash, req.Password); !ok || hashErr != nil {
		return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrInvalidCredentials, "auth.invalid_password", hashErr)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.repo.DeleteUser(ctx, tx, targetID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	// Aufräumen in Redis ist nach dem Commit nur noch best effort
	if s.sessions != nil {
		if err := s.sessions.DeleteAllForUser(ctx, targetID); err != nil {
			log.Error().Err(err).Str("user_id", targetID).Msg("Sessions konnten nicht gelöscht werden")
		}
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, StatsKey(targetID)); err != nil {
			log.Warn().Err(err).Msg("Fehler beim Löschen der Cache")
		}
	}

	return nil
}
