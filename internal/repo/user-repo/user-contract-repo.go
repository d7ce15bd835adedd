package user_repo

import (
	"context"

	"github.com/Xenn-00/aufgaben-team/internal/abstraction/tx"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type UserRepoContract interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError)
	FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError)
	FindSummaries(ctx context.Context, userIDs []string) (map[string]entity.UserSummary, *app_errors.AppError)
	ShareTeam(ctx context.Context, userA, userB string) (bool, *app_errors.AppError)
	CountUsers(ctx context.Context) (int, *app_errors.AppError)
	UpdateProfile(ctx context.Context, userID string, model entity.UserUpdate) (*entity.UserEntity, *app_errors.AppError)
	UpdatePassword(ctx context.Context, userID, passwordHash string) *app_errors.AppError
	UpdateAvatar(ctx context.Context, userID string, avatarURL, publicID *string) (*entity.UserEntity, *app_errors.AppError)
	DeleteUser(ctx context.Context, t tx.Tx, userID string) *app_errors.AppError
}
