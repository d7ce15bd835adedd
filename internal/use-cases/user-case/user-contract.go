package user_case

import (
	"context"

	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/stats"
)

type UserServiceContract interface {
	UserSelfProfile(ctx context.Context, userID string) (*user_dto.UserResponse, *app_errors.AppError)
	UserProfileByID(ctx context.Context, targetID, viewerID string) (*user_dto.UserResponse, *app_errors.AppError)
	UpdateProfile(ctx context.Context, targetID, viewerID string, req user_dto.UpdateProfileRequest) (*user_dto.UserResponse, *app_errors.AppError)
	ChangePassword(ctx context.Context, userID string, req user_dto.ChangePasswordRequest) *app_errors.AppError
	UpdateAvatarURL(ctx context.Context, userID string, req user_dto.UpdateAvatarRequest) (*user_dto.AvatarResponse, *app_errors.AppError)
	DeleteAccount(ctx context.Context, targetID, viewerID string, req user_dto.DeleteAccountRequest) *app_errors.AppError
	UserStats(ctx context.Context, targetID, viewerID string) (*stats.UserStats, *app_errors.AppError)

	StatsProvider
}

// StatsProvider liefert die Live-Statistik eines Benutzers (gecacht).
type StatsProvider interface {
	Stats(ctx context.Context, userID string) (*stats.UserStats, *app_errors.AppError)
}
