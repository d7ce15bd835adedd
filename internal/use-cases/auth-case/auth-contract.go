package auth_case

import (
	"context"

	auth_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/auth-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

// AuthServiceContract reicht die Methoden für den AuthService weiter.
type AuthServiceContract interface {
	RegisterUser(ctx context.Context, req auth_dto.RegisterUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.AuthResponse, *app_errors.AppError)
	LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.AuthResponse, *app_errors.AppError)
	LogoutUser(ctx context.Context, sessionID string) *app_errors.AppError
	ListAllUserDevices(ctx context.Context, userID, currentSessionID string) ([]auth_dto.DeviceResponse, *app_errors.AppError)
	LogoutAllDevices(ctx context.Context, userID string) *app_errors.AppError
}
