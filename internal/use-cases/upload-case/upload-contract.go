package upload_case

import (
	"context"
	"mime/multipart"

	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
)

type UploadServiceContract interface {
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*user_dto.AvatarResponse, *app_errors.AppError)
	DeleteAvatar(ctx context.Context, userID string) *app_errors.AppError
}
