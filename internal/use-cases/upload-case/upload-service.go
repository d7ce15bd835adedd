package upload_case

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/media"
	user_repo "github.com/Xenn-00/aufgaben-team/internal/repo/user-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const MaxAvatarBytes = 5 << 20

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type UploadService struct {
	users  user_repo.UserRepoContract
	images media.ImageHost
}

func NewUploadService(db *pgxpool.Pool, images media.ImageHost) UploadServiceContract {
	return &UploadService{
		users:  user_repo.NewUserRepo(db),
		images: images,
	}
}

func (s *UploadService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*user_dto.AvatarResponse, *app_errors.AppError) {
	if file == nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUpload, "upload.file_required", nil)
	}
	if file.Size > MaxAvatarBytes {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUpload, "upload.too_large", nil).
			WithParams(map[string]any{"MaxMB": MaxAvatarBytes >> 20})
	}

	f, openErr := file.Open()
	if openErr != nil {
		return nil, app_errors.Internal(openErr)
	}
	defer f.Close()

	// 1. Typ am Inhalt erkennen, nicht am Header des Clients
	head := make([]byte, 512)
	n, readErr := io.ReadFull(f, head)
	if readErr != nil && readErr != io.ErrUnexpectedEOF {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUpload, "upload.unreadable", readErr)
	}
	contentType := http.DetectContentType(head[:n])
	if !allowedAvatarTypes[contentType] {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrUpload, "upload.invalid_type", nil).
			WithParams(map[string]any{"Type": contentType})
	}
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		return nil, app_errors.Internal(seekErr)
	}

	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Hochladen
	img, upErr := s.images.UploadAvatar(ctx, userID, f)
	if upErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadGateway, app_errors.ErrUpload, "upload.failed", upErr)
	}

	// 3. Benutzer aktualisieren
	updated, err := s.users.UpdateAvatar(ctx, userID, &img.URL, &img.PublicID)
	if err != nil {
		return nil, err
	}

	// 4. altes Bild entfernen, best effort
	if old := user.AvatarPublicID; old != nil && *old != "" && *old != img.PublicID {
		if err := s.images.Destroy(ctx, *old); err != nil {
			log.Warn().Err(err).Str("public_id", *old).Msg("Altes Avatar konnte nicht gelöscht werden")
		}
	}

	return &user_dto.AvatarResponse{AvatarURL: updated.AvatarURL}, nil
}

func (s *UploadService) DeleteAvatar(ctx context.Context, userID string) *app_errors.AppError {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if user.AvatarPublicID != nil && *user.AvatarPublicID != "" {
		if err := s.images.Destroy(ctx, *user.AvatarPublicID); err != nil {
			log.Warn().Err(err).Str("public_id", *user.AvatarPublicID).Msg("Avatar konnte beim Bildhoster nicht gelöscht werden")
		}
	}

	if _, err := s.users.UpdateAvatar(ctx, userID, nil, nil); err != nil {
		return err
	}
	return nil
}
