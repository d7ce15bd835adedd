package upload_case

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"github.com/Xenn-00/aufgaben-team/internal/media"
	use_cases "github.com/Xenn-00/aufgaben-team/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	noAppError = (*app_errors.AppError)(nil)
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
)

func strPtr(s string) *string { return &s }

func fileHeader(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["avatar"][0]
}

func TestUploadAvatar_ReplacesPreviousImage(t *testing.T) {
	ctx := context.Background()

	users := new(use_cases.MockUserRepo)
	images := new(use_cases.MockImageHost)
	service := &UploadService{users: users, images: images}

	users.On("FindByUserID", ctx, "user-1").Return(&entity.UserEntity{ID: "user-1", AvatarPublicID: strPtr("old-id")}, noAppError)
	images.On("UploadAvatar", ctx, "user-1", mock.Anything).Return(&media.UploadedImage{URL: "https://img/new.png", PublicID: "new-id"}, nil)
	users.On("UpdateAvatar", ctx, "user-1", strPtr("https://img/new.png"), strPtr("new-id")).
		Return(&entity.UserEntity{ID: "user-1", AvatarURL: strPtr("https://img/new.png")}, noAppError)
	images.On("Destroy", ctx, "old-id").Return(nil)

	resp, err := service.UploadAvatar(ctx, "user-1", fileHeader(t, pngHeader))

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "https://img/new.png", *resp.AvatarURL)
	images.AssertCalled(t, "Destroy", ctx, "old-id")
}

func TestUploadAvatar_DestroyFailureIgnored(t *testing.T) {
	ctx := context.Background()

	users := new(use_cases.MockUserRepo)
	images := new(use_cases.MockImageHost)
	service := &UploadService{users: users, images: images}

	users.On("FindByUserID", ctx, "user-1").Return(&entity.UserEntity{ID: "user-1", AvatarPublicID: strPtr("old-id")}, noAppError)
	images.On("UploadAvatar", ctx, "user-1", mock.Anything).Return(&media.UploadedImage{URL: "u", PublicID: "new-id"}, nil)
	users.On("UpdateAvatar", ctx, "user-1", mock.Anything, mock.Anything).Return(&entity.UserEntity{AvatarURL: strPtr("u")}, noAppError)
	images.On("Destroy", ctx, "old-id").Return(errors.New("cloudinary down"))

	_, err := service.UploadAvatar(ctx, "user-1", fileHeader(t, pngHeader))

	assert.Nil(t, err)
}

func TestUploadAvatar_TooLarge(t *testing.T) {
	service := &UploadService{}

	_, err := service.UploadAvatar(context.Background(), "user-1", &multipart.FileHeader{Filename: "big.png", Size: MaxAvatarBytes + 1})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, "upload.too_large", err.MessageKey)
}

func TestUploadAvatar_RejectsNonImage(t *testing.T) {
	users := new(use_cases.MockUserRepo)
	images := new(use_cases.MockImageHost)
	service := &UploadService{users: users, images: images}

	_, err := service.UploadAvatar(context.Background(), "user-1", fileHeader(t, []byte("#!/bin/sh\necho hi\n")))

	require.NotNil(t, err)
	assert.Equal(t, "upload.invalid_type", err.MessageKey)
	images.AssertNotCalled(t, "UploadAvatar", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadAvatar_HostFailure(t *testing.T) {
	ctx := context.Background()

	users := new(use_cases.MockUserRepo)
	images := new(use_cases.MockImageHost)
	service := &UploadService{users: users, images: images}

	users.On("FindByUserID", ctx, "user-1").Return(&entity.UserEntity{ID: "user-1"}, noAppError)
	images.On("UploadAvatar", ctx, "user-1", mock.Anything).Return(nil, media.ErrNotConfigured)

	_, err := service.UploadAvatar(ctx, "user-1", fileHeader(t, pngHeader))

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadGateway, err.Code)
	users.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteAvatar_ClearsFields(t *testing.T) {
	ctx := context.Background()

	users := new(use_cases.MockUserRepo)
	images := new(use_cases.MockImageHost)
	service := &UploadService{users: users, images: images}

	users.On("FindByUserID", ctx, "user-1").Return(&entity.UserEntity{ID: "user-1", AvatarPublicID: strPtr("pid")}, noAppError)
	images.On("Destroy", ctx, "pid").Return(nil)
	users.On("UpdateAvatar", ctx, "user-1", (*string)(nil), (*string)(nil)).Return(&entity.UserEntity{ID: "user-1"}, noAppError)

	err := service.DeleteAvatar(ctx, "user-1")

	assert.Nil(t, err)
	images.AssertExpectations(t)
	users.AssertExpectations(t)
}
