package use_cases

import (
	"context"
	"io"

	"github.com/Xenn-00/aufgaben-team/internal/media"
	"github.com/stretchr/testify/mock"
)

var _ media.ImageHost = (*MockImageHost)(nil)

type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) UploadAvatar(ctx context.Context, userID string, file io.Reader) (*media.UploadedImage, error) {
	args := m.Called(ctx, userID, file)
	img, _ := args.Get(0).(*media.UploadedImage)
	return img, args.Error(1)
}

func (m *MockImageHost) Destroy(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
