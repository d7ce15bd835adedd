package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// avatarTransformation: quadratischer Ausschnitt um das Gesicht.
const avatarTransformation = "c_fill,g_face,w_200,h_200"

var ErrNotConfigured = errors.New("media: cloudinary ist nicht konfiguriert")

type UploadedImage struct {
	URL      string
	PublicID string
}

type ImageHost interface {
	UploadAvatar(ctx context.Context, userID string, file io.Reader) (*UploadedImage, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryHost liefert ErrNotConfigured, wenn Zugangsdaten fehlen. Der Server startet trotzdem.
func NewCloudinaryHost(cloudName, apiKey, apiSecret, folder string) (*CloudinaryHost, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

func (h *CloudinaryHost) UploadAvatar(ctx context.Context, userID string, file io.Reader) (*UploadedImage, error) {
	res, err := h.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         h.folder,
		PublicID:       "avatar-" + userID,
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
		Transformation: avatarTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return &UploadedImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	res, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return nil
}

// DisabledHost wird verwendet, wenn Cloudinary nicht konfiguriert ist.
type DisabledHost struct{}

func (DisabledHost) UploadAvatar(context.Context, string, io.Reader) (*UploadedImage, error) {
	return nil, ErrNotConfigured
}

func (DisabledHost) Destroy(context.Context, string) error {
	return ErrNotConfigured
}
