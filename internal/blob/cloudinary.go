// Package blob uploads image evidence to Cloudinary and returns public URLs.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const uploadTimeout = 30 * time.Second

// Store uploads files and returns their public URL.
type Store interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

type cloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a Store backed by Cloudinary. The URL carries
// cloud name and credentials (CLOUDINARY_URL format).
func NewCloudinaryStore(cloudinaryURL string) (Store, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary url not configured")
	}
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &cloudinaryStore{client: client}, nil
}

type noopStore struct{}

// NewNoopStore returns a Store that discards uploads. Used when no
// Cloudinary credentials are configured.
func NewNoopStore() Store {
	return noopStore{}
}

func (noopStore) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	log.Printf("blob: uploads disabled, discarding %d bytes for folder %q", len(data), folder)
	return "", nil
}

// Upload stores data as an image under the given folder and returns the
// secure URL.
func (s *cloudinaryStore) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	overwrite := false
	res, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		PublicID:     fmt.Sprintf("%s_%d", uuid.New().String(), time.Now().Unix()),
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return res.SecureURL, nil
}
