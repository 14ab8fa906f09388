package storage

import (
	"alcyxob/fitness-admin/internal/media"
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var (
	ErrUploadFailed      = errors.New("image upload failed")
	ErrDeleteUnsupported = errors.New("image host does not allow deletes without api credentials")
	ErrEmptyUpload       = errors.New("upload has no content")
	ErrDeleteFailed      = errors.New("image delete failed")
)

// UploadInput is one file pushed to the image host.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Folder      string
	Tags        []string
	// PublicID is chosen by the host when empty.
	PublicID string
}

// UploadResult is the hosted address of an uploaded image.
type UploadResult struct {
	URL      string
	PublicID string
	Bytes    int64
	Format   string
}

// ImageHost stores images and serves them through transformation URLs.
type ImageHost interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	URL(publicID string, t media.Transform) string
	// Candidates lists the URLs to try when an image reference cannot be
	// loaded directly.
	Candidates() []media.Candidate
}
