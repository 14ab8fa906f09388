package service

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/media"
	"alcyxob/fitness-admin/internal/repository"
	"alcyxob/fitness-admin/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnimatedGIFTag marks every assembled GIF on the image host.
const AnimatedGIFTag = "animated-gif"

var (
	ErrEmptyImageReference = errors.New("image reference is empty")
	ErrUnsupportedMedia    = errors.New("file is not an image")
)

// FileInput is an uploaded file as received from the client.
type FileInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadOptions struct {
	Folder   string
	Tags     []string
	PublicID string
	// UploadedBy is the uid of the admin, recorded with the asset.
	UploadedBy string
}

type GIFOptions struct {
	UploadOptions
	// FrameDelay overrides the configured delay between frames.
	FrameDelay time.Duration
}

type MediaService interface {
	UploadImage(ctx context.Context, file FileInput, opts UploadOptions) (*domain.MediaAsset, error)
	UploadAnimatedGIF(ctx context.Context, first, second string, opts GIFOptions) (*domain.MediaAsset, error)
	DeleteImage(ctx context.Context, ref string) error
	ImageURL(ref string, t media.Transform) (string, error)
	ListAssets(ctx context.Context) ([]domain.MediaAsset, error)
}

// mediaService implements the MediaService interface.
type mediaService struct {
	host          storage.ImageHost
	assets        *repository.MediaAssetRepository
	assembler     *media.Assembler
	defaultFolder string
	frameDelay    time.Duration
}

// NewMediaService wires the image host to the gif assembler. loader fetches
// remote frames.
func NewMediaService(host storage.ImageHost, assets *repository.MediaAssetRepository, loader media.Loader, defaultFolder string, frameDelay time.Duration) MediaService {
	if frameDelay <= 0 {
		frameDelay = media.DefaultFrameDelay
	}
	return &mediaService{
		host:          host,
		assets:        assets,
		assembler:     &media.Assembler{Loader: loader, Candidates: host.Candidates()},
		defaultFolder: defaultFolder,
		frameDelay:    frameDelay,
	}
}

// UploadImage pushes file to the image host and records the hosted asset.
func (s *mediaService) UploadImage(ctx context.Context, file FileInput, opts UploadOptions) (*domain.MediaAsset, error) {
	if len(file.Data) == 0 {
		return nil, storage.ErrEmptyUpload
	}
	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(file.Data)
	}
	if !isImage(contentType) {
		return nil, ErrUnsupportedMedia
	}

	folder := opts.Folder
	if folder == "" {
		folder = s.defaultFolder
	}
	res, err := s.host.Upload(ctx, storage.UploadInput{
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        file.Data,
		Folder:      folder,
		Tags:        opts.Tags,
		PublicID:    opts.PublicID,
	})
	if err != nil {
		return nil, err
	}

	asset := domain.MediaAsset{
		PublicID:    res.PublicID,
		URL:         res.URL,
		Folder:      folder,
		Tags:        opts.Tags,
		ContentType: contentType,
		Size:        int64(len(file.Data)),
		UploadedBy:  opts.UploadedBy,
		UploadedAt:  time.Now().UTC(),
	}
	// The image is hosted at this point; a failed record only loses metadata.
	if id, err := s.assets.Create(ctx, asset); err != nil {
		log.Printf("WARN: Failed to record media asset '%s': %v", res.PublicID, err)
	} else {
		asset.ID = id
	}
	log.Printf("INFO: Uploaded image '%s'", res.PublicID)
	return &asset, nil
}

// UploadAnimatedGIF builds a two-frame looping GIF from first and second and
// uploads it. It returns once, with the hosted asset or a terminal error.
func (s *mediaService) UploadAnimatedGIF(ctx context.Context, first, second string, opts GIFOptions) (*domain.MediaAsset, error) {
	if first == "" || second == "" {
		return nil, ErrEmptyImageReference
	}
	delay := opts.FrameDelay
	if delay <= 0 {
		delay = s.frameDelay
	}

	data, err := s.assembler.Build(ctx, []string{first, second}, delay)
	if err != nil {
		log.Printf("ERROR: Failed to assemble animated gif: %v", err)
		return nil, err
	}

	upload := opts.UploadOptions
	if upload.PublicID == "" {
		upload.PublicID = "animated-" + uuid.NewString()
	}
	upload.Tags = withTag(upload.Tags, AnimatedGIFTag)

	return s.UploadImage(ctx, FileInput{
		Filename:    upload.PublicID + ".gif",
		ContentType: "image/gif",
		Data:        data,
	}, upload)
}

// DeleteImage removes the image behind ref from the host and forgets its record.
func (s *mediaService) DeleteImage(ctx context.Context, ref string) error {
	publicID, ok := media.ExtractPublicID(ref)
	if !ok {
		return ErrEmptyImageReference
	}
	if err := s.host.Delete(ctx, publicID); err != nil {
		return err
	}

	asset, err := s.assets.GetByPublicID(ctx, publicID)
	if err != nil {
		log.Printf("WARN: Failed to look up media asset '%s': %v", publicID, err)
		return nil
	}
	if asset != nil {
		if err := s.assets.Delete(ctx, asset.ID); err != nil {
			log.Printf("WARN: Failed to remove media asset record '%s': %v", publicID, err)
		}
	}
	return nil
}

// ImageURL returns the transformation URL of ref, a public id or a hosted URL.
func (s *mediaService) ImageURL(ref string, t media.Transform) (string, error) {
	publicID, ok := media.ExtractPublicID(ref)
	if !ok {
		return "", ErrEmptyImageReference
	}
	return s.host.URL(publicID, t), nil
}

func (s *mediaService) ListAssets(ctx context.Context) ([]domain.MediaAsset, error) {
	return s.assets.ListAll(ctx, false)
}

func isImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func withTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(append([]string(nil), tags...), tag)
}
