package storage

import (
	"alcyxob/fitness-admin/internal/config"
	"alcyxob/fitness-admin/internal/media"
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
)

// cdnHost implements ImageHost on top of the Cloudinary upload API.
type cdnHost struct {
	cld          *cloudinary.Cloudinary
	deliveryBase string
	cloud        string
	preset       string
	signed       bool
	timeout      time.Duration
}

// NewCDNHost creates an ImageHost for the configured cloud.
func NewCDNHost(cfg config.MediaConfig) (ImageHost, error) {
	if cfg.CloudName == "" {
		return nil, fmt.Errorf("media.cloud_name is required for the cdn provider")
	}
	if cfg.UploadPreset == "" && cfg.APISecret == "" {
		return nil, fmt.Errorf("media.upload_preset or media.api_secret is required for the cdn provider")
	}

	cldCfg, err := cldconfig.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to build cloudinary config: %w", err)
	}
	if cfg.UploadURL != "" {
		cldCfg.API.UploadPrefix = strings.TrimSuffix(cfg.UploadURL, "/")
	}
	cld, err := cloudinary.NewFromConfiguration(*cldCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log.Printf("INFO: CDN image host initialized for cloud: %s", cfg.CloudName)
	return &cdnHost{
		cld:          cld,
		deliveryBase: strings.TrimSuffix(cfg.DeliveryURL, "/"),
		cloud:        cfg.CloudName,
		preset:       cfg.UploadPreset,
		signed:       cfg.APIKey != "" && cfg.APISecret != "",
		timeout:      timeout,
	}, nil
}

// Upload sends the file with the unsigned preset when one is configured,
// otherwise as a signed upload.
func (h *cdnHost) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyUpload
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	params := uploader.UploadParams{
		PublicID: in.PublicID,
		Folder:   in.Folder,
	}
	if len(in.Tags) > 0 {
		params.Tags = api.CldAPIArray(in.Tags)
	}

	var (
		resp *uploader.UploadResult
		err  error
	)
	if h.preset != "" {
		resp, err = h.cld.Upload.UnsignedUpload(ctx, bytes.NewReader(in.Data), h.preset, params)
	} else {
		resp, err = h.cld.Upload.Upload(ctx, bytes.NewReader(in.Data), params)
	}
	if err != nil {
		log.Printf("ERROR: Failed to upload image to cloud '%s': %v", h.cloud, err)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp.Error.Message != "" {
		log.Printf("ERROR: Cloud '%s' rejected upload: %s", h.cloud, resp.Error.Message)
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return nil, fmt.Errorf("%w: response has no secure_url", ErrUploadFailed)
	}
	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Bytes:    int64(resp.Bytes),
		Format:   resp.Format,
	}, nil
}

// Delete destroys the image through the signed API. Unsigned hosts refuse.
func (h *cdnHost) Delete(ctx context.Context, publicID string) error {
	if !h.signed {
		return ErrDeleteUnsupported
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Printf("ERROR: Failed to delete image '%s': %v", publicID, err)
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("%w: %s: %s", ErrDeleteFailed, publicID, resp.Error.Message)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("%w: %s: result %q", ErrDeleteFailed, publicID, resp.Result)
	}
	log.Printf("INFO: Deleted image '%s' from cloud '%s'", publicID, h.cloud)
	return nil
}

func (h *cdnHost) URL(publicID string, t media.Transform) string {
	return media.DeliveryURL(h.deliveryBase, h.cloud, publicID, t)
}

func (h *cdnHost) Candidates() []media.Candidate {
	return media.DefaultCandidates(h.deliveryBase, h.cloud)
}
