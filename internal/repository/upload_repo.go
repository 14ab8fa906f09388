package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
)

// MediaAssetRepository keeps metadata of images pushed to the image host.
type MediaAssetRepository struct {
	*Manager[domain.MediaAsset]
}

func NewMediaAssetRepository(store Store) *MediaAssetRepository {
	return &MediaAssetRepository{NewManager(store, Schema[domain.MediaAsset]{
		Collection: domain.MediaAssetCollection,
		Decode:     domain.MediaAssetFromDocument,
		Encode:     domain.MediaAsset.ToDocument,
		OrderBy:    "uploadedAt",
		Descending: true,
	})}
}

// GetByPublicID returns nil without an error when no asset matches.
func (r *MediaAssetRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.MediaAsset, error) {
	assets, err := r.List(ctx, []Filter{Eq("publicId", publicID)}, false, 1)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, nil
	}
	return &assets[0], nil
}
