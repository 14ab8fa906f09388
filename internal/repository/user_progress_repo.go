package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
)

// UserProgressRepository lists progress entries by completion date, newest first.
type UserProgressRepository struct {
	*Manager[domain.UserProgress]
}

func NewUserProgressRepository(store Store) *UserProgressRepository {
	return &UserProgressRepository{NewManager(store, Schema[domain.UserProgress]{
		Collection:  domain.UserProgressCollection,
		Decode:      domain.UserProgressFromDocument,
		Encode:      domain.UserProgress.ToDocument,
		ParentField: "userId",
		OrderBy:     "completionDate",
		Descending:  true,
	})}
}

func (r *UserProgressRepository) ListRecent(ctx context.Context, limit int64) ([]domain.UserProgress, error) {
	return r.List(ctx, nil, false, limitOrDefault(limit))
}

func (r *UserProgressRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.UserProgress, error) {
	return r.List(ctx, []Filter{Eq("userId", userID)}, false, limitOrDefault(limit))
}

func (r *UserProgressRepository) ListByLevel(ctx context.Context, levelID string, limit int64) ([]domain.UserProgress, error) {
	return r.List(ctx, []Filter{Eq("levelId", levelID)}, false, limitOrDefault(limit))
}

func (r *UserProgressRepository) ListByExercise(ctx context.Context, exerciseID string, limit int64) ([]domain.UserProgress, error) {
	return r.List(ctx, []Filter{Eq("exerciseId", exerciseID)}, false, limitOrDefault(limit))
}
