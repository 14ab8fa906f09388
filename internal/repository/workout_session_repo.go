package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultListLimit caps history listings when the caller gives no limit.
const DefaultListLimit = 100

func limitOrDefault(limit int64) int64 {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// WorkoutSessionRepository lists sessions newest first.
type WorkoutSessionRepository struct {
	*Manager[domain.WorkoutSession]
}

func NewWorkoutSessionRepository(store Store) *WorkoutSessionRepository {
	return &WorkoutSessionRepository{NewManager(store, Schema[domain.WorkoutSession]{
		Collection:  domain.WorkoutSessionCollection,
		Decode:      domain.WorkoutSessionFromDocument,
		Encode:      domain.WorkoutSession.ToDocument,
		ParentField: "userId",
		OrderBy:     "startTime",
		Descending:  true,
		TouchField:  "updatedAt",
	})}
}

func (r *WorkoutSessionRepository) ListRecent(ctx context.Context, limit int64) ([]domain.WorkoutSession, error) {
	return r.List(ctx, nil, false, limitOrDefault(limit))
}

func (r *WorkoutSessionRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.WorkoutSession, error) {
	return r.List(ctx, []Filter{Eq("userId", userID)}, false, limitOrDefault(limit))
}

func (r *WorkoutSessionRepository) ListByLevel(ctx context.Context, levelID string, limit int64) ([]domain.WorkoutSession, error) {
	return r.List(ctx, []Filter{Eq("levelId", levelID)}, false, limitOrDefault(limit))
}

func (r *WorkoutSessionRepository) ListByStatus(ctx context.Context, status domain.SessionStatus, limit int64) ([]domain.WorkoutSession, error) {
	return r.List(ctx, []Filter{Eq("status", string(status))}, false, limitOrDefault(limit))
}

// UpdateStatus moves a session to status and stamps updatedAt.
func (r *WorkoutSessionRepository) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown session status %q", ErrInvalidField, status)
	}
	err := r.coll.Update(ctx, id, domain.Document{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		log.Printf("ERROR: Failed to update status for workout session '%s': %v", id, err)
		return fmt.Errorf("update status %s: %w", id, err)
	}
	return nil
}
