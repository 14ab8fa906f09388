package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
)

// ExerciseRepository adds muscle-group lookups to the exercise manager.
type ExerciseRepository struct {
	*Manager[domain.Exercise]
}

func NewExerciseRepository(store Store) *ExerciseRepository {
	return &ExerciseRepository{NewManager(store, Schema[domain.Exercise]{
		Collection:  domain.ExerciseCollection,
		Decode:      domain.ExerciseFromDocument,
		Encode:      domain.Exercise.ToDocument,
		ParentField: "levelId",
		OrderBy:     "order",
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})}
}

// ListByMuscleGroup returns exercises whose muscleGroups contain group.
func (r *ExerciseRepository) ListByMuscleGroup(ctx context.Context, group string, activeOnly bool) ([]domain.Exercise, error) {
	return r.List(ctx, []Filter{Contains("muscleGroups", group)}, activeOnly, 0)
}
