package repository

import (
	"alcyxob/fitness-admin/internal/domain"
)

// Catalogue managers share the same shape: ordered by "order", soft-deleted
// through "isActive", stamped through "updatedAt".

func NewCategoryRepository(store Store) *Manager[domain.Category] {
	return NewManager(store, Schema[domain.Category]{
		Collection:  domain.CategoryCollection,
		Decode:      domain.CategoryFromDocument,
		Encode:      domain.Category.ToDocument,
		OrderBy:     "order",
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})
}

func NewWorkoutTypeRepository(store Store) *Manager[domain.WorkoutType] {
	return NewManager(store, Schema[domain.WorkoutType]{
		Collection:  domain.WorkoutTypeCollection,
		Decode:      domain.WorkoutTypeFromDocument,
		Encode:      domain.WorkoutType.ToDocument,
		ParentField: "categoryId",
		OrderBy:     "order",
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})
}

func NewLevelRepository(store Store) *Manager[domain.Level] {
	return NewManager(store, Schema[domain.Level]{
		Collection:  domain.LevelCollection,
		Decode:      domain.LevelFromDocument,
		Encode:      domain.Level.ToDocument,
		ParentField: "workoutTypeId",
		OrderBy:     "order",
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})
}

func NewWorkoutPlanRepository(store Store) *Manager[domain.WorkoutPlan] {
	return NewManager(store, Schema[domain.WorkoutPlan]{
		Collection:  domain.WorkoutPlanCollection,
		Decode:      domain.WorkoutPlanFromDocument,
		Encode:      domain.WorkoutPlan.ToDocument,
		ParentField: "levelId",
		OrderBy:     "order",
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})
}

func NewPlanExerciseRepository(store Store) *Manager[domain.PlanExercise] {
	return NewManager(store, Schema[domain.PlanExercise]{
		Collection:  domain.PlanExerciseCollection,
		Decode:      domain.PlanExerciseFromDocument,
		Encode:      domain.PlanExercise.ToDocument,
		ParentField: "planId",
		OrderBy:     "order",
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})
}

// NewUserFavoriteRepository lists favourites newest first; they carry no
// order or active flag.
func NewUserFavoriteRepository(store Store) *Manager[domain.UserFavorite] {
	return NewManager(store, Schema[domain.UserFavorite]{
		Collection:  domain.UserFavoriteCollection,
		Decode:      domain.UserFavoriteFromDocument,
		Encode:      domain.UserFavorite.ToDocument,
		ParentField: "userId",
		OrderBy:     "createdAt",
		Descending:  true,
	})
}
