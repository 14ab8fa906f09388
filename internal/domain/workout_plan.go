package domain

import "time"

const (
	WorkoutPlanCollection  = "workoutPlans"
	PlanExerciseCollection = "planExercises"
)

// WorkoutPlan is a curated routine offered at a level.
type WorkoutPlan struct {
	ID                string    `json:"id"`
	LevelID           string    `json:"levelId"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ThumbnailURL      string    `json:"thumbnailUrl"`
	EstimatedDuration int       `json:"estimatedDuration"` // minutes
	EstimatedCalories float64   `json:"estimatedCalories"`
	EquipmentNeeded   []string  `json:"equipmentNeeded"`
	Order             int       `json:"order"`
	IsPremium         bool      `json:"isPremium"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewWorkoutPlan() WorkoutPlan {
	return WorkoutPlan{IsActive: true, EquipmentNeeded: []string{}}
}

func WorkoutPlanFromDocument(id string, doc Document) WorkoutPlan {
	return WorkoutPlan{
		ID:                id,
		LevelID:           doc.String("levelId", "level_id"),
		Name:              doc.String("name"),
		Description:       doc.String("description"),
		ThumbnailURL:      doc.String("thumbnailUrl", "thumbnail_url"),
		EstimatedDuration: doc.Int("estimatedDuration", "estimated_duration"),
		EstimatedCalories: doc.Float("estimatedCalories", "estimated_calories"),
		EquipmentNeeded:   doc.Strings("equipmentNeeded", "equipment_needed"),
		Order:             doc.Int("order", "sort_order"),
		IsPremium:         doc.Bool(false, "isPremium", "is_premium"),
		IsActive:          doc.Bool(true, "isActive", "is_active"),
		CreatedAt:         doc.Time("createdAt", "created_at"),
		UpdatedAt:         doc.Time("updatedAt", "updated_at"),
	}
}

func (p WorkoutPlan) ToDocument() Document {
	return Document{
		"levelId":           p.LevelID,
		"name":              p.Name,
		"description":       p.Description,
		"thumbnailUrl":      p.ThumbnailURL,
		"estimatedDuration": p.EstimatedDuration,
		"estimatedCalories": p.EstimatedCalories,
		"equipmentNeeded":   stringsOrEmpty(p.EquipmentNeeded),
		"order":             p.Order,
		"isPremium":         p.IsPremium,
		"isActive":          p.IsActive,
		"createdAt":         createdOrNow(p.CreatedAt),
		"updatedAt":         createdOrNow(p.UpdatedAt),
	}
}

// PlanExercise places an exercise inside a workout plan with its own
// prescription. The exercise itself is resolved by a separate lookup.
type PlanExercise struct {
	ID              string    `json:"id"`
	PlanID          string    `json:"planId"`
	ExerciseID      string    `json:"exerciseId"`
	Order           int       `json:"order"`
	Reps            int       `json:"reps"`
	Sets            int       `json:"sets"`
	RestTimeSeconds int       `json:"restTimeSeconds"`
	WeightDefault   float64   `json:"weightDefault"`
	Notes           string    `json:"notes"`
	IsWarmup        bool      `json:"isWarmup"`
	IsCooldown      bool      `json:"isCooldown"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewPlanExercise() PlanExercise {
	return PlanExercise{IsActive: true}
}

func PlanExerciseFromDocument(id string, doc Document) PlanExercise {
	return PlanExercise{
		ID:              id,
		PlanID:          doc.String("planId", "plan_id"),
		ExerciseID:      doc.String("exerciseId", "exercise_id"),
		Order:           doc.Int("order", "order_index"),
		Reps:            doc.Int("reps"),
		Sets:            doc.Int("sets"),
		RestTimeSeconds: doc.Int("restTimeSeconds", "rest_time_seconds"),
		WeightDefault:   doc.Float("weightDefault", "weight_default"),
		Notes:           doc.String("notes"),
		IsWarmup:        doc.Bool(false, "isWarmup", "is_warmup"),
		IsCooldown:      doc.Bool(false, "isCooldown", "is_cooldown"),
		IsActive:        doc.Bool(true, "isActive", "is_active"),
		CreatedAt:       doc.Time("createdAt", "created_at"),
		UpdatedAt:       doc.Time("updatedAt", "updated_at"),
	}
}

func (p PlanExercise) ToDocument() Document {
	return Document{
		"planId":          p.PlanID,
		"exerciseId":      p.ExerciseID,
		"order":           p.Order,
		"reps":            p.Reps,
		"sets":            p.Sets,
		"restTimeSeconds": p.RestTimeSeconds,
		"weightDefault":   p.WeightDefault,
		"notes":           p.Notes,
		"isWarmup":        p.IsWarmup,
		"isCooldown":      p.IsCooldown,
		"isActive":        p.IsActive,
		"createdAt":       createdOrNow(p.CreatedAt),
		"updatedAt":       createdOrNow(p.UpdatedAt),
	}
}
