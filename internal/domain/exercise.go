package domain

import "time"

const ExerciseCollection = "exercises"

// Exercise is a single movement in the library, attached to a level.
type Exercise struct {
	ID           string    `json:"id"`
	LevelID      string    `json:"levelId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Instructions []string  `json:"instructions"`
	Duration     int       `json:"duration"` // seconds
	Reps         int       `json:"reps"`
	Sets         int       `json:"sets"`
	RestTime     int       `json:"restTime"` // seconds
	Image        string    `json:"image"`
	Video        string    `json:"video"`
	Tips         []string  `json:"tips"`
	MuscleGroups []string  `json:"muscleGroups"`
	Equipment    string    `json:"equipment"`
	CaloriesBurn float64   `json:"caloriesBurn"`
	Order        int       `json:"order"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewExercise() Exercise {
	return Exercise{
		IsActive:     true,
		Instructions: []string{},
		Tips:         []string{},
		MuscleGroups: []string{},
	}
}

func ExerciseFromDocument(id string, doc Document) Exercise {
	return Exercise{
		ID:           id,
		LevelID:      doc.String("levelId", "level_id"),
		Name:         doc.String("name"),
		Description:  doc.String("description"),
		Instructions: doc.Strings("instructions"),
		Duration:     doc.Int("duration"),
		Reps:         doc.Int("reps"),
		Sets:         doc.Int("sets"),
		RestTime:     doc.Int("restTime", "rest_time_seconds"),
		Image:        doc.String("image"),
		Video:        doc.String("video"),
		Tips:         doc.Strings("tips"),
		MuscleGroups: doc.Strings("muscleGroups", "target_body_parts"),
		Equipment:    doc.String("equipment"),
		CaloriesBurn: doc.Float("caloriesBurn"),
		Order:        doc.Int("order", "sort_order"),
		IsActive:     doc.Bool(true, "isActive", "is_active"),
		CreatedAt:    doc.Time("createdAt", "created_at"),
		UpdatedAt:    doc.Time("updatedAt", "updated_at"),
	}
}

func (e Exercise) ToDocument() Document {
	return Document{
		"levelId":      e.LevelID,
		"name":         e.Name,
		"description":  e.Description,
		"instructions": stringsOrEmpty(e.Instructions),
		"duration":     e.Duration,
		"reps":         e.Reps,
		"sets":         e.Sets,
		"restTime":     e.RestTime,
		"image":        e.Image,
		"video":        e.Video,
		"tips":         stringsOrEmpty(e.Tips),
		"muscleGroups": stringsOrEmpty(e.MuscleGroups),
		"equipment":    e.Equipment,
		"caloriesBurn": e.CaloriesBurn,
		"order":        e.Order,
		"isActive":     e.IsActive,
		"createdAt":    createdOrNow(e.CreatedAt),
		"updatedAt":    createdOrNow(e.UpdatedAt),
	}
}
