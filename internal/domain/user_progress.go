package domain

import "time"

const UserProgressCollection = "userProgress"

// UserProgress records one completed exercise.
type UserProgress struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	LevelID        string    `json:"levelId"`
	ExerciseID     string    `json:"exerciseId"`
	CompletionDate time.Time `json:"completionDate"`
	Duration       int       `json:"duration"`
	RepsCompleted  int       `json:"repsCompleted"`
	SetsCompleted  int       `json:"setsCompleted"`
	CaloriesBurned float64   `json:"caloriesBurned"`
	Difficulty     string    `json:"difficulty"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
}

func UserProgressFromDocument(id string, doc Document) UserProgress {
	return UserProgress{
		ID:             id,
		UserID:         doc.String("userId", "user_id"),
		LevelID:        doc.String("levelId", "level_id"),
		ExerciseID:     doc.String("exerciseId", "exercise_id"),
		CompletionDate: doc.Time("completionDate"),
		Duration:       doc.Int("duration"),
		RepsCompleted:  doc.Int("repsCompleted"),
		SetsCompleted:  doc.Int("setsCompleted"),
		CaloriesBurned: doc.Float("caloriesBurned", "calories_burned"),
		Difficulty:     doc.String("difficulty"),
		Notes:          doc.String("notes"),
		CreatedAt:      doc.Time("createdAt", "created_at"),
	}
}

func (p UserProgress) ToDocument() Document {
	now := time.Now().UTC()
	completion, created := p.CompletionDate.UTC(), p.CreatedAt.UTC()
	if p.CompletionDate.IsZero() {
		completion = now
	}
	if p.CreatedAt.IsZero() {
		created = now
	}
	return Document{
		"userId":         p.UserID,
		"levelId":        p.LevelID,
		"exerciseId":     p.ExerciseID,
		"completionDate": completion,
		"duration":       p.Duration,
		"repsCompleted":  p.RepsCompleted,
		"setsCompleted":  p.SetsCompleted,
		"caloriesBurned": p.CaloriesBurned,
		"difficulty":     p.Difficulty,
		"notes":          p.Notes,
		"createdAt":      created,
	}
}
