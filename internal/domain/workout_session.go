package domain

import "time"

const WorkoutSessionCollection = "workoutSessions"

// SessionStatus tracks the lifecycle of a workout session.
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionPending, SessionInProgress, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// WorkoutSession is one run of a level by a user, as reported by the mobile app.
type WorkoutSession struct {
	ID                  string        `json:"id"`
	UserID              string        `json:"userId"`
	LevelID             string        `json:"levelId"`
	StartTime           time.Time     `json:"startTime"`
	EndTime             *time.Time    `json:"endTime,omitempty"`
	Duration            int           `json:"duration"` // seconds
	TotalCaloriesBurned float64       `json:"totalCaloriesBurned"`
	CompletedExercises  []string      `json:"completedExercises"`
	Status              SessionStatus `json:"status"`
	Notes               string        `json:"notes"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

func NewWorkoutSession() WorkoutSession {
	return WorkoutSession{Status: SessionPending, CompletedExercises: []string{}}
}

func WorkoutSessionFromDocument(id string, doc Document) WorkoutSession {
	status := SessionStatus(doc.String("status", "completion_status"))
	if status == "" {
		status = SessionPending
	}
	return WorkoutSession{
		ID:                  id,
		UserID:              doc.String("userId", "user_id"),
		LevelID:             doc.String("levelId", "level_id"),
		StartTime:           doc.Time("startTime", "start_time"),
		EndTime:             doc.OptionalTime("endTime", "end_time"),
		Duration:            doc.Int("duration", "total_duration"),
		TotalCaloriesBurned: doc.Float("totalCaloriesBurned", "calories_burned"),
		CompletedExercises:  doc.Strings("completedExercises"),
		Status:              status,
		Notes:               doc.String("notes"),
		UpdatedAt:           doc.Time("updatedAt", "updated_at"),
	}
}

func (s WorkoutSession) ToDocument() Document {
	status := s.Status
	if status == "" {
		status = SessionPending
	}
	return Document{
		"userId":              s.UserID,
		"levelId":             s.LevelID,
		"startTime":           createdOrNow(s.StartTime),
		"endTime":             optionalTimeValue(s.EndTime),
		"duration":            s.Duration,
		"totalCaloriesBurned": s.TotalCaloriesBurned,
		"completedExercises":  stringsOrEmpty(s.CompletedExercises),
		"status":              string(status),
		"notes":               s.Notes,
		"updatedAt":           createdOrNow(s.UpdatedAt),
	}
}
