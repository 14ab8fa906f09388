package domain

import "time"

// Collection names of the catalogue entities.
const (
	CategoryCollection    = "categories"
	WorkoutTypeCollection = "workoutTypes"
	LevelCollection       = "levels"
)

// Category is the top level of the workout catalogue.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCategory returns a Category with the documented defaults.
func NewCategory() Category {
	return Category{IsActive: true}
}

// CategoryFromDocument maps a stored document to a Category.
func CategoryFromDocument(id string, doc Document) Category {
	return Category{
		ID:          id,
		Name:        doc.String("name"),
		Description: doc.String("description"),
		Icon:        doc.String("icon", "icon_url"),
		Order:       doc.Int("order", "sort_order"),
		IsActive:    doc.Bool(true, "isActive", "is_active"),
		CreatedAt:   doc.Time("createdAt", "created_at"),
		UpdatedAt:   doc.Time("updatedAt", "updated_at"),
	}
}

// ToDocument maps the Category to its stored shape.
func (c Category) ToDocument() Document {
	return Document{
		"name":        c.Name,
		"description": c.Description,
		"icon":        c.Icon,
		"order":       c.Order,
		"isActive":    c.IsActive,
		"createdAt":   createdOrNow(c.CreatedAt),
		"updatedAt":   createdOrNow(c.UpdatedAt),
	}
}

// WorkoutType groups levels under a category, e.g. "Yoga" or "HIIT".
type WorkoutType struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Equipment   string    `json:"equipment"`
	Duration    string    `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	Image       string    `json:"image"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewWorkoutType() WorkoutType {
	return WorkoutType{IsActive: true}
}

func WorkoutTypeFromDocument(id string, doc Document) WorkoutType {
	return WorkoutType{
		ID:          id,
		CategoryID:  doc.String("categoryId", "category_id"),
		Name:        doc.String("name"),
		Description: doc.String("description"),
		Equipment:   doc.String("equipment"),
		Duration:    doc.String("duration"),
		Difficulty:  doc.String("difficulty"),
		Image:       doc.String("image", "icon_url"),
		Order:       doc.Int("order", "sort_order"),
		IsActive:    doc.Bool(true, "isActive", "is_active"),
		CreatedAt:   doc.Time("createdAt", "created_at"),
		UpdatedAt:   doc.Time("updatedAt", "updated_at"),
	}
}

func (w WorkoutType) ToDocument() Document {
	return Document{
		"categoryId":  w.CategoryID,
		"name":        w.Name,
		"description": w.Description,
		"equipment":   w.Equipment,
		"duration":    w.Duration,
		"difficulty":  w.Difficulty,
		"image":       w.Image,
		"order":       w.Order,
		"isActive":    w.IsActive,
		"createdAt":   createdOrNow(w.CreatedAt),
		"updatedAt":   createdOrNow(w.UpdatedAt),
	}
}

// Level is a difficulty tier of a workout type. Exercises and plans hang off it.
type Level struct {
	ID              string    `json:"id"`
	WorkoutTypeID   string    `json:"workoutTypeId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Difficulty      string    `json:"difficulty"`
	DurationMinutes string    `json:"durationMinutes"`
	CaloriesBurn    float64   `json:"caloriesBurn"`
	Order           int       `json:"order"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewLevel() Level {
	return Level{IsActive: true}
}

func LevelFromDocument(id string, doc Document) Level {
	return Level{
		ID:              id,
		WorkoutTypeID:   doc.String("workoutTypeId", "sub_category_id"),
		Name:            doc.String("name"),
		Description:     doc.String("description"),
		Difficulty:      doc.String("difficulty"),
		DurationMinutes: doc.String("durationMinutes"),
		CaloriesBurn:    doc.Float("caloriesBurn"),
		Order:           doc.Int("order", "sort_order"),
		IsActive:        doc.Bool(true, "isActive", "is_active"),
		CreatedAt:       doc.Time("createdAt", "created_at"),
		UpdatedAt:       doc.Time("updatedAt", "updated_at"),
	}
}

func (l Level) ToDocument() Document {
	return Document{
		"workoutTypeId":   l.WorkoutTypeID,
		"name":            l.Name,
		"description":     l.Description,
		"difficulty":      l.Difficulty,
		"durationMinutes": l.DurationMinutes,
		"caloriesBurn":    l.CaloriesBurn,
		"order":           l.Order,
		"isActive":        l.IsActive,
		"createdAt":       createdOrNow(l.CreatedAt),
		"updatedAt":       createdOrNow(l.UpdatedAt),
	}
}
