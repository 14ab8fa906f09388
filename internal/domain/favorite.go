package domain

import "time"

const UserFavoriteCollection = "userFavorites"

// UserFavorite bookmarks a workout plan for a user.
type UserFavorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanID    string    `json:"planId"`
	CreatedAt time.Time `json:"createdAt"`
}

func UserFavoriteFromDocument(id string, doc Document) UserFavorite {
	return UserFavorite{
		ID:        id,
		UserID:    doc.String("userId", "user_id"),
		PlanID:    doc.String("planId", "plan_id"),
		CreatedAt: doc.Time("createdAt", "created_at"),
	}
}

func (f UserFavorite) ToDocument() Document {
	return Document{
		"userId":    f.UserID,
		"planId":    f.PlanID,
		"createdAt": createdOrNow(f.CreatedAt),
	}
}
