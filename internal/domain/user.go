package domain

import (
	"time"
)

const UserCollection = "users"

// Role gates access to the admin console.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the profile and role document of an account. Its id is the uid
// issued by the identity provider, not a store-assigned id.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	DisplayName  string         `json:"displayName"`
	Avatar       string         `json:"avatar"`
	Age          *float64       `json:"age"`
	Gender       string         `json:"gender"`
	Height       *float64       `json:"height"`
	Weight       *float64       `json:"weight"`
	FitnessLevel string         `json:"fitnessLevel"`
	Goals        []string       `json:"goals"`
	Preferences  map[string]any `json:"preferences"`
	AuthProvider string         `json:"authProvider"` // "password", "google.com", "facebook.com"
	Role         Role           `json:"role"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// NewUser returns the minimal role document for a freshly issued identity.
func NewUser(uid, email string, role Role) User {
	if role == "" {
		role = RoleUser
	}
	return User{
		ID:           uid,
		Email:        email,
		Goals:        []string{},
		Preferences:  map[string]any{},
		AuthProvider: "password",
		Role:         role,
		IsActive:     true,
	}
}

func UserFromDocument(id string, doc Document) User {
	provider := doc.String("authProvider", "auth_provider")
	if provider == "" {
		provider = "password"
	}
	role := Role(doc.String("role"))
	if role == "" {
		role = RoleUser
	}
	return User{
		ID:           id,
		Email:        doc.String("email"),
		DisplayName:  doc.String("displayName", "display_name", "full_name"),
		Avatar:       doc.String("avatar", "avatar_url"),
		Age:          doc.OptionalFloat("age"),
		Gender:       doc.String("gender"),
		Height:       doc.OptionalFloat("height"),
		Weight:       doc.OptionalFloat("weight"),
		FitnessLevel: doc.String("fitnessLevel", "fitness_level"),
		Goals:        doc.Strings("goals"),
		Preferences:  doc.Map("preferences"),
		AuthProvider: provider,
		Role:         role,
		IsActive:     doc.Bool(true, "isActive", "is_active"),
		CreatedAt:    doc.Time("createdAt", "created_at"),
		UpdatedAt:    doc.Time("updatedAt", "updated_at"),
	}
}

func (u User) ToDocument() Document {
	provider, role := u.AuthProvider, u.Role
	if provider == "" {
		provider = "password"
	}
	if role == "" {
		role = RoleUser
	}
	return Document{
		"email":        u.Email,
		"displayName":  u.DisplayName,
		"avatar":       u.Avatar,
		"age":          optionalFloatValue(u.Age),
		"gender":       u.Gender,
		"height":       optionalFloatValue(u.Height),
		"weight":       optionalFloatValue(u.Weight),
		"fitnessLevel": u.FitnessLevel,
		"goals":        stringsOrEmpty(u.Goals),
		"preferences":  mapOrEmpty(u.Preferences),
		"authProvider": provider,
		"role":         string(role),
		"isActive":     u.IsActive,
		"createdAt":    createdOrNow(u.CreatedAt),
		"updatedAt":    createdOrNow(u.UpdatedAt),
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasCompleteProfile reports whether the onboarding fields are all filled in.
func (u *User) HasCompleteProfile() bool {
	return u.DisplayName != "" &&
		u.Gender != "" &&
		u.Age != nil &&
		u.Height != nil &&
		u.Weight != nil &&
		u.FitnessLevel != ""
}
