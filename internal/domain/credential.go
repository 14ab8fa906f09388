package domain

import "time"

const (
	CredentialCollection   = "credentials"
	RevokedTokenCollection = "revokedTokens"
)

// Credential is the sign-in secret of an identity. Its id is the uid shared
// with the User document.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func CredentialFromDocument(id string, doc Document) Credential {
	return Credential{
		ID:           id,
		Email:        doc.String("email"),
		PasswordHash: doc.String("passwordHash"),
		CreatedAt:    doc.Time("createdAt"),
	}
}

func (c Credential) ToDocument() Document {
	return Document{
		"email":        c.Email,
		"passwordHash": c.PasswordHash,
		"createdAt":    createdOrNow(c.CreatedAt),
	}
}

// RevokedToken marks a signed-out token id until the token would have expired.
type RevokedToken struct {
	ID        string // jti
	UserID    string
	ExpiresAt time.Time
}

func (r RevokedToken) ToDocument() Document {
	return Document{
		"userId":    r.UserID,
		"expiresAt": r.ExpiresAt.UTC(),
	}
}
