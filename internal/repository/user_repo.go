package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
	"fmt"
	"log"
	"time"
)

// UserRepository manages role documents keyed by the identity provider's uid.
type UserRepository struct {
	*Manager[domain.User]
}

func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{NewManager(store, Schema[domain.User]{
		Collection:  domain.UserCollection,
		Decode:      domain.UserFromDocument,
		Encode:      domain.User.ToDocument,
		OrderBy:     "createdAt",
		Descending:  true,
		ActiveField: "isActive",
		TouchField:  "updatedAt",
	})}
}

// ListByRole returns users holding role, newest first. Zero limit lists all.
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role, limit int64) ([]domain.User, error) {
	return r.List(ctx, []Filter{Eq("role", string(role))}, false, limit)
}

// GetByEmail returns nil without an error when no user has that email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.List(ctx, []Filter{Eq("email", email)}, false, 1)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// SetRole changes the role of the user at uid.
func (r *UserRepository) SetRole(ctx context.Context, uid string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidField, role)
	}
	err := r.coll.Update(ctx, uid, domain.Document{
		"role":      string(role),
		"updatedAt": time.Now().UTC(),
	})
	if err != nil {
		log.Printf("ERROR: Failed to set role for user '%s': %v", uid, err)
		return fmt.Errorf("set role %s: %w", uid, err)
	}
	return nil
}

// HasAdmin reports whether at least one admin user exists.
func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	admins, err := r.ListByRole(ctx, domain.RoleAdmin, 1)
	if err != nil {
		return false, err
	}
	return len(admins) > 0, nil
}
