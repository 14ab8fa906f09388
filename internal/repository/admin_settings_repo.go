package repository

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
	"errors"
	"fmt"
	"log"
)

// AdminSettingsRepository reads and writes the settings singleton.
type AdminSettingsRepository struct {
	coll Collection
}

func NewAdminSettingsRepository(store Store) *AdminSettingsRepository {
	return &AdminSettingsRepository{coll: store.Collection(domain.AdminSettingsCollection)}
}

// Get returns the settings, writing the defaults first if none exist yet.
func (r *AdminSettingsRepository) Get(ctx context.Context) (*domain.AdminSettings, error) {
	doc, err := r.coll.Get(ctx, domain.AdminSettingsID)
	if err == nil {
		settings := domain.AdminSettingsFromDocument(domain.AdminSettingsID, doc)
		return &settings, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.Printf("ERROR: Failed to get admin settings: %v", err)
		return nil, fmt.Errorf("get admin settings: %w", err)
	}

	defaults := domain.DefaultAdminSettings()
	if err := r.coll.Set(ctx, domain.AdminSettingsID, defaults.ToDocument()); err != nil {
		log.Printf("ERROR: Failed to create default admin settings: %v", err)
		return nil, fmt.Errorf("create admin settings: %w", err)
	}
	log.Printf("INFO: Created default admin settings")
	return &defaults, nil
}

// Save overwrites the stored settings with s.
func (r *AdminSettingsRepository) Save(ctx context.Context, s *domain.AdminSettings) error {
	if err := r.coll.Update(ctx, domain.AdminSettingsID, s.ToDocument()); err != nil {
		log.Printf("ERROR: Failed to update admin settings: %v", err)
		return fmt.Errorf("update admin settings: %w", err)
	}
	return nil
}

// modify applies fn to the current settings and saves the result.
func (r *AdminSettingsRepository) modify(ctx context.Context, fn func(s *domain.AdminSettings) bool) (*domain.AdminSettings, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !fn(s) {
		return s, nil
	}
	if err := r.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddAdminEmail appends email to the admin list unless it is already there.
func (r *AdminSettingsRepository) AddAdminEmail(ctx context.Context, email string) (*domain.AdminSettings, error) {
	return r.modify(ctx, func(s *domain.AdminSettings) bool {
		if s.HasAdminEmail(email) {
			return false
		}
		s.AdminEmailList = append(s.AdminEmailList, email)
		return true
	})
}

func (r *AdminSettingsRepository) RemoveAdminEmail(ctx context.Context, email string) (*domain.AdminSettings, error) {
	return r.modify(ctx, func(s *domain.AdminSettings) bool {
		kept := make([]string, 0, len(s.AdminEmailList))
		for _, e := range s.AdminEmailList {
			if e != email {
				kept = append(kept, e)
			}
		}
		s.AdminEmailList = kept
		return true
	})
}

func (r *AdminSettingsRepository) UpdateAppVersion(ctx context.Context, version string) (*domain.AdminSettings, error) {
	return r.modify(ctx, func(s *domain.AdminSettings) bool {
		s.AppVersion = version
		return true
	})
}

// UpdateFeatureSettings shallow-merges features into featureModeSetting.
func (r *AdminSettingsRepository) UpdateFeatureSettings(ctx context.Context, features map[string]any) (*domain.AdminSettings, error) {
	return r.modify(ctx, func(s *domain.AdminSettings) bool {
		s.FeatureModeSetting = mergeShallow(s.FeatureModeSetting, features)
		return true
	})
}

// UpdateNotificationSettings shallow-merges settings into notifications.
func (r *AdminSettingsRepository) UpdateNotificationSettings(ctx context.Context, settings map[string]any) (*domain.AdminSettings, error) {
	return r.modify(ctx, func(s *domain.AdminSettings) bool {
		s.Notifications = mergeShallow(s.Notifications, settings)
		return true
	})
}

func mergeShallow(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}
