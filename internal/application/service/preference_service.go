package service

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/repository"
)

// PreferenceService stores operator preferences that outlive a restart
type PreferenceService struct {
	kv repository.KeyValueRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(kv repository.KeyValueRepository) *PreferenceService {
	return &PreferenceService{kv: kv}
}

// GetDashboardNotes returns the saved dashboard notes, empty if none were saved
func (s *PreferenceService) GetDashboardNotes(ctx context.Context) (string, error) {
	notes, _, err := s.kv.Get(ctx, entity.DashboardNotesKey)
	return notes, err
}

// SaveDashboardNotes replaces the dashboard notes
func (s *PreferenceService) SaveDashboardNotes(ctx context.Context, notes string) error {
	return s.kv.Set(ctx, entity.DashboardNotesKey, notes)
}
