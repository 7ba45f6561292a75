package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

// AnalyticsOptions tunes how the dashboard aggregates are computed
type AnalyticsOptions struct {
	// InventoryActiveOnly restricts inventory value to active, non-deleted articles
	InventoryActiveOnly bool
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// Compute aggregates the current sales and articles without side effects
	Compute(ctx context.Context, opts AnalyticsOptions) (*entity.AnalyticsSnapshot, error)
	// Publish replaces the last published snapshot
	Publish(ctx context.Context, snapshot *entity.AnalyticsSnapshot) error
	// Snapshot returns the last published snapshot, or nil before the first refresh
	Snapshot(ctx context.Context) (*entity.AnalyticsSnapshot, error)
}
