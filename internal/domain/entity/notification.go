package entity

import (
	"time"

	"github.com/iliri/iliri-api/internal/domain/enum"
)

// Notification represents an alert shown on the dashboard
type Notification struct {
	ID          string                `json:"id"`
	Type        enum.NotificationType `json:"type"`
	Description string                `json:"description"`
	Read        bool                  `json:"read"`
	CreatedAt   time.Time             `json:"createdAt"`
}
