package repository

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	// Add prepends the notification so lists stay newest first
	Add(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, unreadOnly bool) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	MarkAllRead(ctx context.Context) (int, error)
	UnreadCount(ctx context.Context) (int, error)
}
