package memory

import (
	"context"

	"github.com/iliri/iliri-api/internal/domain/entity"
)

type notificationRepository struct {
	l *ledger
}

func (r *notificationRepository) Add(ctx context.Context, notification *entity.Notification) error {
	r.l.write(func(st *state) {
		if notification.ID == "" {
			notification.ID = newID()
		}
		if notification.CreatedAt.IsZero() {
			notification.CreatedAt = r.l.now()
		}
		st.notifications = append([]entity.Notification{*notification}, st.notifications...)
	})
	return nil
}

func (r *notificationRepository) List(ctx context.Context, unreadOnly bool) ([]entity.Notification, error) {
	var notifications []entity.Notification
	r.l.read(func(st *state) {
		for _, n := range st.notifications {
			if unreadOnly && n.Read {
				continue
			}
			notifications = append(notifications, n)
		}
	})
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	found := false
	r.l.write(func(st *state) {
		for i := range st.notifications {
			if st.notifications[i].ID == id {
				st.notifications[i].Read = true
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) (int, error) {
	marked := 0
	r.l.write(func(st *state) {
		for i := range st.notifications {
			if !st.notifications[i].Read {
				st.notifications[i].Read = true
				marked++
			}
		}
	})
	return marked, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context) (int, error) {
	count := 0
	r.l.read(func(st *state) {
		for _, n := range st.notifications {
			if !n.Read {
				count++
			}
		}
	})
	return count, nil
}
