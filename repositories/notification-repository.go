package repositories

import (
	"context"

	"teamboard/collab-core/models"
)

const notificationsKey = "notifications"

// NotificationRepository holds every user's feed in one blob, the way the
// stored data keeps it. Filtering by receiver happens in memory.
type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) LoadAll(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.store.Load(ctx, notificationsKey, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) SaveAll(ctx context.Context, notifications []models.Notification) error {
	return r.store.Save(ctx, notificationsKey, notifications)
}

// Append adds one notification to the shared feed under the collection lock.
func (r *NotificationRepository) Append(ctx context.Context, notification models.Notification) error {
	return r.store.WithLock(notificationsKey, func() error {
		all, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		return r.SaveAll(ctx, append(all, notification))
	})
}

// ForReceiver returns one user's notifications in stored order.
func (r *NotificationRepository) ForReceiver(ctx context.Context, email string) ([]models.Notification, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var mine []models.Notification
	for _, n := range all {
		if n.Receiver == email {
			mine = append(mine, n)
		}
	}
	return mine, nil
}

// MarkAllRead flips isRead on every notification addressed to email. The
// write replaces the single blob, so the operation is all-or-nothing.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, email string) error {
	return r.store.WithLock(notificationsKey, func() error {
		all, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		for i := range all {
			if all[i].Receiver == email {
				all[i].IsRead = true
			}
		}
		return r.SaveAll(ctx, all)
	})
}
