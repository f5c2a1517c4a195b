package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// Event is what the task lifecycle engine and the conversation logic hand
// to the dispatcher: who did what, phrased for one receiver's feed.
type Event struct {
	Type        models.NotificationType
	Message     string
	TaskName    string
	ActorName   string
	ActorAvatar string
	Receiver    string
	Meta        *models.NotificationMeta
}

// NotificationService appends notification records and manages read state.
// There is no batching and no deduplication: every event yields exactly one
// record for its receiver.
type NotificationService struct {
	repo *repositories.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// Notify appends one notification for the event's receiver.
func (s *NotificationService) Notify(ctx context.Context, event Event) error {
	if event.Receiver == "" {
		return fmt.Errorf("%w: notification receiver is required", models.ErrInvalidInput)
	}

	notification := models.Notification{
		ID:          uuid.New().String(),
		Type:        event.Type,
		Message:     event.Message,
		TaskName:    event.TaskName,
		ActorName:   event.ActorName,
		ActorAvatar: event.ActorAvatar,
		Receiver:    event.Receiver,
		CreatedAt:   models.ISOTime(s.now()),
		IsRead:      false,
		Meta:        event.Meta,
	}
	if err := s.repo.Append(ctx, notification); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: NOTIFICATION_CREATED, Description: Notification of type '%s' created for %s", event.Type, event.Receiver)
	return nil
}

// ForReceiver returns one user's feed, newest first.
func (s *NotificationService) ForReceiver(ctx context.Context, email string) ([]models.Notification, error) {
	notifications, err := s.repo.ForReceiver(ctx, email)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return models.ParseISOTime(notifications[i].CreatedAt).After(models.ParseISOTime(notifications[j].CreatedAt))
	})
	return notifications, nil
}

// MarkAllRead flips every notification of the user to read in one write.
func (s *NotificationService) MarkAllRead(ctx context.Context, email string) error {
	if err := s.repo.MarkAllRead(ctx, email); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: NOTIFICATIONS_MARKED_READ, Description: All notifications marked as read for %s", email)
	return nil
}
