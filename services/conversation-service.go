package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// ConversationService owns messaging: conversation creation with the
// direct-pair dedup rule, immutable message append, and fan-out to every
// participant except the sender.
type ConversationService struct {
	conversations *repositories.ConversationRepository
	users         *repositories.UserRepository
	notifications *NotificationService
	now           func() time.Time
}

func NewConversationService(conversations *repositories.ConversationRepository, users *repositories.UserRepository, notifications *NotificationService) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
		notifications: notifications,
		now:           time.Now,
	}
}

// EnsureDirect returns the direct conversation between the two emails,
// creating it only if none exists. Calling it twice for the same pair (in
// either order) yields the same conversation.
func (s *ConversationService) EnsureDirect(ctx context.Context, a, b string) (models.Conversation, error) {
	if a == "" || b == "" || a == b {
		return models.Conversation{}, fmt.Errorf("%w: a direct conversation needs two distinct participants", models.ErrInvalidInput)
	}

	return s.conversations.Ensure(ctx,
		func(c models.Conversation) bool {
			return c.Type == models.ConversationDirect && c.HasParticipant(a) && c.HasParticipant(b)
		},
		func() models.Conversation {
			now := s.now()
			return models.Conversation{
				ID:           models.TimeID(now),
				Type:         models.ConversationDirect,
				Participants: []string{a, b},
				CreatedAt:    models.ISOTime(now),
				UpdatedAt:    models.ISOTime(now),
			}
		})
}

// CreateGroup returns the group conversation with exactly this participant
// set, creating it if needed. The set comparison ignores order.
func (s *ConversationService) CreateGroup(ctx context.Context, name string, participants []string) (models.Conversation, error) {
	if len(participants) < 2 {
		return models.Conversation{}, fmt.Errorf("%w: a group needs at least two participants", models.ErrInvalidInput)
	}

	wanted := participantKey(participants)
	return s.conversations.Ensure(ctx,
		func(c models.Conversation) bool {
			return c.Type == models.ConversationGroup && participantKey(c.Participants) == wanted
		},
		func() models.Conversation {
			now := s.now()
			return models.Conversation{
				ID:           models.TimeID(now),
				Type:         models.ConversationGroup,
				Participants: append([]string(nil), participants...),
				Name:         name,
				CreatedAt:    models.ISOTime(now),
				UpdatedAt:    models.ISOTime(now),
			}
		})
}

func participantKey(participants []string) string {
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// ForUser lists the conversations the user takes part in, most recently
// updated first.
func (s *ConversationService) ForUser(ctx context.Context, email string) ([]models.Conversation, error) {
	all, err := s.conversations.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var mine []models.Conversation
	for _, c := range all {
		if c.HasParticipant(email) {
			mine = append(mine, c)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return models.ParseISOTime(mine[i].UpdatedAt).After(models.ParseISOTime(mine[j].UpdatedAt))
	})
	return mine, nil
}

// SendText appends a text message and notifies the other participants.
func (s *ConversationService) SendText(ctx context.Context, conversationID, senderEmail, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, fmt.Errorf("%w: message text is empty", models.ErrInvalidInput)
	}
	return s.send(ctx, conversationID, senderEmail, models.Message{Text: text})
}

// SendAttachment appends a file or link message and notifies the other
// participants.
func (s *ConversationService) SendAttachment(ctx context.Context, conversationID, senderEmail string, attachment models.Attachment) (models.Message, error) {
	if attachment.Name == "" || attachment.URL == "" {
		return models.Message{}, fmt.Errorf("%w: attachment name and url are required", models.ErrInvalidInput)
	}
	if attachment.ID == "" {
		attachment.ID = models.TimeID(s.now())
	}
	return s.send(ctx, conversationID, senderEmail, models.Message{Attachment: &attachment})
}

func (s *ConversationService) send(ctx context.Context, conversationID, senderEmail string, message models.Message) (models.Message, error) {
	message.ID = uuid.New().String()
	message.Sender = senderEmail
	message.CreatedAt = models.ISOTime(s.now())

	var conversationName string
	var recipients []string

	err := s.conversations.WithConversation(ctx, conversationID, func(c *models.Conversation) error {
		if !c.HasParticipant(senderEmail) {
			return fmt.Errorf("%w: %s is not a participant of conversation %s", models.ErrPermissionDenied, senderEmail, conversationID)
		}
		c.Messages = append(c.Messages, message)
		c.UpdatedAt = models.ISOTime(s.now())

		conversationName = c.Name
		for _, p := range c.Participants {
			if p != senderEmail {
				recipients = append(recipients, p)
			}
		}
		return nil
	})
	if err != nil {
		return models.Message{}, err
	}

	sender := s.senderProfile(ctx, senderEmail)
	for _, receiver := range recipients {
		event := Event{
			Type:        models.NotificationComment,
			Message:     "sent you a message in",
			TaskName:    conversationName,
			ActorName:   sender.DisplayName(),
			ActorAvatar: sender.Avatar,
			Receiver:    receiver,
		}
		if err := s.notifications.Notify(ctx, event); err != nil {
			logging.Logger.Warnf("Event ID: NOTIFY_FAILED, Description: Failed to notify %s: %v", receiver, err)
		}
	}

	return message, nil
}

func (s *ConversationService) senderProfile(ctx context.Context, email string) models.User {
	user, ok, err := s.users.ByEmail(ctx, email)
	if err != nil || !ok {
		return models.User{Email: email}
	}
	return user
}
