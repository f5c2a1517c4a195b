package repositories

import (
	"context"
	"fmt"

	"teamboard/collab-core/models"
)

const conversationsKey = "conversations"

// ConversationRepository reads and writes the conversations collection.
type ConversationRepository struct {
	store *Store
}

func NewConversationRepository(store *Store) *ConversationRepository {
	return &ConversationRepository{store: store}
}

func (r *ConversationRepository) LoadAll(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := r.store.Load(ctx, conversationsKey, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *ConversationRepository) SaveAll(ctx context.Context, conversations []models.Conversation) error {
	return r.store.Save(ctx, conversationsKey, conversations)
}

func (r *ConversationRepository) GetByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conversations, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range conversations {
		if conversations[i].ID == conversationID {
			return &conversations[i], nil
		}
	}
	return nil, fmt.Errorf("%w: conversation %s", models.ErrNotFound, conversationID)
}

// WithConversation runs mutate against one conversation inside a locked
// read-patch-write cycle, mirroring WithProject.
func (r *ConversationRepository) WithConversation(ctx context.Context, conversationID string, mutate func(*models.Conversation) error) error {
	return r.store.WithLock(conversationsKey, func() error {
		conversations, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}

		idx := -1
		for i := range conversations {
			if conversations[i].ID == conversationID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: conversation %s", models.ErrNotFound, conversationID)
		}

		if err := mutate(&conversations[idx]); err != nil {
			return err
		}
		return r.SaveAll(ctx, conversations)
	})
}

// Ensure runs find-or-append under the collection lock: if find matches an
// existing conversation it is returned unchanged, otherwise build's result
// is appended. This is what keeps direct conversations unique per pair.
func (r *ConversationRepository) Ensure(ctx context.Context, find func(models.Conversation) bool, build func() models.Conversation) (models.Conversation, error) {
	var result models.Conversation
	err := r.store.WithLock(conversationsKey, func() error {
		conversations, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		for _, c := range conversations {
			if find(c) {
				result = c
				return nil
			}
		}
		result = build()
		return r.SaveAll(ctx, append(conversations, result))
	})
	return result, err
}
