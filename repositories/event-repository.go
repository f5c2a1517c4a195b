package repositories

import (
	"context"

	"teamboard/collab-core/models"
)

const eventsKey = "events"

// EventRepository reads and writes the calendar events collection.
type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) LoadAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.store.Load(ctx, eventsKey, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) SaveAll(ctx context.Context, events []models.Event) error {
	return r.store.Save(ctx, eventsKey, events)
}

// Append adds a new event under the collection lock.
func (r *EventRepository) Append(ctx context.Context, event models.Event) error {
	return r.store.WithLock(eventsKey, func() error {
		events, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		return r.SaveAll(ctx, append(events, event))
	})
}

// CreatedBy filters events down to the given creator emails, keeping order.
func (r *EventRepository) CreatedBy(ctx context.Context, emails []string) ([]models.Event, error) {
	events, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(emails))
	for _, e := range emails {
		allowed[e] = true
	}
	var mine []models.Event
	for _, ev := range events {
		if allowed[ev.CreatedBy] {
			mine = append(mine, ev)
		}
	}
	return mine, nil
}
