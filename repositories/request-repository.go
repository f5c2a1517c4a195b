package repositories

import (
	"context"

	"teamboard/collab-core/models"
)

const requestsKey = "requests"

// RequestRepository keeps every user's vacation requests in one blob keyed
// by email. Lists are append-only per user.
type RequestRepository struct {
	store *Store
}

func NewRequestRepository(store *Store) *RequestRepository {
	return &RequestRepository{store: store}
}

func (r *RequestRepository) LoadAll(ctx context.Context) (map[string][]models.VacationRequest, error) {
	requests := make(map[string][]models.VacationRequest)
	if err := r.store.Load(ctx, requestsKey, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) SaveAll(ctx context.Context, requests map[string][]models.VacationRequest) error {
	return r.store.Save(ctx, requestsKey, requests)
}

// ForUser returns one user's request list; absent users have none.
func (r *RequestRepository) ForUser(ctx context.Context, email string) ([]models.VacationRequest, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return all[email], nil
}

// Append adds a request to the user's list under the collection lock.
func (r *RequestRepository) Append(ctx context.Context, email string, request models.VacationRequest) error {
	return r.store.WithLock(requestsKey, func() error {
		all, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		all[email] = append(all[email], request)
		return r.SaveAll(ctx, all)
	})
}
