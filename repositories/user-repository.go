package repositories

import (
	"context"
	"fmt"

	"teamboard/collab-core/models"
)

const (
	usersKey       = "users"
	currentUserKey = "currentUser"
)

// UserRepository covers the users collection plus the single currentUser
// record the signed-in session keeps.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) LoadAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Load(ctx, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SaveAll(ctx context.Context, users []models.User) error {
	return r.store.Save(ctx, usersKey, users)
}

// ByEmail looks one profile up; the boolean mirrors "found".
func (r *UserRepository) ByEmail(ctx context.Context, email string) (models.User, bool, error) {
	users, err := r.LoadAll(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for i := range users {
		if users[i].Email == email {
			return users[i], true, nil
		}
	}
	return models.User{}, false, nil
}

// UpdateProfile replaces the record matching user.Email under the
// collection lock. Only the owning user edits their profile, so a missing
// record is a NotFound rather than an upsert.
func (r *UserRepository) UpdateProfile(ctx context.Context, user models.User) error {
	return r.store.WithLock(usersKey, func() error {
		users, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].Email == user.Email {
				users[i] = user
				return r.SaveAll(ctx, users)
			}
		}
		return fmt.Errorf("%w: user %s", models.ErrNotFound, user.Email)
	})
}

// CurrentUser returns the signed-in profile, or found=false when no session
// record exists.
func (r *UserRepository) CurrentUser(ctx context.Context) (models.User, bool, error) {
	data, ok, err := r.store.Get(ctx, currentUserKey)
	if err != nil || !ok {
		return models.User{}, false, err
	}
	var user models.User
	if err := user.UnmarshalJSON(data); err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

// SetCurrentUser stores the signed-in profile.
func (r *UserRepository) SetCurrentUser(ctx context.Context, user models.User) error {
	return r.store.Save(ctx, currentUserKey, user)
}
