package repositories

import (
	"context"

	"teamboard/collab-core/models"
)

// MemberRepository reads the per-user team lists stored under
// members_<email>.
type MemberRepository struct {
	store *Store
}

func NewMemberRepository(store *Store) *MemberRepository {
	return &MemberRepository{store: store}
}

func membersKey(email string) string {
	return "members_" + email
}

func (r *MemberRepository) ForUser(ctx context.Context, email string) ([]models.Member, error) {
	var members []models.Member
	if err := r.store.Load(ctx, membersKey(email), &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) SaveForUser(ctx context.Context, email string, members []models.Member) error {
	return r.store.Save(ctx, membersKey(email), members)
}

// Append adds one member to a user's team list under the key's lock.
func (r *MemberRepository) Append(ctx context.Context, email string, member models.Member) error {
	key := membersKey(email)
	return r.store.WithLock(key, func() error {
		members, err := r.ForUser(ctx, email)
		if err != nil {
			return err
		}
		return r.SaveForUser(ctx, email, append(members, member))
	})
}
