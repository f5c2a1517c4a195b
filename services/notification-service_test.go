package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/collab-core/models"
)

func TestNotifyRequiresReceiver(t *testing.T) {
	f := newFixture(t)

	err := f.notifications.Notify(context.Background(), Event{Type: models.NotificationComment, Message: "hi"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestForReceiverNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifications.now = steppedClock(testBase, time.Minute)

	for _, message := range []string{"first", "second", "third"} {
		require.NoError(t, f.notifications.Notify(ctx, Event{
			Type:     models.NotificationComment,
			Message:  message,
			Receiver: "ana@corp.io",
		}))
	}

	feed, err := f.notifications.ForReceiver(ctx, "ana@corp.io")
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Message)
	assert.Equal(t, "second", feed[1].Message)
	assert.Equal(t, "first", feed[2].Message)
	for _, n := range feed {
		assert.False(t, n.IsRead)
		assert.NotEmpty(t, n.ID)
	}
}

func TestForReceiverOnlySeesOwnFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.notifications.Notify(ctx, Event{Type: models.NotificationStatus, Message: "for ana", Receiver: "ana@corp.io"}))
	require.NoError(t, f.notifications.Notify(ctx, Event{Type: models.NotificationStatus, Message: "for marko", Receiver: "marko@corp.io"}))

	feed, err := f.notifications.ForReceiver(ctx, "ana@corp.io")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "for ana", feed[0].Message)
}

func TestMarkAllReadLeavesOtherUsersUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.notifications.Notify(ctx, Event{Type: models.NotificationComment, Message: "a1", Receiver: "ana@corp.io"}))
	require.NoError(t, f.notifications.Notify(ctx, Event{Type: models.NotificationComment, Message: "a2", Receiver: "ana@corp.io"}))
	require.NoError(t, f.notifications.Notify(ctx, Event{Type: models.NotificationComment, Message: "m1", Receiver: "marko@corp.io"}))

	require.NoError(t, f.notifications.MarkAllRead(ctx, "ana@corp.io"))

	anaFeed, err := f.notifications.ForReceiver(ctx, "ana@corp.io")
	require.NoError(t, err)
	for _, n := range anaFeed {
		assert.True(t, n.IsRead)
	}

	markoFeed, err := f.notifications.ForReceiver(ctx, "marko@corp.io")
	require.NoError(t, err)
	require.Len(t, markoFeed, 1)
	assert.False(t, markoFeed[0].IsRead)
}
