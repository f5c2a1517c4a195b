package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/collab-core/models"
)

func TestEnsureDirectIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.chat.now = steppedClock(testBase, time.Second)

	first, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "marko@corp.io")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, models.ConversationDirect, first.Type)

	// Same pair in the other order lands on the same conversation.
	second, err := f.chat.EnsureDirect(ctx, "marko@corp.io", "ana@corp.io")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := f.conversations.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureDirectValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "ana@corp.io")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.chat.EnsureDirect(ctx, "", "marko@corp.io")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCreateGroupDedupsByParticipantSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.chat.now = steppedClock(testBase, time.Second)

	first, err := f.chat.CreateGroup(ctx, "Backend", []string{"ana@corp.io", "marko@corp.io", "zika@corp.io"})
	require.NoError(t, err)

	second, err := f.chat.CreateGroup(ctx, "Backend again", []string{"zika@corp.io", "ana@corp.io", "marko@corp.io"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Backend", second.Name)

	// A different set is a different group.
	third, err := f.chat.CreateGroup(ctx, "Duo", []string{"ana@corp.io", "marko@corp.io"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	_, err = f.chat.CreateGroup(ctx, "Lonely", []string{"ana@corp.io"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSendTextFansOutToOtherParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.chat.now = steppedClock(testBase, time.Second)

	group, err := f.chat.CreateGroup(ctx, "Backend", []string{"ana@corp.io", "marko@corp.io", "zika@corp.io"})
	require.NoError(t, err)

	message, err := f.chat.SendText(ctx, group.ID, "ana@corp.io", "standup in 5")
	require.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "ana@corp.io", message.Sender)

	stored, err := f.conversations.GetByID(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, "standup in 5", stored.Messages[0].Text)

	for _, other := range []string{"marko@corp.io", "zika@corp.io"} {
		feed, err := f.notifications.ForReceiver(ctx, other)
		require.NoError(t, err)
		require.Len(t, feed, 1, "receiver %s", other)
		assert.Equal(t, "sent you a message in", feed[0].Message)
		assert.Equal(t, "Backend", feed[0].TaskName)
	}

	senderFeed, err := f.notifications.ForReceiver(ctx, "ana@corp.io")
	require.NoError(t, err)
	assert.Empty(t, senderFeed)
}

func TestSendRejectsNonParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	direct, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "marko@corp.io")
	require.NoError(t, err)

	_, err = f.chat.SendText(ctx, direct.ID, "zika@corp.io", "let me in")
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	stored, err := f.conversations.GetByID(ctx, direct.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Messages)
}

func TestSendValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	direct, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "marko@corp.io")
	require.NoError(t, err)

	_, err = f.chat.SendText(ctx, direct.ID, "ana@corp.io", "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.chat.SendAttachment(ctx, direct.ID, "ana@corp.io", models.Attachment{Type: models.AttachmentFile, Name: "no-url"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSendAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	direct, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "marko@corp.io")
	require.NoError(t, err)

	message, err := f.chat.SendAttachment(ctx, direct.ID, "ana@corp.io", models.Attachment{
		Type: models.AttachmentLink,
		Name: "design doc",
		URL:  "https://docs.corp.io/design",
	})
	require.NoError(t, err)
	require.NotNil(t, message.Attachment)
	assert.NotEmpty(t, message.Attachment.ID)

	stored, err := f.conversations.GetByID(ctx, direct.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, "design doc", stored.Messages[0].Attachment.Name)
}

func TestForUserSortsByLastUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.chat.now = steppedClock(testBase, time.Minute)

	withMarko, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "marko@corp.io")
	require.NoError(t, err)
	withZika, err := f.chat.EnsureDirect(ctx, "ana@corp.io", "zika@corp.io")
	require.NoError(t, err)

	// A late message in the older conversation bumps it to the top.
	_, err = f.chat.SendText(ctx, withMarko.ID, "ana@corp.io", "ping")
	require.NoError(t, err)

	mine, err := f.chat.ForUser(ctx, "ana@corp.io")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, withMarko.ID, mine[0].ID)
	assert.Equal(t, withZika.ID, mine[1].ID)

	// A non-participant sees neither.
	none, err := f.chat.ForUser(ctx, "stranger@corp.io")
	require.NoError(t, err)
	assert.Empty(t, none)
}
