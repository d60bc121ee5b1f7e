package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenChat_FindOrCreate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.users.add("a", "a@example.com")
	b := e.users.add("b", "b@example.com")

	first, err := e.messaging.OpenChat(ctx, a.ID, b.ID)
	require.NoError(t, err)
	again, err := e.messaging.OpenChat(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, b.ID, first.With.ID)

	_, err = e.messaging.OpenChat(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSend_ParticipantsOnlyAndSummary(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.users.add("a", "a@example.com")
	b := e.users.add("b", "b@example.com")
	outsider := e.users.add("c", "c@example.com")
	chat, err := e.messaging.OpenChat(ctx, a.ID, b.ID)
	require.NoError(t, err)
	chatID := chat.ID.Hex()

	_, err = e.messaging.Send(ctx, outsider.ID, chatID, "hi")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.messaging.Messages(ctx, outsider.ID, chatID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.messaging.Send(ctx, a.ID, chatID, "hello")
	require.NoError(t, err)

	chats, err := e.messaging.ListChats(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "hello", chats[0].LastMessage)
	assert.Equal(t, a.ID, chats[0].LastMessageSender)
	assert.Equal(t, a.ID, chats[0].With.ID)
}

func TestMessages_LatestFiftyOldestFirst(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.users.add("a", "a@example.com")
	b := e.users.add("b", "b@example.com")
	chat, err := e.messaging.OpenChat(ctx, a.ID, b.ID)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		_, err := e.messaging.Send(ctx, a.ID, chat.ID.Hex(), fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	msgs, err := e.messaging.Messages(ctx, b.ID, chat.ID.Hex())
	require.NoError(t, err)
	require.Len(t, msgs, 50)
	assert.Equal(t, "m10", msgs[0].Text)
	assert.Equal(t, "m59", msgs[49].Text)
}

func TestChatStream_DeliversAndReleases(t *testing.T) {
	e := newEnv()
	ctx, cancel := context.WithCancel(context.Background())
	a := e.users.add("a", "a@example.com")
	b := e.users.add("b", "b@example.com")
	chat, err := e.messaging.OpenChat(ctx, a.ID, b.ID)
	require.NoError(t, err)

	events, err := e.messaging.Stream(ctx, b.ID, chat.ID.Hex())
	require.NoError(t, err)

	_, err = e.messaging.Send(ctx, a.ID, chat.ID.Hex(), "ping")
	require.NoError(t, err)

	select {
	case ev := <-events:
		msg, ok := ev.Payload.(*models.Message)
		require.True(t, ok)
		assert.Equal(t, "ping", msg.Text)
	case <-time.After(time.Second):
		t.Fatal("message not streamed")
	}

	cancel()
	assert.Eventually(t, func() bool {
		return e.hub.Subscribers(live.ChatTopic(chat.ID.Hex())) == 0
	}, time.Second, 10*time.Millisecond)
}
