package usecase

import (
	"context"
	"sync"
	"testing"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carol := f.client(t, "carol")
	dana := f.driver(t, "dana")
	dave := f.driver(t, "dave")
	post := f.post(t, carol, "Move boxes")
	f.bid(t, dana, post.ID, 100)

	result := f.chat.PostMessage(ctx, carol, &model.PostMessageRequest{JobPostID: post.ID, DriverID: dana.DriverID, Message: "Can you start at 9?"})
	require.NoError(t, result.Error)
	first := result.Data.(*model.ChatMessageResponse)
	assert.Equal(t, carol.UserID(), first.SenderID)
	assert.Equal(t, dana.UserID(), first.ReceiverID)
	assert.NotEmpty(t, first.ChatID)

	result = f.chat.PostMessage(ctx, dana, &model.PostMessageRequest{JobPostID: post.ID, DriverID: dana.DriverID, Message: "Yes"})
	require.NoError(t, result.Error)
	reply := result.Data.(*model.ChatMessageResponse)
	assert.Equal(t, dana.UserID(), reply.SenderID)
	assert.Equal(t, carol.UserID(), reply.ReceiverID)
	assert.Equal(t, first.ChatRoomID, reply.ChatRoomID)

	t.Run("driver without a bid", func(t *testing.T) {
		result := f.chat.PostMessage(ctx, carol, &model.PostMessageRequest{JobPostID: post.ID, DriverID: dave.DriverID, Message: "Hi"})
		requireKind(t, result, "invalid_reference")
	})

	t.Run("outsiders cannot post", func(t *testing.T) {
		result := f.chat.PostMessage(ctx, dave, &model.PostMessageRequest{JobPostID: post.ID, DriverID: dana.DriverID, Message: "Hi"})
		requireKind(t, result, "forbidden")
		result = f.chat.PostMessage(ctx, f.client(t, "chris"), &model.PostMessageRequest{JobPostID: post.ID, DriverID: dana.DriverID, Message: "Hi"})
		requireKind(t, result, "forbidden")
	})

	t.Run("reading", func(t *testing.T) {
		unread := f.chat.UnreadCount(ctx, dana)
		require.NoError(t, unread.Error)
		assert.Equal(t, 1, unread.Data.(model.UnreadCountResponse).Unread)

		requireKind(t, f.chat.MarkRead(ctx, carol, &model.GetByIDRequest{ID: first.ID}), "forbidden")
		requireKind(t, f.chat.MarkRead(ctx, dave, &model.GetByIDRequest{ID: first.ID}), "not_found")

		result := f.chat.MarkRead(ctx, dana, &model.GetByIDRequest{ID: first.ID})
		require.NoError(t, result.Error)
		assert.True(t, result.Data.(*model.ChatMessageResponse).ReadStatus)
		assert.Equal(t, 0, f.chat.UnreadCount(ctx, dana).Data.(model.UnreadCountResponse).Unread)
	})

	t.Run("listing", func(t *testing.T) {
		for _, actor := range []policy.Actor{carol, dana} {
			result := f.chat.ListMessages(ctx, actor)
			require.NoError(t, result.Error)
			assert.Len(t, result.Data, 2)
		}
		result := f.chat.ListMessages(ctx, dave)
		require.NoError(t, result.Error)
		assert.Empty(t, result.Data)
		requireKind(t, f.chat.GetMessage(ctx, dave, &model.GetByIDRequest{ID: first.ID}), "not_found")
	})

	t.Run("receiver is notified", func(t *testing.T) {
		notes := f.notifications.List(ctx, dana).Data.([]*model.NotificationResponse)
		assert.Len(t, notes, 1)
	})
}

func TestPostMessage_ConcurrentFirstMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carol := f.client(t, "carol")
	dana := f.driver(t, "dana")
	post := f.post(t, carol, "Move boxes")
	f.bid(t, dana, post.ID, 100)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, actor := range []policy.Actor{carol, dana} {
		wg.Add(1)
		go func(i int, actor policy.Actor) {
			defer wg.Done()
			errs[i] = f.chat.PostMessage(ctx, actor, &model.PostMessageRequest{
				JobPostID: post.ID, DriverID: dana.DriverID, Message: "hello",
			}).Error
		}(i, actor)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Len(t, f.store.Rooms(), 1)
	messages, err := f.store.ChatMessages().List(ctx, entity.ChatMessageFilter{})
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestOpenRoom_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carol := f.client(t, "carol")
	dana := f.driver(t, "dana")
	post := f.post(t, carol, "Move boxes")

	first, err := f.chat.OpenRoom(ctx, post.ID, carol.ClientID, dana.DriverID)
	require.NoError(t, err)
	second, err := f.chat.OpenRoom(ctx, post.ID, carol.ClientID, dana.DriverID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ChatID, second.ChatID)
}
