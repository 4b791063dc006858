package service

import (
	"testing"

	"anoa.com/communityhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySuppressesSelfNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	alice := createTestUser(t, db, "alice", false)

	err := svc.Notify(testCtx(), NotifyInput{
		RecipientID: alice.ID,
		ActorID:     alice.ID,
		Type:        model.NotificationLike,
		Message:     "alice liked your post.",
	})
	require.NoError(t, err)

	assert.Empty(t, listNotifications(t, db, alice.ID))
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, svc.Notify(testCtx(), NotifyInput{
			RecipientID: alice.ID,
			ActorID:     bob.ID,
			Type:        model.NotificationFollow,
			Message:     msg,
		}))
	}

	notifications, err := svc.List(testCtx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	assert.Equal(t, "three", notifications[0].Message)
	assert.Equal(t, "two", notifications[1].Message)
	assert.Equal(t, "one", notifications[2].Message)
}

func TestListIncludesActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	require.NoError(t, svc.Notify(testCtx(), NotifyInput{
		RecipientID: alice.ID,
		ActorID:     bob.ID,
		Type:        model.NotificationFollow,
		Message:     "bob started following you.",
	}))

	notifications, err := svc.List(testCtx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.NotNil(t, notifications[0].Actor)
	assert.Equal(t, "bob", notifications[0].Actor.Username)
}

func TestMarkAllAsReadIsNotRetroactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	notify := func(msg string) {
		require.NoError(t, svc.Notify(testCtx(), NotifyInput{
			RecipientID: alice.ID,
			ActorID:     bob.ID,
			Type:        model.NotificationFollow,
			Message:     msg,
		}))
	}

	notify("before")

	count, err := svc.UnreadCount(testCtx(), alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead(testCtx(), alice.ID))

	count, err = svc.UnreadCount(testCtx(), alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// A notification arriving after the sweep starts unread again.
	notify("after")

	count, err = svc.UnreadCount(testCtx(), alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	notifications, err := svc.List(testCtx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.False(t, notifications[0].IsRead)
	assert.True(t, notifications[1].IsRead)
}

func TestMarkAllAsReadOnlyTouchesOwnRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	carol := createTestUser(t, db, "carol", false)

	require.NoError(t, svc.Notify(testCtx(), NotifyInput{
		RecipientID: alice.ID,
		ActorID:     carol.ID,
		Type:        model.NotificationFollow,
		Message:     "carol started following you.",
	}))
	require.NoError(t, svc.Notify(testCtx(), NotifyInput{
		RecipientID: bob.ID,
		ActorID:     carol.ID,
		Type:        model.NotificationFollow,
		Message:     "carol started following you.",
	}))

	require.NoError(t, svc.MarkAllAsRead(testCtx(), alice.ID))

	count, err := svc.UnreadCount(testCtx(), bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "bob's notification stays unread")
}
