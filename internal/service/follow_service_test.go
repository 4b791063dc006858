package service

import (
	"testing"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFollowService(db *gorm.DB) FollowService {
	return NewFollowService(db, repository.NewFollowRepository(db), repository.NewUserRepository(db))
}

func TestFollowSelfFollowRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)
	alice := createTestUser(t, db, "alice", false)

	err := svc.Follow(testCtx(), alice.ID, alice.ID)
	require.ErrorIs(t, err, apperror.ErrSelfFollow)

	var count int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&count).Error)
	assert.Zero(t, count, "no edge should be created")
}

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	require.NoError(t, svc.Follow(testCtx(), bob.ID, alice.ID))
	require.NoError(t, svc.Follow(testCtx(), bob.ID, alice.ID), "second follow is a no-op, not an error")

	var count int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one edge per ordered pair")

	// The no-op repeat must not produce a second notification either.
	notifications := listNotifications(t, db, alice.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationFollow, notifications[0].Type)
	assert.Equal(t, bob.ID, notifications[0].ActorID)
	assert.Equal(t, "bob started following you.", notifications[0].Message)
	assert.False(t, notifications[0].IsRead)
}

func TestFollowUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)
	alice := createTestUser(t, db, "alice", false)

	err := svc.Follow(testCtx(), alice.ID, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnfollowAbsentEdgeIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	require.NoError(t, svc.Unfollow(testCtx(), bob.ID, alice.ID))
}

func TestUnfollowRemovesEdge(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	require.NoError(t, svc.Follow(testCtx(), bob.ID, alice.ID))

	following, err := svc.IsFollowing(testCtx(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, svc.Unfollow(testCtx(), bob.ID, alice.ID))

	following, err = svc.IsFollowing(testCtx(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowingIDs(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	carol := createTestUser(t, db, "carol", false)

	require.NoError(t, svc.Follow(testCtx(), bob.ID, alice.ID))
	require.NoError(t, svc.Follow(testCtx(), bob.ID, carol.ID))

	ids, err := svc.FollowingIDs(testCtx(), bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{alice.ID, carol.ID}, ids)
}
