package service

import (
	"testing"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) DashboardService {
	return NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
	)
}

func TestDashboardCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)
	postSvc := newPostService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, alice, "Hello", "first post")

	_, err := postSvc.AddComment(testCtx(), post.ID, bob.ID, "nice")
	require.NoError(t, err)

	counts, err := svc.Counts(testCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Users)
	assert.EqualValues(t, 1, counts.Posts)
	assert.EqualValues(t, 1, counts.Comments)
}

func TestTopPostsIncludesZeroLikePosts(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)
	likeSvc := newLikeService(db)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	carol := createTestUser(t, db, "carol", false)

	popular := createTestPost(t, db, alice, "popular", "a")
	createTestPost(t, db, alice, "quiet", "b")

	require.NoError(t, likeSvc.Like(testCtx(), popular.ID, bob.ID))
	require.NoError(t, likeSvc.Like(testCtx(), popular.ID, carol.ID))

	top, err := svc.TopPosts(testCtx(), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "popular", top[0].Title)
	assert.EqualValues(t, 2, top[0].LikeCount)
	assert.Equal(t, "quiet", top[1].Title)
	assert.EqualValues(t, 0, top[1].LikeCount)

	// The limit caps the ranking.
	top, err = svc.TopPosts(testCtx(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "popular", top[0].Title)
}

func TestRecentPostsDefaultLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)
	alice := createTestUser(t, db, "alice", false)

	for i := 0; i < RecentPostsLimit+2; i++ {
		createTestPost(t, db, alice, "post", "body")
	}

	recent, err := svc.RecentPosts(testCtx(), 0)
	require.NoError(t, err)
	assert.Len(t, recent, RecentPostsLimit)
}

// End-to-end walk through the core interactions: follow, post, comment, like,
// then check what the feed, notifications, and dashboard report.
func TestCommunityScenario(t *testing.T) {
	db := newTestDB(t)
	postSvc := newPostService(db)
	followSvc := newFollowService(db)
	likeSvc := newLikeService(db)
	notifSvc := NewNotificationService(db)
	dashSvc := newDashboardService(db)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	require.NoError(t, followSvc.Follow(testCtx(), bob.ID, alice.ID))

	post, err := postSvc.CreatePost(testCtx(), alice.ID, CreatePostInput{
		Title: "Hello",
		Body:  "my first post",
	}, nil)
	require.NoError(t, err)

	_, err = postSvc.AddComment(testCtx(), post.ID, bob.ID, "welcome!")
	require.NoError(t, err)
	require.NoError(t, likeSvc.Like(testCtx(), post.ID, bob.ID))

	// Bob's following feed carries Alice's post.
	feed, err := postSvc.Feed(testCtx(), bob.ID, FeedModeFollowing)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Hello", feed[0].Title)

	// Alice has the follow, comment and like notifications, newest first.
	notifications, err := notifSvc.List(testCtx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	assert.Equal(t, model.NotificationLike, notifications[0].Type)
	assert.Equal(t, model.NotificationComment, notifications[1].Type)
	assert.Equal(t, model.NotificationFollow, notifications[2].Type)

	// Bob gets nothing; he was the actor everywhere.
	bobNotifications, err := notifSvc.List(testCtx(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobNotifications)

	counts, err := dashSvc.Counts(testCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Users)
	assert.EqualValues(t, 1, counts.Posts)
	assert.EqualValues(t, 1, counts.Comments)

	top, err := dashSvc.TopPosts(testCtx(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Hello", top[0].Title)
	assert.EqualValues(t, 1, top[0].LikeCount)
}
