package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"anoa.com/communityhub/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database. TranslateError is on so
// unique-constraint violations surface as gorm.ErrDuplicatedKey, matching the
// postgres setup in pkg/database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.Notification{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, admin bool) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *model.User, title, body string) *model.Post {
	t.Helper()

	post := &model.Post{
		UserID: author.ID,
		Title:  title,
		Body:   body,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func listNotifications(t *testing.T, db *gorm.DB, userID interface{}) []model.Notification {
	t.Helper()

	var notifications []model.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at desc").Find(&notifications).Error)
	return notifications
}

func testCtx() context.Context {
	return context.Background()
}
