package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:mw_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
	})
	return db
}

func signToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(repository.NewUserRepository(db), testSecret)

	r := gin.New()
	r.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	r.GET("/optional", m.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	r.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	db := newAuthTestDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, "/protected", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, "/protected", signToken(t, "some-user", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "expired tokens are rejected")

	token := signToken(t, "11111111-1111-1111-1111-111111111111", time.Hour)
	w = doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "11111111-1111-1111-1111-111111111111")
}

func TestOptionalAuth(t *testing.T) {
	db := newAuthTestDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code, "anonymous requests pass through")

	w = doRequest(r, "/optional", "garbage")
	assert.Equal(t, http.StatusOK, w.Code, "a bad token degrades to anonymous")
}

func TestRequireAdmin(t *testing.T) {
	db := newAuthTestDB(t)
	r := newTestRouter(db)

	regular := &model.User{
		Username:     "regular",
		Email:        "regular@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(regular).Error)

	admin := &model.User{
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: "x",
		IsAdmin:      true,
	}
	require.NoError(t, db.Create(admin).Error)

	w := doRequest(r, "/admin", signToken(t, regular.ID.String(), time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, "/admin", signToken(t, admin.ID.String(), time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "/admin", signToken(t, uuid.NewString(), time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "subject must be a known user id")
}
