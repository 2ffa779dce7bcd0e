package follows

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"github.com/inkwell/inkwell/pkg/inkwell/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	userAuth := r.Group("/user/auth")
	userAuth.Use(auth.AuthMiddleware())
	NewHandler(db).RegisterRoutes(userAuth)
	return db, r
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{Username: username, PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func doRequest(r *gin.Engine, method, path string, as models.User) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	token, _ := auth.GenerateToken(as.ID)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestFollowUnfollow(t *testing.T) {
	db, r := setupTest(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	resp := doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", bob.ID), alice)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(1), count)

	resp = doRequest(r, "DELETE", fmt.Sprintf("/user/auth/%d/unfollow", bob.ID), alice)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestFollowDuplicate(t *testing.T) {
	db, r := setupTest(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	resp := doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", bob.ID), alice)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", bob.ID), alice)
	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(1), count, "duplicate follow must not add a row")
}

func TestFollowSelf(t *testing.T) {
	db, r := setupTest(t)
	alice := createUser(t, db, "alice@example.com")

	resp := doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", alice.ID), alice)
	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())
}

func TestFollowMissingTarget(t *testing.T) {
	db, r := setupTest(t)
	alice := createUser(t, db, "alice@example.com")

	resp := doRequest(r, "POST", "/user/auth/9999/follow", alice)
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestUnfollowMissingEdge(t *testing.T) {
	db, r := setupTest(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	resp := doRequest(r, "DELETE", fmt.Sprintf("/user/auth/%d/unfollow", bob.ID), alice)
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())

	// Second unfollow after a successful cycle also fails
	doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", bob.ID), alice)
	doRequest(r, "DELETE", fmt.Sprintf("/user/auth/%d/unfollow", bob.ID), alice)
	resp = doRequest(r, "DELETE", fmt.Sprintf("/user/auth/%d/unfollow", bob.ID), alice)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFollowersAndFollowing(t *testing.T) {
	db, r := setupTest(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	carol := createUser(t, db, "carol@example.com")

	require.Equal(t, http.StatusOK,
		doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", bob.ID), alice).Code)
	require.Equal(t, http.StatusOK,
		doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", bob.ID), carol).Code)
	require.Equal(t, http.StatusOK,
		doRequest(r, "POST", fmt.Sprintf("/user/auth/%d/follow", carol.ID), alice).Code)

	resp := doRequest(r, "GET", fmt.Sprintf("/user/auth/%d/followers", bob.ID), alice)
	require.Equal(t, http.StatusOK, resp.Code)

	var followers []users.UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &followers))
	assert.Len(t, followers, 2)

	resp = doRequest(r, "GET", fmt.Sprintf("/user/auth/%d/following", alice.ID), alice)
	require.Equal(t, http.StatusOK, resp.Code)

	var following []users.UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &following))
	assert.Len(t, following, 2)
	for _, u := range following {
		assert.NotEmpty(t, u.Username)
	}
}
