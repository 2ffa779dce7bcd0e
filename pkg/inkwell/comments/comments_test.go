package comments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	blogAuth := r.Group("/blog/auth")
	blogAuth.Use(auth.AuthMiddleware())
	NewHandler(db).RegisterRoutes(blogAuth)
	return r
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{Username: username, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestBlog(t *testing.T, db *gorm.DB, userID uint) models.Blog {
	blog := models.Blog{Title: "Post", Content: "c", UserID: userID}
	if err := db.Create(&blog).Error; err != nil {
		t.Fatalf("Failed to create test blog: %v", err)
	}
	return blog
}

func doJSON(r *gin.Engine, method, path string, as models.User, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	token, _ := auth.GenerateToken(as.ID)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCommentTwiceOnSameBlog(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, user.ID)

	path := fmt.Sprintf("/blog/auth/%d/comment", blog.ID)
	for i := 0; i < 2; i++ {
		resp := doJSON(r, "POST", path, user, CommentRequest{Comment: "again"})
		if resp.Code != http.StatusOK {
			t.Fatalf("Comment %d: expected status 200, got %d: %s", i, resp.Code, resp.Body.String())
		}
	}

	var count int64
	db.Model(&models.Comment{}).Where("user_id = ? AND blog_id = ?", user.ID, blog.ID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 comments from the same user, got %d", count)
	}
}

func TestCommentOnMissingBlog(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user := createTestUser(t, db, "reader@example.com")

	resp := doJSON(r, "POST", "/blog/auth/9999/comment", user, CommentRequest{Comment: "hi"})
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, user.ID)

	resp := doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), user, map[string]string{})
	if resp.Code != http.StatusLengthRequired {
		t.Errorf("Expected status 411, got %d", resp.Code)
	}
}

func TestListComments(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	author := createTestUser(t, db, "author@example.com")
	reader := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, author.ID)

	doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), reader, CommentRequest{Comment: "first"})
	doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), author, CommentRequest{Comment: "thanks"})

	resp := doJSON(r, "GET", fmt.Sprintf("/blog/auth/%d/comments", blog.ID), reader, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var comments []CommentResponse
	json.Unmarshal(resp.Body.Bytes(), &comments)
	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}
	if comments[0].User.Username != "reader@example.com" {
		t.Errorf("Expected commenter username, got %s", comments[0].User.Username)
	}
}

func TestDeleteCommentByID(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, user.ID)

	first := doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), user, CommentRequest{Comment: "one"})
	doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), user, CommentRequest{Comment: "two"})

	var created struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(first.Body.Bytes(), &created)

	resp := doJSON(r, "DELETE", fmt.Sprintf("/blog/auth/%d/comments/%d", blog.ID, created.ID), user, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Only the targeted comment is gone
	var remaining []models.Comment
	db.Where("blog_id = ?", blog.ID).Find(&remaining)
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 remaining comment, got %d", len(remaining))
	}
	if remaining[0].Comment != "two" {
		t.Errorf("Wrong comment deleted, remaining: %s", remaining[0].Comment)
	}
}

func TestDeleteCommentOfAnotherUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	blog := createTestBlog(t, db, owner.ID)

	created := doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), owner, CommentRequest{Comment: "mine"})
	var body struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(created.Body.Bytes(), &body)

	resp := doJSON(r, "DELETE", fmt.Sprintf("/blog/auth/%d/comments/%d", blog.ID, body.ID), intruder, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for someone else's comment, got %d", resp.Code)
	}

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	if count != 1 {
		t.Errorf("Comment should survive a foreign delete attempt, got %d rows", count)
	}
}

func TestDeleteCommentMissing(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, user.ID)

	resp := doJSON(r, "DELETE", fmt.Sprintf("/blog/auth/%d/comments/9999", blog.ID), user, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestCommentsCount(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user := createTestUser(t, db, "reader@example.com")
	blog := createTestBlog(t, db, user.ID)

	doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), user, CommentRequest{Comment: "one"})
	doJSON(r, "POST", fmt.Sprintf("/blog/auth/%d/comment", blog.ID), user, CommentRequest{Comment: "two"})

	resp := doJSON(r, "GET", fmt.Sprintf("/blog/auth/%d/commentscount", blog.ID), user, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var body map[string]int64
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["comments"] != 2 {
		t.Errorf("Expected 2 comments, got %d", body["comments"])
	}
}
