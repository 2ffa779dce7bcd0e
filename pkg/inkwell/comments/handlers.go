package comments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"github.com/inkwell/inkwell/pkg/inkwell/users"
	"gorm.io/gorm"
)

// Handler handles comment-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new comments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CommentRequest represents the request to comment on a blog
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// CommentResponse represents a comment with its author
type CommentResponse struct {
	ID        uint               `json:"id"`
	Comment   string             `json:"comment"`
	BlogID    uint               `json:"blog_id"`
	User      users.UserResponse `json:"user"`
	CreatedAt string             `json:"created_at"`
}

func parseBlogID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("blogId"), 10, 32)
	if err != nil {
		httperr.AbortKind(c, httperr.KindValidation, "Invalid blog ID")
		return 0, false
	}
	return uint(id), true
}

// Create adds a comment to a blog. A user may comment on the same blog
// any number of times.
// @Summary Comment on a blog
// @Tags blog
// @Accept json
// @Produce json
// @Param blogId path int true "Blog ID"
// @Param request body CommentRequest true "Comment body"
// @Success 200 {object} map[string]interface{}
// @Failure 411 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Blog not found"
// @Security BearerAuth
// @Router /blog/auth/{blogId}/comment [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	var blog models.Blog
	if err := h.db.First(&blog, blogID).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "", "Blog does not exist"))
		return
	}

	comment := models.Comment{
		Comment: req.Comment,
		UserID:  userID,
		BlogID:  blogID,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "An internal error occurred")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"id":      comment.ID,
	})
}

// List returns the comments on a blog with their authors
// @Summary List comments
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {array} CommentResponse
// @Security BearerAuth
// @Router /blog/auth/{blogId}/comments [get]
func (h *Handler) List(c *gin.Context) {
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := h.db.Preload("User").Where("blog_id = ?", blogID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch comments")
		return
	}

	results := make([]CommentResponse, len(comments))
	for i, cm := range comments {
		results[i] = CommentResponse{
			ID:        cm.ID,
			Comment:   cm.Comment,
			BlogID:    cm.BlogID,
			User:      users.ToResponse(cm.User),
			CreatedAt: cm.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, results)
}

// Delete removes one of the caller's comments by its id
// @Summary Delete a comment
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Comment not found"
// @Security BearerAuth
// @Router /blog/auth/{blogId}/comments/{commentId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 32)
	if err != nil {
		httperr.AbortKind(c, httperr.KindValidation, "Invalid comment ID")
		return
	}

	// Scoped to the caller: nobody deletes someone else's comment.
	res := h.db.Where("id = ? AND user_id = ? AND blog_id = ?", commentID, userID, blogID).
		Delete(&models.Comment{})
	if res.Error != nil {
		httperr.AbortKind(c, httperr.KindInternal, "An internal error occurred")
		return
	}
	if res.RowsAffected == 0 {
		httperr.AbortKind(c, httperr.KindNotFound, "Comment does not exist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// Count returns the number of comments on a blog
// @Summary Count comments
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /blog/auth/{blogId}/commentscount [get]
func (h *Handler) Count(c *gin.Context) {
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	var count int64
	if err := h.db.Model(&models.Comment{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to count comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": count})
}

// RegisterRoutes registers the comment routes on the given protected group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:blogId/comment", h.Create)
	rg.GET("/:blogId/comments", h.List)
	rg.DELETE("/:blogId/comments/:commentId", h.Delete)
	rg.GET("/:blogId/commentscount", h.Count)
}
