package likes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"gorm.io/gorm"
)

// Handler handles like-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new likes handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func parseBlogID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("blogId"), 10, 32)
	if err != nil {
		httperr.AbortKind(c, httperr.KindValidation, "Invalid blog ID")
		return 0, false
	}
	return uint(id), true
}

// Like records that the caller liked a blog. A second like for the same
// pair violates the composite key and answers conflict.
// @Summary Like a blog
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Blog not found"
// @Failure 409 {object} map[string]string "Already liked"
// @Security BearerAuth
// @Router /blog/auth/{blogId}/like [post]
func (h *Handler) Like(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	var blog models.Blog
	if err := h.db.First(&blog, blogID).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "", "Blog does not exist"))
		return
	}

	like := models.Like{UserID: userID, BlogID: blogID}
	if err := h.db.Create(&like).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "You have already liked this blog", "Blog does not exist"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog liked successfully"})
}

// Unlike removes the caller's like from a blog
// @Summary Remove a like
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Like not found"
// @Security BearerAuth
// @Router /blog/auth/{blogId}/removelike [delete]
func (h *Handler) Unlike(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	res := h.db.Where("user_id = ? AND blog_id = ?", userID, blogID).Delete(&models.Like{})
	if res.Error != nil {
		httperr.AbortKind(c, httperr.KindInternal, "An internal error occurred")
		return
	}
	if res.RowsAffected == 0 {
		httperr.AbortKind(c, httperr.KindNotFound, "Like does not exist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed successfully"})
}

// Count returns the number of likes on a blog
// @Summary Count likes
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /blog/auth/{blogId}/likes [get]
func (h *Handler) Count(c *gin.Context) {
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	var count int64
	if err := h.db.Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to count likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": count})
}

// HasLiked tells whether the caller has liked a blog
// @Summary Has the caller liked a blog
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /blog/auth/{blogId}/hasliked [get]
func (h *Handler) HasLiked(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	blogID, ok := parseBlogID(c)
	if !ok {
		return
	}

	var like models.Like
	err := h.db.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&like).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to check like")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasLiked": err == nil})
}

// RegisterRoutes registers the like routes on the given protected group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:blogId/like", h.Like)
	rg.DELETE("/:blogId/removelike", h.Unlike)
	rg.GET("/:blogId/likes", h.Count)
	rg.GET("/:blogId/hasliked", h.HasLiked)
}
