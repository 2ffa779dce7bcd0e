package follows

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

// Handler handles follow-edge requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new follows handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		httperr.AbortKind(c, httperr.KindValidation, "Invalid user ID")
		return 0, false
	}
	return uint(id), true
}

// Follow creates a follow edge from the caller to :userId
// @Summary Follow a user
// @Tags user
// @Produce json
// @Param userId path int true "User to follow"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Already following"
// @Security BearerAuth
// @Router /user/auth/{userId}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	followerID, _ := auth.GetUserID(c)
	followingID, ok := parseUserID(c)
	if !ok {
		return
	}

	if followingID == followerID {
		httperr.AbortKind(c, httperr.KindConflict, "You cannot follow yourself")
		return
	}

	var target models.User
	if err := h.db.First(&target, followingID).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "", "User not found"))
		return
	}

	// Explicit duplicate check; concurrent racers still hit the
	// composite-key constraint below.
	var existing models.Follow
	if err := h.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&existing).Error; err == nil {
		httperr.AbortKind(c, httperr.KindConflict, "You are already following this user")
		return
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := h.db.Create(&follow).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "You are already following this user", "User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Followed successfully",
		"follow":  follow,
	})
}

// Unfollow removes the caller's follow edge to :userId
// @Summary Unfollow a user
// @Tags user
// @Produce json
// @Param userId path int true "User to unfollow"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not following"
// @Security BearerAuth
// @Router /user/auth/{userId}/unfollow [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	followerID, _ := auth.GetUserID(c)
	followingID, ok := parseUserID(c)
	if !ok {
		return
	}

	res := h.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		httperr.AbortKind(c, httperr.KindInternal, "An internal error occurred")
		return
	}
	if res.RowsAffected == 0 {
		httperr.AbortKind(c, httperr.KindNotFound, "You are not following this user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// Followers lists the users following :userId
// @Summary List followers
// @Tags user
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} users.UserResponse
// @Security BearerAuth
// @Router /user/auth/{userId}/followers [get]
func (h *Handler) Followers(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var edges []models.Follow
	if err := h.db.Preload("Follower").Where("following_id = ?", userID).
		Find(&edges).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch followers")
		return
	}

	followers := make([]users.UserResponse, len(edges))
	for i, e := range edges {
		followers[i] = users.ToResponse(e.Follower)
	}

	c.JSON(http.StatusOK, followers)
}

// Following lists the users :userId follows
// @Summary List following
// @Tags user
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} users.UserResponse
// @Security BearerAuth
// @Router /user/auth/{userId}/following [get]
func (h *Handler) Following(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var edges []models.Follow
	if err := h.db.Preload("Following").Where("follower_id = ?", userID).
		Find(&edges).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch following")
		return
	}

	following := make([]users.UserResponse, len(edges))
	for i, e := range edges {
		following[i] = users.ToResponse(e.Following)
	}

	c.JSON(http.StatusOK, following)
}

// RegisterRoutes registers the follow routes on the given protected group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:userId/follow", h.Follow)
	rg.DELETE("/:userId/unfollow", h.Unfollow)
	rg.GET("/:userId/followers", h.Followers)
	rg.GET("/:userId/following", h.Following)
}
