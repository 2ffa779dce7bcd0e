package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"gorm.io/gorm"
)

// Handler handles profile and account requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UpdateUserRequest represents the profile update request body. All fields
// are optional; omitted fields are left untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,email"`
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdatePasswordRequest represents the password change request body
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse represents a user in API responses. The password hash is
// deliberately absent.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ToResponse projects a user model into its API shape.
func ToResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Me returns the authenticated caller's profile
// @Summary Get current user
// @Tags user
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /user/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "", "User not found"))
		return
	}

	c.JSON(http.StatusOK, ToResponse(user))
}

// UpdateMe updates the profile fields present in the request body
// @Summary Update current user
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "Profile fields"
// @Success 200 {object} map[string]string
// @Failure 411 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Username already taken"
// @Security BearerAuth
// @Router /user/auth/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "The username is already taken", "User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// ChangePassword re-hashes and overwrites the caller's password
// @Summary Change password
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 411 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /user/auth/change-password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to process password")
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hashedPassword).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "", "User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// Deactivate deletes the caller's account and everything it owns
// @Summary Deactivate account
// @Description Delete the caller's account, blogs, comments, likes and follow edges
// @Tags user
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /user/auth/deactivate [delete]
func (h *Handler) Deactivate(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var blogIDs []uint
		if err := tx.Model(&models.Blog{}).Where("user_id = ?", userID).
			Pluck("id", &blogIDs).Error; err != nil {
			return err
		}

		if len(blogIDs) > 0 {
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.BlogTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.BlogCategory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Blog{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", userID, userID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})

	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "An internal error occurred")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Search finds users whose username or full name contains the query
// @Summary Search users
// @Tags user
// @Produce json
// @Param q query string false "Search keyword"
// @Success 200 {array} UserResponse
// @Security BearerAuth
// @Router /user/auth/search [get]
func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")

	var matches []models.User
	pattern := "%" + q + "%"
	if err := h.db.
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", pattern, pattern).
		Find(&matches).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to search users")
		return
	}

	results := make([]UserResponse, len(matches))
	for i, u := range matches {
		results[i] = ToResponse(u)
	}

	c.JSON(http.StatusOK, results)
}

// RegisterRoutes registers the protected profile routes on the given group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.PUT("/me", h.UpdateMe)
	rg.PUT("/change-password", h.ChangePassword)
	rg.DELETE("/deactivate", h.Deactivate)
	rg.GET("/search", h.Search)
}
