package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"gorm.io/gorm"
)

// Handler handles authentication requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Username  string `json:"username" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// SigninRequest represents the signin request body
type SigninRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse represents a successful signup/signin response
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create a new account and receive a bearer token
// @Tags user
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup details"
// @Success 200 {object} TokenResponse
// @Failure 411 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /user/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to process password")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "The user already exists", "User not found"))
		return
	}

	token, err := GenerateToken(user.ID)
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Message: "Signup successful",
		Token:   token,
	})
}

// Signin handles user login
// @Summary Sign in
// @Description Authenticate with username and password to receive a bearer token
// @Tags user
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Signin credentials"
// @Success 200 {object} TokenResponse
// @Failure 411 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Incorrect credentials"
// @Router /user/signin [post]
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	// Wrong username and wrong password are answered identically.
	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		httperr.AbortKind(c, httperr.KindAuthInvalid, "Incorrect credentials")
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		httperr.AbortKind(c, httperr.KindAuthInvalid, "Incorrect credentials")
		return
	}

	token, err := GenerateToken(user.ID)
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Message: "Signin successful",
		Token:   token,
	})
}

// RegisterRoutes registers the public auth routes on the given group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/signin", h.Signin)
}
