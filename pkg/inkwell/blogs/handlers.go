package blogs

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"github.com/inkwell/inkwell/pkg/inkwell/users"
	"gorm.io/gorm"
)

// Handler handles blog-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new blogs handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateBlogRequest represents the request to create a blog
type CreateBlogRequest struct {
	Title        string   `json:"title" binding:"required"`
	Content      string   `json:"content" binding:"required"`
	TagName      []string `json:"tagName"`
	CategoryName []string `json:"categoryName"`
}

// UpdateBlogRequest represents the request to update a blog
type UpdateBlogRequest struct {
	Title        string   `json:"title" binding:"required"`
	Content      string   `json:"content" binding:"required"`
	TagName      []string `json:"tagName"`
	CategoryName []string `json:"categoryName"`
}

// BlogResponse represents a blog in API responses, eagerly including
// owner, tag and category names, comments and likes.
type BlogResponse struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	UserID     uint                `json:"user_id"`
	User       *users.UserResponse `json:"user,omitempty"`
	Tags       []string            `json:"tags"`
	Categories []string            `json:"categories"`
	Comments   []models.Comment    `json:"comments"`
	Likes      []models.Like       `json:"likes"`
	CreatedAt  string              `json:"created_at"`
	UpdatedAt  string              `json:"updated_at"`
}

func blogToResponse(blog models.Blog) BlogResponse {
	tags := make([]string, len(blog.Tags))
	for i, t := range blog.Tags {
		tags[i] = t.Name
	}
	categories := make([]string, len(blog.Categories))
	for i, cat := range blog.Categories {
		categories[i] = cat.Name
	}

	resp := BlogResponse{
		ID:         blog.ID,
		Title:      blog.Title,
		Content:    blog.Content,
		UserID:     blog.UserID,
		Tags:       tags,
		Categories: categories,
		Comments:   blog.Comments,
		Likes:      blog.Likes,
		CreatedAt:  blog.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  blog.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if blog.User.ID != 0 {
		u := users.ToResponse(blog.User)
		resp.User = &u
	}
	return resp
}

func blogsToResponses(blogs []models.Blog) []BlogResponse {
	out := make([]BlogResponse, len(blogs))
	for i, b := range blogs {
		out[i] = blogToResponse(b)
	}
	return out
}

// withIncludes eagerly loads everything a blog response carries.
func (h *Handler) withIncludes(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Tags").
		Preload("Categories").
		Preload("Comments").
		Preload("Likes")
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

// applyTaxonomy attaches tags and categories to a blog by name,
// reusing existing rows and inserting missing ones.
func applyTaxonomy(tx *gorm.DB, blogID uint, tagNames, categoryNames []string) error {
	for _, name := range dedupe(tagNames) {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.BlogTag{BlogID: blogID, TagID: tag.ID}).Error; err != nil {
			return err
		}
	}

	for _, name := range dedupe(categoryNames) {
		var category models.Category
		if err := tx.Where("name = ?", name).FirstOrCreate(&category, models.Category{Name: name}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.BlogCategory{BlogID: blogID, CategoryID: category.ID}).Error; err != nil {
			return err
		}
	}

	return nil
}

func parseBlogID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		httperr.AbortKind(c, httperr.KindValidation, "Invalid blog ID")
		return 0, false
	}
	return uint(id), true
}

// abortTxErr unwraps a kinded error returned from a transaction.
func abortTxErr(c *gin.Context, err error) {
	if e, ok := err.(*httperr.Error); ok {
		httperr.Abort(c, e)
		return
	}
	httperr.AbortKind(c, httperr.KindInternal, "An internal error occurred")
}

// Create creates a blog together with its tag and category joins
// @Summary Create a blog
// @Tags blog
// @Accept json
// @Produce json
// @Param request body CreateBlogRequest true "Blog details"
// @Success 200 {object} map[string]interface{}
// @Failure 411 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /blog/auth [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	blog := models.Blog{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&blog).Error; err != nil {
			return err
		}
		return applyTaxonomy(tx, blog.ID, req.TagName, req.CategoryName)
	})
	if err != nil {
		abortTxErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Blog created successfully",
		"id":      blog.ID,
	})
}

// Update overwrites a blog and replaces its tag and category join sets.
// The whole replace runs in one transaction so a partial failure cannot
// leave stale joins behind.
// @Summary Update a blog
// @Tags blog
// @Accept json
// @Produce json
// @Param id path int true "Blog ID"
// @Param request body UpdateBlogRequest true "Blog details"
// @Success 200 {object} map[string]string
// @Failure 411 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Blog not found"
// @Security BearerAuth
// @Router /blog/auth/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	blogID, ok := parseBlogID(c, "id")
	if !ok {
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.BlogCategory{}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Blog{}).Where("id = ?", blogID).Updates(map[string]interface{}{
			"title":   req.Title,
			"content": req.Content,
			"user_id": userID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.New(httperr.KindNotFound, "Blog does not exist")
		}

		return applyTaxonomy(tx, blogID, req.TagName, req.CategoryName)
	})
	if err != nil {
		abortTxErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog updated successfully"})
}

// List returns all blogs
// @Summary List blogs
// @Tags blog
// @Produce json
// @Success 200 {array} BlogResponse
// @Security BearerAuth
// @Router /blog/auth/blogs [get]
func (h *Handler) List(c *gin.Context) {
	var blogs []models.Blog
	if err := h.withIncludes(h.db).Order("created_at DESC").Find(&blogs).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch blogs")
		return
	}

	c.JSON(http.StatusOK, blogsToResponses(blogs))
}

// Search returns blogs whose title or content contains the keyword
// @Summary Search blogs
// @Tags blog
// @Produce json
// @Param q query string false "Search keyword"
// @Success 200 {array} BlogResponse
// @Security BearerAuth
// @Router /blog/auth/search [get]
func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")

	var blogs []models.Blog
	pattern := "%" + q + "%"
	if err := h.withIncludes(h.db).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern).
		Find(&blogs).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to search blogs")
		return
	}

	c.JSON(http.StatusOK, blogsToResponses(blogs))
}

// ListByPerson returns all blogs owned by a user
// @Summary List a user's blogs
// @Tags blog
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} BlogResponse
// @Security BearerAuth
// @Router /blog/auth/person/{id} [get]
func (h *Handler) ListByPerson(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.AbortKind(c, httperr.KindValidation, "Invalid user ID")
		return
	}

	var blogs []models.Blog
	if err := h.withIncludes(h.db).Where("user_id = ?", ownerID).
		Order("created_at DESC").Find(&blogs).Error; err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch blogs")
		return
	}

	c.JSON(http.StatusOK, blogsToResponses(blogs))
}

// Get returns a single blog by id
// @Summary Get a blog
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} BlogResponse
// @Failure 404 {object} map[string]string "Blog not found"
// @Security BearerAuth
// @Router /blog/auth/{blogId} [get]
func (h *Handler) Get(c *gin.Context) {
	blogID, ok := parseBlogID(c, "blogId")
	if !ok {
		return
	}

	var blog models.Blog
	if err := h.withIncludes(h.db).First(&blog, blogID).Error; err != nil {
		httperr.Abort(c, httperr.FromDB(err, "", "Blog does not exist"))
		return
	}

	c.JSON(http.StatusOK, blogToResponse(blog))
}

// Delete removes a blog together with its joins, comments and likes
// @Summary Delete a blog
// @Tags blog
// @Produce json
// @Param blogId path int true "Blog ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Blog not found"
// @Security BearerAuth
// @Router /blog/auth/{blogId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	blogID, ok := parseBlogID(c, "blogId")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.BlogCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blogID).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Blog{}, blogID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.New(httperr.KindNotFound, "Blog does not exist")
		}
		return nil
	})
	if err != nil {
		abortTxErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

// ListByCategory returns blogs filed under a category name
// @Summary List blogs in a category
// @Tags blog
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {array} BlogResponse
// @Security BearerAuth
// @Router /blog/auth/category/{category} [get]
func (h *Handler) ListByCategory(c *gin.Context) {
	name := c.Param("category")

	var blogs []models.Blog
	err := h.withIncludes(h.db).
		Select("blogs.*").
		Joins("INNER JOIN blog_categories ON blog_categories.blog_id = blogs.id").
		Joins("INNER JOIN categories ON categories.id = blog_categories.category_id").
		Where("LOWER(categories.name) = LOWER(?)", name).
		Find(&blogs).Error
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch blogs")
		return
	}

	c.JSON(http.StatusOK, blogsToResponses(blogs))
}

// ListByTag returns blogs carrying a tag name
// @Summary List blogs with a tag
// @Tags blog
// @Produce json
// @Param tag path string true "Tag name"
// @Success 200 {array} BlogResponse
// @Security BearerAuth
// @Router /blog/auth/tag/{tag} [get]
func (h *Handler) ListByTag(c *gin.Context) {
	name := c.Param("tag")

	var blogs []models.Blog
	err := h.withIncludes(h.db).
		Select("blogs.*").
		Joins("INNER JOIN blog_tags ON blog_tags.blog_id = blogs.id").
		Joins("INNER JOIN tags ON tags.id = blog_tags.tag_id").
		Where("LOWER(tags.name) = LOWER(?)", name).
		Find(&blogs).Error
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch blogs")
		return
	}

	c.JSON(http.StatusOK, blogsToResponses(blogs))
}

// RegisterRoutes registers the blog routes on the given protected group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.GET("/blogs", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/person/:id", h.ListByPerson)
	rg.GET("/:blogId", h.Get)
	rg.DELETE("/:blogId", h.Delete)
	rg.GET("/category/:category", h.ListByCategory)
	rg.GET("/tag/:tag", h.ListByTag)
}
