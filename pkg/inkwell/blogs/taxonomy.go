package blogs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
)

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	BlogCount int    `json:"blog_count"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	BlogCount int    `json:"blog_count"`
}

type nameWithCount struct {
	ID        uint
	Name      string
	BlogCount int
}

// ListTags returns every tag with the number of blogs carrying it
// @Summary List tags
// @Tags blog
// @Produce json
// @Success 200 {array} TagResponse
// @Security BearerAuth
// @Router /blog/auth/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	var results []nameWithCount
	err := h.db.Table("tags").
		Select("tags.id, tags.name, COUNT(DISTINCT blog_tags.blog_id) as blog_count").
		Joins("LEFT JOIN blog_tags ON tags.id = blog_tags.tag_id").
		Group("tags.id").
		Order("blog_count DESC").
		Find(&results).Error
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch tags")
		return
	}

	tags := make([]TagResponse, len(results))
	for i, r := range results {
		tags[i] = TagResponse{ID: r.ID, Name: r.Name, BlogCount: r.BlogCount}
	}

	c.JSON(http.StatusOK, tags)
}

// ListCategories returns every category with the number of blogs in it
// @Summary List categories
// @Tags blog
// @Produce json
// @Success 200 {array} CategoryResponse
// @Security BearerAuth
// @Router /blog/auth/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	var results []nameWithCount
	err := h.db.Table("categories").
		Select("categories.id, categories.name, COUNT(DISTINCT blog_categories.blog_id) as blog_count").
		Joins("LEFT JOIN blog_categories ON categories.id = blog_categories.category_id").
		Group("categories.id").
		Order("blog_count DESC").
		Find(&results).Error
	if err != nil {
		httperr.AbortKind(c, httperr.KindInternal, "Failed to fetch categories")
		return
	}

	categories := make([]CategoryResponse, len(results))
	for i, r := range results {
		categories[i] = CategoryResponse{ID: r.ID, Name: r.Name, BlogCount: r.BlogCount}
	}

	c.JSON(http.StatusOK, categories)
}

// RegisterTaxonomyRoutes registers the tag and category listings on the
// given protected group
func (h *Handler) RegisterTaxonomyRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.ListTags)
	rg.GET("/categories", h.ListCategories)
}
