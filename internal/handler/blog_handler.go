package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legacyestates/internal/services"
)

// BlogHandler serves blog posts: public reads of published posts, staff
// writes of everything.
type BlogHandler struct {
	blogService *services.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// BlogPostRequest is the JSON body for create and update
type BlogPostRequest struct {
	Title     *string `json:"title"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Author    *string `json:"author"`
	ImageURL  *string `json:"image_url"`
	Published *bool   `json:"published"`
}

func (r BlogPostRequest) toInput() services.BlogPostInput {
	return services.BlogPostInput{
		Title:     r.Title,
		Excerpt:   r.Excerpt,
		Content:   r.Content,
		Author:    r.Author,
		ImageURL:  r.ImageURL,
		Published: r.Published,
	}
}

// List returns published posts; staff can pass all=true to include drafts
func (h *BlogHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	publishedOnly := c.Query("all") != "true"

	posts, err := h.blogService.List(c.Request.Context(), skip, limit, publishedOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetBySlug returns a single published post by its slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Get returns one post by id (staff only, drafts included)
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	post, err := h.blogService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Create adds a post (staff only)
func (h *BlogHandler) Create(c *gin.Context) {
	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.blogService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update changes the provided fields of a post (staff only)
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.blogService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete removes a post (staff only)
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted"})
}
