package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legacyestates/internal/services"
)

// TestimonialHandler serves testimonials: public reads of approved ones,
// staff writes.
type TestimonialHandler struct {
	testimonialService *services.TestimonialService
}

// NewTestimonialHandler creates a new testimonial handler
func NewTestimonialHandler(testimonialService *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

// TestimonialRequest is the JSON body for create and update
type TestimonialRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Quote    *string `json:"quote"`
	Rating   *int    `json:"rating"`
	Approved *bool   `json:"approved"`
}

func (r TestimonialRequest) toInput() services.TestimonialInput {
	return services.TestimonialInput{
		Name:     r.Name,
		Role:     r.Role,
		Quote:    r.Quote,
		Rating:   r.Rating,
		Approved: r.Approved,
	}
}

// List returns approved testimonials; staff can pass all=true for the rest
func (h *TestimonialHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	approvedOnly := c.Query("all") != "true"

	items, err := h.testimonialService.List(c.Request.Context(), skip, limit, approvedOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get returns one testimonial by id
func (h *TestimonialHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	t, err := h.testimonialService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Create adds a testimonial (staff only)
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.testimonialService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Update changes the provided fields of a testimonial (staff only)
func (h *TestimonialHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.testimonialService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Delete removes a testimonial (staff only)
func (h *TestimonialHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.testimonialService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted"})
}
