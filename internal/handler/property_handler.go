package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legacyestates/internal/services"
)

// PropertyHandler serves listings: public reads, staff writes
type PropertyHandler struct {
	propertyService *services.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// PropertyRequest is the JSON body for create and update; all fields
// optional so partial updates work.
type PropertyRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Price       *string `json:"price"`
	Location    *string `json:"location"`
	Bedrooms    *int    `json:"bedrooms"`
	Bathrooms   *int    `json:"bathrooms"`
	AreaSqft    *int    `json:"area_sqft"`
	ImageURL    *string `json:"image_url"`
	Featured    *bool   `json:"featured"`
	Status      *string `json:"status"`
}

func (r PropertyRequest) toInput() services.PropertyInput {
	return services.PropertyInput{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Price:       r.Price,
		Location:    r.Location,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		AreaSqft:    r.AreaSqft,
		ImageURL:    r.ImageURL,
		Featured:    r.Featured,
		Status:      r.Status,
	}
}

// List returns listings with optional type/status/featured filters
func (h *PropertyHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	propertyType := c.Query("type")
	status := c.Query("status")
	featuredOnly := c.Query("featured") == "true"

	props, err := h.propertyService.List(c.Request.Context(), skip, limit, propertyType, status, featuredOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, props)
}

// Get returns one listing by id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	prop, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prop)
}

// Create adds a listing (staff only)
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prop, err := h.propertyService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prop)
}

// Update changes the provided fields of a listing (staff only)
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prop, err := h.propertyService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prop)
}

// Delete removes a listing (staff only)
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
