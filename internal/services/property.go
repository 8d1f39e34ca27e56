package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"legacyestates/internal/domain"
)

var validPropertyStatuses = map[string]bool{
	"available": true,
	"sold":      true,
	"withdrawn": true,
}

var validPropertyTypes = map[string]bool{
	"residential": true,
	"commercial":  true,
	"plot":        true,
}

// PropertyService manages the listings shown on the public site
type PropertyService struct {
	db *gorm.DB
}

// NewPropertyService creates a new property service
func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// PropertyInput carries the writable fields of a listing. Pointer fields
// left nil on update mean "keep the current value".
type PropertyInput struct {
	Title       *string
	Description *string
	Type        *string
	Price       *string
	Location    *string
	Bedrooms    *int
	Bathrooms   *int
	AreaSqft    *int
	ImageURL    *string
	Featured    *bool
	Status      *string
}

// Create adds a new listing
func (s *PropertyService) Create(ctx context.Context, in PropertyInput) (*domain.Property, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, NewBadRequestError("title is required")
	}
	if in.Type == nil || !validPropertyTypes[*in.Type] {
		return nil, NewBadRequestError("type must be one of: residential, commercial, plot")
	}
	log.Printf("[PROPERTY] Create request: title=%s, type=%s", *in.Title, *in.Type)

	prop := domain.Property{
		Title: strings.TrimSpace(*in.Title),
		Type:  *in.Type,
	}
	applyPropertyInput(&prop, in)

	if err := s.db.WithContext(ctx).Create(&prop).Error; err != nil {
		log.Printf("[PROPERTY] Create failed: database error: %v", err)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	log.Printf("[PROPERTY] Create successful: id=%d, title=%s", prop.ID, prop.Title)
	return &prop, nil
}

// List returns listings, newest first, with optional type/status/featured filters
func (s *PropertyService) List(ctx context.Context, skip, limit int, propertyType, status string, featuredOnly bool) ([]domain.Property, error) {
	log.Printf("[PROPERTY] List request: skip=%d, limit=%d, type=%s, status=%s, featured=%v",
		skip, limit, propertyType, status, featuredOnly)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if propertyType != "" {
		if !validPropertyTypes[propertyType] {
			return nil, NewBadRequestError("invalid property type filter")
		}
		query = query.Where("type = ?", propertyType)
	}
	if status != "" {
		if !validPropertyStatuses[status] {
			return nil, NewBadRequestError("invalid status filter")
		}
		query = query.Where("status = ?", status)
	}
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query = query.Limit(limit)

	var props []domain.Property
	if err := query.Find(&props).Error; err != nil {
		log.Printf("[PROPERTY] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	log.Printf("[PROPERTY] List successful: returned %d properties", len(props))
	return props, nil
}

// Get returns one listing by id
func (s *PropertyService) Get(ctx context.Context, id uint) (*domain.Property, error) {
	log.Printf("[PROPERTY] Get request: id=%d", id)

	var prop domain.Property
	if err := s.db.WithContext(ctx).First(&prop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("property not found")
		}
		log.Printf("[PROPERTY] Get failed: database error: %v", err)
		return nil, err
	}
	return &prop, nil
}

// Update changes the provided fields of a listing
func (s *PropertyService) Update(ctx context.Context, id uint, in PropertyInput) (*domain.Property, error) {
	log.Printf("[PROPERTY] Update request: id=%d", id)

	prop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, NewBadRequestError("title must not be empty")
		}
		prop.Title = title
	}
	if in.Type != nil {
		if !validPropertyTypes[*in.Type] {
			return nil, NewBadRequestError("invalid property type")
		}
		prop.Type = *in.Type
	}
	if in.Status != nil {
		if !validPropertyStatuses[*in.Status] {
			return nil, NewBadRequestError("invalid property status")
		}
		prop.Status = *in.Status
	}
	applyPropertyInput(prop, in)

	if err := s.db.WithContext(ctx).Save(prop).Error; err != nil {
		log.Printf("[PROPERTY] Update failed: database error: %v", err)
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	log.Printf("[PROPERTY] Update successful: id=%d", prop.ID)
	return prop, nil
}

// Delete removes a listing
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	log.Printf("[PROPERTY] Delete request: id=%d", id)

	prop, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(prop).Error; err != nil {
		log.Printf("[PROPERTY] Delete failed: database error: %v", err)
		return fmt.Errorf("failed to delete property: %w", err)
	}

	log.Printf("[PROPERTY] Delete successful: id=%d", id)
	return nil
}

// applyPropertyInput copies the optional fields shared by create and update
func applyPropertyInput(prop *domain.Property, in PropertyInput) {
	if in.Description != nil {
		prop.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		prop.Price = in.Price
	}
	if in.Location != nil {
		prop.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bedrooms != nil {
		prop.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms != nil {
		prop.Bathrooms = in.Bathrooms
	}
	if in.AreaSqft != nil {
		prop.AreaSqft = in.AreaSqft
	}
	if in.ImageURL != nil {
		prop.ImageURL = in.ImageURL
	}
	if in.Featured != nil {
		prop.Featured = *in.Featured
	}
}
