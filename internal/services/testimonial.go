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

// TestimonialService manages client quotes shown on the public site
type TestimonialService struct {
	db *gorm.DB
}

// NewTestimonialService creates a new testimonial service
func NewTestimonialService(db *gorm.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

// TestimonialInput carries the writable fields of a testimonial
type TestimonialInput struct {
	Name     *string
	Role     *string
	Quote    *string
	Rating   *int
	Approved *bool
}

// Create adds a new testimonial (unapproved until a staff member approves it)
func (s *TestimonialService) Create(ctx context.Context, in TestimonialInput) (*domain.Testimonial, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, NewBadRequestError("name is required")
	}
	if in.Quote == nil || strings.TrimSpace(*in.Quote) == "" {
		return nil, NewBadRequestError("quote is required")
	}
	log.Printf("[TESTIMONIAL] Create request: name=%s", strings.TrimSpace(*in.Name))

	t := domain.Testimonial{
		Name:  strings.TrimSpace(*in.Name),
		Quote: strings.TrimSpace(*in.Quote),
	}
	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		t.Role = &role
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, NewBadRequestError("rating must be between 1 and 5")
		}
		t.Rating = *in.Rating
	}
	if in.Approved != nil {
		t.Approved = *in.Approved
	}

	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		log.Printf("[TESTIMONIAL] Create failed: database error: %v", err)
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}

	log.Printf("[TESTIMONIAL] Create successful: id=%d", t.ID)
	return &t, nil
}

// List returns testimonials, newest first; approvedOnly hides pending
// entries for the public site.
func (s *TestimonialService) List(ctx context.Context, skip, limit int, approvedOnly bool) ([]domain.Testimonial, error) {
	log.Printf("[TESTIMONIAL] List request: skip=%d, limit=%d, approvedOnly=%v", skip, limit, approvedOnly)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query = query.Limit(limit)

	var items []domain.Testimonial
	if err := query.Find(&items).Error; err != nil {
		log.Printf("[TESTIMONIAL] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	log.Printf("[TESTIMONIAL] List successful: returned %d testimonials", len(items))
	return items, nil
}

// Get returns one testimonial by id
func (s *TestimonialService) Get(ctx context.Context, id uint) (*domain.Testimonial, error) {
	log.Printf("[TESTIMONIAL] Get request: id=%d", id)

	var t domain.Testimonial
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("testimonial not found")
		}
		log.Printf("[TESTIMONIAL] Get failed: database error: %v", err)
		return nil, err
	}
	return &t, nil
}

// Update changes the provided fields of a testimonial
func (s *TestimonialService) Update(ctx context.Context, id uint, in TestimonialInput) (*domain.Testimonial, error) {
	log.Printf("[TESTIMONIAL] Update request: id=%d", id)

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, NewBadRequestError("name must not be empty")
		}
		t.Name = name
	}
	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		t.Role = &role
	}
	if in.Quote != nil {
		quote := strings.TrimSpace(*in.Quote)
		if quote == "" {
			return nil, NewBadRequestError("quote must not be empty")
		}
		t.Quote = quote
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, NewBadRequestError("rating must be between 1 and 5")
		}
		t.Rating = *in.Rating
	}
	if in.Approved != nil {
		t.Approved = *in.Approved
	}

	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		log.Printf("[TESTIMONIAL] Update failed: database error: %v", err)
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}

	log.Printf("[TESTIMONIAL] Update successful: id=%d", t.ID)
	return t, nil
}

// Delete removes a testimonial
func (s *TestimonialService) Delete(ctx context.Context, id uint) error {
	log.Printf("[TESTIMONIAL] Delete request: id=%d", id)

	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(t).Error; err != nil {
		log.Printf("[TESTIMONIAL] Delete failed: database error: %v", err)
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	log.Printf("[TESTIMONIAL] Delete successful: id=%d", id)
	return nil
}
