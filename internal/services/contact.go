package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"legacyestates/internal/domain"
	"legacyestates/internal/lead"
	"legacyestates/internal/metrics"
)

var validSubmissionStatuses = map[string]bool{
	"new":     true,
	"read":    true,
	"replied": true,
}

// ContactService persists contact submissions and serves the admin
// dashboard views over them. It implements lead.SubmissionStore.
type ContactService struct {
	db           *gorm.DB
	emailService *EmailService
}

// NewContactService creates a new contact service
func NewContactService(db *gorm.DB, emailService *EmailService) *ContactService {
	return &ContactService{
		db:           db,
		emailService: emailService,
	}
}

// InsertContactSubmission appends one submission row. Called by the form
// controller only after its preconditions all passed.
func (s *ContactService) InsertContactSubmission(ctx context.Context, rec lead.Submission) error {
	log.Printf("[CONTACT] Insert request: name=%s, email=%s", rec.Name, rec.Email)

	sub := &domain.ContactSubmission{
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Message:       rec.Message,
		PhoneVerified: rec.PhoneVerified,
		Status:        "new",
	}

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		log.Printf("[CONTACT] Insert failed: database error: %v", err)
		return fmt.Errorf("failed to save contact submission: %w", err)
	}

	log.Printf("[CONTACT] Insert successful: id=%d, name=%s, email=%s", sub.ID, sub.Name, sub.Email)
	metrics.RecordContactSubmission()

	// Notify the brokerage inbox (async, don't fail the insert if email fails)
	go func() {
		if err := s.emailService.SendSubmissionNotification(sub); err != nil {
			log.Printf("[CONTACT] Warning: failed to send notification email: %v", err)
		} else {
			log.Printf("[CONTACT] Notification email sent for submission id=%d", sub.ID)
		}
	}()

	return nil
}

// List returns submissions for the admin dashboard, newest first
func (s *ContactService) List(ctx context.Context, skip, limit int, status string) ([]domain.ContactSubmission, error) {
	log.Printf("[CONTACT] List request: skip=%d, limit=%d, status=%s", skip, limit, status)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		if !validSubmissionStatuses[status] {
			return nil, NewBadRequestError("invalid status filter")
		}
		query = query.Where("status = ?", status)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query = query.Limit(limit)

	var subs []domain.ContactSubmission
	if err := query.Find(&subs).Error; err != nil {
		log.Printf("[CONTACT] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to fetch contact submissions: %w", err)
	}

	log.Printf("[CONTACT] List successful: returned %d submissions", len(subs))
	return subs, nil
}

// Get returns one submission by id
func (s *ContactService) Get(ctx context.Context, id uint) (*domain.ContactSubmission, error) {
	log.Printf("[CONTACT] Get request: id=%d", id)

	var sub domain.ContactSubmission
	if err := s.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("contact submission not found")
		}
		log.Printf("[CONTACT] Get failed: database error: %v", err)
		return nil, err
	}
	return &sub, nil
}

// UpdateStatus moves a submission between new/read/replied
func (s *ContactService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.ContactSubmission, error) {
	log.Printf("[CONTACT] UpdateStatus request: id=%d, status=%s", id, status)

	if !validSubmissionStatuses[status] {
		return nil, NewBadRequestError("status must be one of: new, read, replied")
	}

	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Status = status
	if err := s.db.WithContext(ctx).Save(sub).Error; err != nil {
		log.Printf("[CONTACT] UpdateStatus failed: database error: %v", err)
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	log.Printf("[CONTACT] UpdateStatus successful: id=%d, status=%s", sub.ID, sub.Status)
	return sub, nil
}

// Delete removes a submission (admin-side concern)
func (s *ContactService) Delete(ctx context.Context, id uint) error {
	log.Printf("[CONTACT] Delete request: id=%d", id)

	sub, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(sub).Error; err != nil {
		log.Printf("[CONTACT] Delete failed: database error: %v", err)
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	log.Printf("[CONTACT] Delete successful: id=%d", id)
	return nil
}
