package domain

import (
	"time"

	"gorm.io/gorm"
)

// ContactSubmission represents a lead captured by the inquiry form. The
// message field carries the flattened property-type/budget/location/free-text
// segments assembled at submission time.
type ContactSubmission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Email         string     `gorm:"not null;index" json:"email"`
	Phone         string     `gorm:"not null;index" json:"phone"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	PhoneVerified bool       `gorm:"default:false" json:"phone_verified"`
	Status        string     `gorm:"default:'new'" json:"status"` // new, read, replied
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// TableName specifies the table name for ContactSubmission
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

// BeforeCreate hook
func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = "new"
	}
	return nil
}

// BeforeUpdate hook
func (c *ContactSubmission) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	c.UpdatedAt = &now
	return nil
}
