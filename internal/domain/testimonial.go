package domain

import (
	"time"

	"gorm.io/gorm"
)

// Testimonial represents a client quote shown on the public site
type Testimonial struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Role      *string    `json:"role"`
	Quote     string     `gorm:"type:text;not null" json:"quote"`
	Rating    int        `gorm:"default:5" json:"rating"`
	Approved  bool       `gorm:"default:false;index" json:"approved"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// TableName specifies the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}

// BeforeCreate hook
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = time.Now()
	if t.Rating < 1 || t.Rating > 5 {
		t.Rating = 5
	}
	return nil
}

// BeforeUpdate hook
func (t *Testimonial) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	t.UpdatedAt = &now
	return nil
}
