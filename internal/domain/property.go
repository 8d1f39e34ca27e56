package domain

import (
	"time"

	"gorm.io/gorm"
)

// Property represents a listing shown on the public site
type Property struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"not null;index" json:"type"` // residential, commercial, plot
	Price       *string    `json:"price"`
	Location    string     `gorm:"index" json:"location"`
	Bedrooms    *int       `json:"bedrooms"`
	Bathrooms   *int       `json:"bathrooms"`
	AreaSqft    *int       `json:"area_sqft"`
	ImageURL    *string    `json:"image_url"`
	Featured    bool       `gorm:"default:false" json:"featured"`
	Status      string     `gorm:"default:'available'" json:"status"` // available, sold, withdrawn
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate hook
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	if p.Status == "" {
		p.Status = "available"
	}
	return nil
}

// BeforeUpdate hook
func (p *Property) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}
