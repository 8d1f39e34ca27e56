package domain

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost represents an article on the public blog
type BlogPost struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt   *string    `json:"excerpt"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Author    string     `gorm:"not null" json:"author"`
	ImageURL  *string    `json:"image_url"`
	Published bool       `gorm:"default:false;index" json:"published"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// TableName specifies the table name for BlogPost
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeCreate hook
func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	b.CreatedAt = time.Now()
	return nil
}

// BeforeUpdate hook
func (b *BlogPost) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	b.UpdatedAt = &now
	return nil
}
