package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog represents a marketing blog post. Slugs are unique and de-duplicated
// with a numeric suffix on collision.
type Blog struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"type:varchar(255);not null"`
	Slug          string         `json:"slug" gorm:"type:varchar(280);uniqueIndex;not null"`
	Excerpt       string         `json:"excerpt" gorm:"type:varchar(500)"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	CoverImageURL string         `json:"cover_image_url" gorm:"size:500"`
	Published     bool           `json:"published" gorm:"default:false"`
	PublishedAt   *time.Time     `json:"published_at"`
	AuthorID      uint           `json:"author_id" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BlogPayload is the request structure for creating/updating blog posts
type BlogPayload struct {
	Title         string `json:"title" binding:"required,min=2,max=255"`
	Excerpt       string `json:"excerpt" binding:"omitempty,max=500"`
	Content       string `json:"content" binding:"required"`
	CoverImageURL string `json:"cover_image_url"`
	Published     *bool  `json:"published"`
}

// TableName specifies the table name for the Blog model
func (Blog) TableName() string {
	return "blogs"
}
