package models

import (
	"time"

	"gorm.io/gorm"
)

// GalleryImage is a single image in the marketing gallery
type GalleryImage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"type:varchar(200)"`
	URL       string         `json:"url" gorm:"size:500;not null"`
	PublicID  string         `json:"public_id" gorm:"size:255"` // Cloudinary public id, needed for deletion
	Category  string         `json:"category" gorm:"type:varchar(100);default:'general'"`
	SortOrder int            `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the GalleryImage model
func (GalleryImage) TableName() string {
	return "gallery_images"
}
