package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service represents a bookable retreat offering
type Service struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"type:varchar(200);not null"`
	Slug              string         `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Price             float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL          string         `json:"image_url" gorm:"type:varchar(255)"`
	IsBookable        bool           `json:"is_bookable" gorm:"default:true"`
	MaxCapacity       int            `json:"max_capacity" gorm:"default:10"`
	CurrentBookings   int            `json:"current_bookings" gorm:"default:0"`
	DepositPercentage int            `json:"deposit_percentage" gorm:"default:0;check:deposit_percentage >= 0 AND deposit_percentage <= 100"`
	Packages          datatypes.JSON `json:"packages,omitempty"`        // [{name, price, features[]}]
	Durations         datatypes.JSON `json:"durations,omitempty"`       // [3, 5, 7] day counts
	AvailableDates    datatypes.JSON `json:"available_dates,omitempty"` // ["2026-09-01", ...]
	TimeSlots         datatypes.JSON `json:"time_slots,omitempty"`      // ["09:00-12:00", ...]
	ValidFrom         *time.Time     `json:"valid_from"`
	ValidUntil        *time.Time     `json:"valid_until"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Schedules []ServiceSchedule `json:"schedules,omitempty" gorm:"foreignKey:ServiceID"`
	Bookings  []Booking         `json:"bookings,omitempty" gorm:"foreignKey:ServiceID"`
}

// ServiceSchedule represents a dated capacity slot for a service
type ServiceSchedule struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ServiceID       uint           `json:"service_id" gorm:"not null;uniqueIndex:idx_service_date_start"`
	Service         Service        `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Date            time.Time      `json:"date" gorm:"not null;uniqueIndex:idx_service_date_start"`
	StartTime       string         `json:"start_time" gorm:"type:varchar(10);not null;uniqueIndex:idx_service_date_start"`
	EndTime         string         `json:"end_time" gorm:"type:varchar(10);not null"`
	MaxCapacity     int            `json:"max_capacity" gorm:"not null"`
	CurrentBookings int            `json:"current_bookings" gorm:"default:0"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ServicePayload is the request structure for creating/updating services
type ServicePayload struct {
	Name              string         `json:"name" binding:"required,min=2,max=200"`
	Description       string         `json:"description"`
	Price             float64        `json:"price" binding:"required,gt=0"`
	ImageURL          string         `json:"image_url"`
	IsBookable        *bool          `json:"is_bookable"`
	MaxCapacity       int            `json:"max_capacity" binding:"omitempty,gt=0"`
	DepositPercentage int            `json:"deposit_percentage" binding:"omitempty,gte=0,lte=100"`
	Packages          datatypes.JSON `json:"packages"`
	Durations         datatypes.JSON `json:"durations"`
	AvailableDates    datatypes.JSON `json:"available_dates"`
	TimeSlots         datatypes.JSON `json:"time_slots"`
	ValidFrom         *time.Time     `json:"valid_from"`
	ValidUntil        *time.Time     `json:"valid_until"`
}

// SchedulePayload is the request structure for creating/updating schedule slots
type SchedulePayload struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"required,gt=0"`
	IsActive    *bool  `json:"is_active"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// TableName specifies the table name for the ServiceSchedule model
func (ServiceSchedule) TableName() string {
	return "service_schedules"
}

// SpotsLeft returns the remaining capacity on a schedule slot
func (s *ServiceSchedule) SpotsLeft() int {
	spots := s.MaxCapacity - s.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}
