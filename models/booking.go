package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

type PaymentStatus string

const (
	PaymentStatusPending         PaymentStatus = "PENDING"
	PaymentStatusPendingApproval PaymentStatus = "PENDING_APPROVAL"
	PaymentStatusConfirmed       PaymentStatus = "CONFIRMED"
	PaymentStatusRejected        PaymentStatus = "REJECTED"
)

// bookingTransitions is the allowed-transitions table for booking status.
// Every status write goes through CanTransition; illegal transitions (e.g.
// reviving a CANCELLED booking) are rejected centrally.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
	BookingStatusRejected:  {},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:         {PaymentStatusPendingApproval, PaymentStatusRejected},
	PaymentStatusPendingApproval: {PaymentStatusConfirmed, PaymentStatusRejected},
	PaymentStatusConfirmed:       {},
	PaymentStatusRejected:        {PaymentStatusPendingApproval}, // re-upload after rejection
}

// CanTransition reports whether a booking status change is legal
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether a payment status change is legal
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidBookingStatus checks the status against the known vocabulary
func IsValidBookingStatus(s BookingStatus) bool {
	_, ok := bookingTransitions[s]
	return ok
}

type Booking struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	ReferenceCode   string        `json:"reference_code" gorm:"size:40;uniqueIndex;not null"`
	UserID          uint          `json:"user_id" gorm:"not null;index"`
	ServiceID       uint          `json:"service_id" gorm:"not null;index"`
	StartDate       time.Time     `json:"start_date" gorm:"not null"`
	EndDate         time.Time     `json:"end_date" gorm:"not null"`
	Duration        int           `json:"duration" gorm:"not null"` // days
	NumberOfPeople  int           `json:"number_of_people" gorm:"default:1"`
	TotalAmount     float64       `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	DepositAmount   float64       `json:"deposit_amount" gorm:"type:decimal(10,2)"`
	PackageName     *string       `json:"package_name" gorm:"size:200"`
	PackagePrice    *float64      `json:"package_price" gorm:"type:decimal(10,2)"`
	Status          BookingStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';check:status IN ('PENDING','CONFIRMED','CANCELLED','COMPLETED','REJECTED')"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'PENDING';check:payment_status IN ('PENDING','PENDING_APPROVAL','CONFIRMED','REJECTED')"`
	PaymentProofURL *string       `json:"payment_proof_url" gorm:"size:500"`
	Notes           *string       `json:"notes" gorm:"size:1000"`
	CreatedAt       time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Service  Service   `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsActive reports whether the booking still holds capacity
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// BookingCreate is the request structure for creating a booking
type BookingCreate struct {
	ServiceID      uint     `json:"service_id" binding:"required"`
	StartDate      string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate        string   `json:"end_date" binding:"required"`
	Duration       int      `json:"duration" binding:"omitempty,gt=0"`
	NumberOfPeople int      `json:"number_of_people" binding:"omitempty,gt=0"`
	TotalAmount    float64  `json:"total_amount" binding:"required,gt=0"`
	DepositAmount  *float64 `json:"deposit_amount"`
	PackageName    *string  `json:"package_name"`
	PackagePrice   *float64 `json:"package_price"`
	Notes          *string  `json:"notes"`
}

// AvailabilityRequest is the request structure for single-day capacity queries
type AvailabilityRequest struct {
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	NumberOfPeople int    `json:"number_of_people" binding:"omitempty,gt=0"`
}

// AvailabilityResponse reports whether a request can be admitted
type AvailabilityResponse struct {
	Available      bool   `json:"available"`
	AvailableSpots int    `json:"available_spots"`
	Message        string `json:"message,omitempty"`
}
