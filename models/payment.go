package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is a manual payment-proof record attached to a booking. The proof
// image is uploaded by the customer and reviewed by an admin.
type Payment struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BookingID  uint           `json:"booking_id" gorm:"not null;index"`
	Amount     float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method     string         `json:"method" gorm:"type:varchar(50);default:'bank_transfer'"`
	ProofURL   string         `json:"proof_url" gorm:"size:500;not null"`
	Status     PaymentStatus  `json:"status" gorm:"type:varchar(20);default:'PENDING_APPROVAL'"`
	ReviewedBy *uint          `json:"reviewed_by"`
	ReviewedAt *time.Time     `json:"reviewed_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Booking  Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Reviewer *User   `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
