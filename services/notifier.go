package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	ws "retreat-booking-server/websocket"
)

// Notifier fans a booking event out to the channels we have: an in-app
// Notification row, a best-effort email, and the admin websocket feed.
// Every channel is best-effort; a failed side effect never rolls back the
// status change that triggered it.
type Notifier struct {
	mailer *Mailer
	feed   *ws.Hub
}

// NewNotifier creates a new notifier
func NewNotifier(mailer *Mailer, feed *ws.Hub) *Notifier {
	return &Notifier{mailer: mailer, feed: feed}
}

// record persists the in-app notification, logging failures
func (n *Notifier) record(userID uint, title, body, kind string, data interface{}) {
	payload := ""
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			payload = string(raw)
		}
	}

	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   kind,
		Data:   payload,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("❌ Failed to store notification for user %d: %v", userID, err)
	}
}

// broadcast pushes an event onto the admin feed if the hub is wired
func (n *Notifier) broadcast(kind string, data interface{}) {
	if n.feed == nil {
		return
	}
	n.feed.Broadcast <- &ws.Message{
		Type:      kind,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// BookingCreated notifies the customer and the admin feed about a new booking
func (n *Notifier) BookingCreated(b *models.Booking) {
	title := "Booking received"
	body := fmt.Sprintf("Your booking %s is pending. Upload your payment proof to continue.", b.ReferenceCode)
	n.record(b.UserID, title, body, "booking_created", map[string]interface{}{"booking_id": b.ID})

	if b.User.Email != "" {
		n.mailer.SendBookingStatusUpdate(b.User.Email, b.ReferenceCode, b.Service.Name, string(b.Status))
	}

	n.broadcast("booking_created", map[string]interface{}{
		"booking_id":     b.ID,
		"reference_code": b.ReferenceCode,
		"service_id":     b.ServiceID,
		"start_date":     b.StartDate,
		"end_date":       b.EndDate,
		"total_amount":   b.TotalAmount,
	})
}

// BookingStatusChanged notifies the customer about any status transition
func (n *Notifier) BookingStatusChanged(b *models.Booking) {
	kind := "booking_" + string(b.Status)
	title := fmt.Sprintf("Booking %s", b.Status)
	body := fmt.Sprintf("Your booking %s is now %s.", b.ReferenceCode, b.Status)
	n.record(b.UserID, title, body, kind, map[string]interface{}{"booking_id": b.ID})

	if b.User.Email != "" {
		n.mailer.SendBookingStatusUpdate(b.User.Email, b.ReferenceCode, b.Service.Name, string(b.Status))
	}

	n.broadcast(kind, map[string]interface{}{
		"booking_id":     b.ID,
		"reference_code": b.ReferenceCode,
		"status":         b.Status,
	})
}

// PaymentProofSubmitted alerts admins that a proof awaits review
func (n *Notifier) PaymentProofSubmitted(b *models.Booking) {
	n.record(b.UserID, "Payment proof received",
		fmt.Sprintf("We received your payment proof for booking %s. An administrator will review it shortly.", b.ReferenceCode),
		"payment_received", map[string]interface{}{"booking_id": b.ID})

	n.broadcast("payment_proof_submitted", map[string]interface{}{
		"booking_id":     b.ID,
		"reference_code": b.ReferenceCode,
		"deposit_amount": b.DepositAmount,
	})
}

// PaymentReviewed notifies the customer of the admin's decision
func (n *Notifier) PaymentReviewed(b *models.Booking, approved bool) {
	kind := "payment_approved"
	title := "Payment approved"
	body := fmt.Sprintf("Your payment for booking %s was approved. See you at the retreat!", b.ReferenceCode)
	if !approved {
		kind = "payment_rejected"
		title = "Payment rejected"
		body = fmt.Sprintf("Your payment proof for booking %s was rejected. Please upload a new one or contact us.", b.ReferenceCode)
	}
	n.record(b.UserID, title, body, kind, map[string]interface{}{"booking_id": b.ID})

	if b.User.Email != "" {
		n.mailer.SendBookingStatusUpdate(b.User.Email, b.ReferenceCode, b.Service.Name, string(b.Status))
	}

	n.broadcast(kind, map[string]interface{}{
		"booking_id":     b.ID,
		"reference_code": b.ReferenceCode,
		"approved":       approved,
	})
}
