package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotOwner          = errors.New("booking does not belong to this user")
	ErrInvalidInput      = errors.New("invalid booking input")
)

// BookingService owns the booking lifecycle: creation behind the availability
// check, the status workflow, and payment review.
type BookingService struct {
	notifier *Notifier
}

// NewBookingService creates a new booking service
func NewBookingService(notifier *Notifier) *BookingService {
	return &BookingService{notifier: notifier}
}

// ParseDay parses a YYYY-MM-DD date at the UTC day boundary
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Create admits a new booking. The availability check and the insert run in
// one transaction with the service row locked FOR UPDATE, so two racing
// requests for the same dates serialize instead of both succeeding.
func (bs *BookingService) Create(userID uint, req *models.BookingCreate) (*models.Booking, error) {
	start, err := ParseDay(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := ParseDay(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}

	people := req.NumberOfPeople
	if people <= 0 {
		people = 1
	}
	duration := req.Duration
	if duration <= 0 {
		duration = int(end.Sub(start).Hours()/24) + 1
	}

	var booking *models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&service, req.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		if err := checkRangeForService(tx, &service, start, end); err != nil {
			return err
		}

		if people > SpotsLeft(service.MaxCapacity, service.CurrentBookings) {
			return ErrInsufficientCapacity
		}

		// Slot-level capacity: every active slot in the range must have room
		var slots []models.ServiceSchedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("service_id = ? AND is_active = ? AND date BETWEEN ? AND ?", service.ID, true, start, end).
			Find(&slots).Error; err != nil {
			return err
		}
		if full := firstFullSlot(slots, people); full != nil {
			return fmt.Errorf("%w: only %d spot(s) left on %s", ErrInsufficientCapacity,
				full.SpotsLeft(), full.Date.Format("2006-01-02"))
		}

		deposit := resolveDeposit(req.DepositAmount, req.TotalAmount, service.DepositPercentage)

		booking = &models.Booking{
			ReferenceCode:  fmt.Sprintf("BK-%s", uuid.NewString()[:8]),
			UserID:         userID,
			ServiceID:      service.ID,
			StartDate:      start,
			EndDate:        end,
			Duration:       duration,
			NumberOfPeople: people,
			TotalAmount:    req.TotalAmount,
			DepositAmount:  deposit,
			PackageName:    req.PackageName,
			PackagePrice:   req.PackagePrice,
			Notes:          req.Notes,
			Status:         models.BookingStatusPending,
			PaymentStatus:  models.PaymentStatusPending,
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		// Denormalized counters, kept in the same tx as the insert
		if err := tx.Model(&service).
			Update("current_bookings", gorm.Expr("current_bookings + ?", people)).Error; err != nil {
			return err
		}
		if len(slots) > 0 {
			ids := make([]uint, len(slots))
			for i, s := range slots {
				ids[i] = s.ID
			}
			if err := tx.Model(&models.ServiceSchedule{}).Where("id IN ?", ids).
				Update("current_bookings", gorm.Expr("current_bookings + ?", people)).Error; err != nil {
				return err
			}
		}

		booking.User = user
		booking.Service = service
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %s created for user %d on service %d", booking.ReferenceCode, userID, req.ServiceID)
	bs.notifier.BookingCreated(booking)
	return booking, nil
}

// resolveDeposit keeps a client-supplied deposit when it matches the
// percentage math within one currency unit, otherwise recomputes it
func resolveDeposit(supplied *float64, total float64, pct int) float64 {
	computed := ComputeDeposit(total, pct)
	if supplied != nil && math.Abs(*supplied-computed) <= 1 {
		return *supplied
	}
	return computed
}

// Transition moves a booking to a new status after validating the change
// against the allowed-transitions table. Capacity counters are released when
// the booking leaves the active set.
func (bs *BookingService) Transition(bookingID uint, to models.BookingStatus) (*models.Booking, error) {
	if !models.IsValidBookingStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, to)
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("User").Preload("Service").
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		return bs.transitionLocked(tx, &booking, to)
	})
	if err != nil {
		return nil, err
	}

	bs.notifier.BookingStatusChanged(&booking)
	return &booking, nil
}

// transitionLocked applies a validated status change inside an open tx that
// already holds the booking row lock
func (bs *BookingService) transitionLocked(tx *gorm.DB, booking *models.Booking, to models.BookingStatus) error {
	if !models.CanTransition(booking.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, to)
	}

	wasActive := booking.IsActive()
	booking.Status = to
	if err := tx.Model(booking).Update("status", to).Error; err != nil {
		return err
	}

	// Leaving the active set frees the held spots, on the service and on
	// every slot the booking's range covered
	if wasActive && !booking.IsActive() {
		if err := tx.Model(&models.Service{}).
			Where("id = ? AND current_bookings >= ?", booking.ServiceID, booking.NumberOfPeople).
			Update("current_bookings", gorm.Expr("current_bookings - ?", booking.NumberOfPeople)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ServiceSchedule{}).
			Where("service_id = ? AND is_active = ? AND date BETWEEN ? AND ? AND current_bookings >= ?",
				booking.ServiceID, true, booking.StartDate, booking.EndDate, booking.NumberOfPeople).
			Update("current_bookings", gorm.Expr("current_bookings - ?", booking.NumberOfPeople)).Error; err != nil {
			return err
		}
	}

	log.Printf("🔄 Booking %s status -> %s", booking.ReferenceCode, to)
	return nil
}

// Cancel cancels a booking on behalf of its owner
func (bs *BookingService) Cancel(userID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("User").Preload("Service").
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return ErrNotOwner
		}
		return bs.transitionLocked(tx, &booking, models.BookingStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	bs.notifier.BookingStatusChanged(&booking)
	return &booking, nil
}

// AttachPaymentProof records an uploaded payment proof and moves the payment
// status to PENDING_APPROVAL for admin review
func (bs *BookingService) AttachPaymentProof(userID, bookingID uint, proofURL, method string) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("Service").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return ErrNotOwner
		}
		if !models.CanTransitionPayment(booking.PaymentStatus, models.PaymentStatusPendingApproval) {
			return fmt.Errorf("%w: payment %s -> %s", ErrIllegalTransition,
				booking.PaymentStatus, models.PaymentStatusPendingApproval)
		}

		payment := models.Payment{
			BookingID: booking.ID,
			Amount:    booking.DepositAmount,
			Method:    method,
			ProofURL:  proofURL,
			Status:    models.PaymentStatusPendingApproval,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		booking.PaymentStatus = models.PaymentStatusPendingApproval
		booking.PaymentProofURL = &proofURL
		return tx.Model(&booking).Updates(map[string]interface{}{
			"payment_status":    models.PaymentStatusPendingApproval,
			"payment_proof_url": proofURL,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	bs.notifier.PaymentProofSubmitted(&booking)
	return &booking, nil
}

// ReviewPayment applies an admin's decision on a submitted payment proof.
// Approval confirms both the payment and the booking; rejection rejects both.
func (bs *BookingService) ReviewPayment(adminID, bookingID uint, approved bool) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("User").Preload("Service").
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		paymentTo := models.PaymentStatusConfirmed
		bookingTo := models.BookingStatusConfirmed
		if !approved {
			paymentTo = models.PaymentStatusRejected
			bookingTo = models.BookingStatusRejected
		}

		if !models.CanTransitionPayment(booking.PaymentStatus, paymentTo) {
			return fmt.Errorf("%w: payment %s -> %s", ErrIllegalTransition, booking.PaymentStatus, paymentTo)
		}
		if err := bs.transitionLocked(tx, &booking, bookingTo); err != nil {
			return err
		}

		booking.PaymentStatus = paymentTo
		if err := tx.Model(&booking).Update("payment_status", paymentTo).Error; err != nil {
			return err
		}

		// Mirror the decision onto the latest payment record
		now := time.Now()
		return tx.Model(&models.Payment{}).
			Where("booking_id = ? AND status = ?", booking.ID, models.PaymentStatusPendingApproval).
			Updates(map[string]interface{}{
				"status":      paymentTo,
				"reviewed_by": adminID,
				"reviewed_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	bs.notifier.PaymentReviewed(&booking, approved)
	return &booking, nil
}

// CompletePastBookings marks confirmed bookings whose end date has passed as
// completed. Called by the background completion job.
func (bs *BookingService) CompletePastBookings() (int, error) {
	var due []models.Booking
	if err := database.DB.
		Preload("User").Preload("Service").
		Where("status = ? AND end_date < ?", models.BookingStatusConfirmed, time.Now()).
		Find(&due).Error; err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		b := &due[i]
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			return bs.transitionLocked(tx, b, models.BookingStatusCompleted)
		})
		if err != nil {
			log.Printf("❌ Failed to complete booking %s: %v", b.ReferenceCode, err)
			continue
		}
		bs.notifier.BookingStatusChanged(b)
		completed++
	}
	return completed, nil
}
