package jobs

import (
	"log"
	"time"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
)

// CompletionJob walks confirmed bookings whose end date has passed and marks
// them completed, and sweeps expired auth tokens while it is at it.
type CompletionJob struct {
	bookingService *services.BookingService
	jwtService     *services.JWTService
	interval       time.Duration
	stopChan       chan bool
}

// NewCompletionJob creates a new completion job
func NewCompletionJob(bookingService *services.BookingService, jwtService *services.JWTService) *CompletionJob {
	return &CompletionJob{
		bookingService: bookingService,
		jwtService:     jwtService,
		interval:       1 * time.Hour,
		stopChan:       make(chan bool),
	}
}

// Start begins the background job
func (j *CompletionJob) Start() {
	log.Printf("🔄 Booking completion job started (interval: %v)", j.interval)

	go func() {
		// Run once at startup, then on the ticker
		j.run()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.run()
			case <-j.stopChan:
				log.Println("🛑 Booking completion job stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (j *CompletionJob) Stop() {
	j.stopChan <- true
}

func (j *CompletionJob) run() {
	completed, err := j.bookingService.CompletePastBookings()
	if err != nil {
		log.Printf("❌ Completion sweep failed: %v", err)
	} else if completed > 0 {
		log.Printf("✅ Marked %d booking(s) as completed", completed)
	}

	j.sweepExpiredTokens()
}

// sweepExpiredTokens deletes verification, 2FA and password-reset tokens past
// their expiry, plus expired refresh tokens
func (j *CompletionJob) sweepExpiredTokens() {
	now := time.Now()

	if err := database.DB.Where("expires_at < ?", now).
		Delete(&models.VerificationToken{}).Error; err != nil {
		log.Printf("❌ Failed to sweep verification tokens: %v", err)
	}
	if err := database.DB.Where("expires_at < ?", now).
		Delete(&models.TwoFactorToken{}).Error; err != nil {
		log.Printf("❌ Failed to sweep 2FA tokens: %v", err)
	}
	if err := database.DB.Where("expires_at < ?", now).
		Delete(&models.PasswordResetToken{}).Error; err != nil {
		log.Printf("❌ Failed to sweep password reset tokens: %v", err)
	}
	if err := j.jwtService.CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Failed to sweep refresh tokens: %v", err)
	}
}
