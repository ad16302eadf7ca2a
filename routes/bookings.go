package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
	"retreat-booking-server/utils"
)

// RegisterBookingRoutes registers the customer booking routes (protected)
func RegisterBookingRoutes(router *gin.RouterGroup, bookingService *services.BookingService) {
	router.POST("", func(c *gin.Context) { createBooking(c, bookingService) })
	router.GET("", listMyBookings)
	router.GET("/:id", getMyBooking)
	router.POST("/:id/cancel", func(c *gin.Context) { cancelBooking(c, bookingService) })
	router.POST("/:id/payment-proof", func(c *gin.Context) { uploadPaymentProof(c, bookingService) })
}

// createBooking admits a new booking behind the availability check
func createBooking(c *gin.Context, bookingService *services.BookingService) {
	userID := c.GetUint("user_id")

	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	booking, err := bookingService.Create(userID, &req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created. Upload your payment proof to continue.",
		"booking": booking,
	})
}

// listMyBookings returns the authenticated user's bookings
func listMyBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	var bookings []models.Booking
	if err := database.DB.Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// getMyBooking returns one booking, ownership-checked
func getMyBooking(c *gin.Context) {
	userID := c.GetUint("user_id")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("Payments").
		First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if booking.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// cancelBooking cancels the user's own booking
func cancelBooking(c *gin.Context, bookingService *services.BookingService) {
	userID := c.GetUint("user_id")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := bookingService.Cancel(userID, uint(bookingID))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled", "booking": booking})
}

// uploadPaymentProof stores the proof image and queues it for admin review
func uploadPaymentProof(c *gin.Context, bookingService *services.BookingService) {
	userID := c.GetUint("user_id")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	header, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file", "message": "A proof file is required"})
		return
	}

	if !utils.ValidateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file", "message": "Proof must be a jpg/png/webp/pdf up to 5MB"})
		return
	}

	upload, err := utils.UploadImage(c.Request.Context(), header, "payment_proofs")
	if err != nil {
		log.Printf("❌ Payment proof upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "message": "Could not store the payment proof"})
		return
	}

	method := c.DefaultPostForm("method", "bank_transfer")
	booking, err := bookingService.AttachPaymentProof(userID, uint(bookingID), upload.URL, method)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment proof submitted for review",
		"booking": booking,
	})
}

// respondBookingError maps service errors onto HTTP statuses
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound), errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, services.ErrNotBookable),
		errors.Is(err, services.ErrDateConflict),
		errors.Is(err, services.ErrInsufficientCapacity),
		errors.Is(err, services.ErrOutsideValidity),
		errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Booking operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
