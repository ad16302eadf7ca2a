package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
)

// RegisterAdminBookingRoutes registers the back-office booking routes
func RegisterAdminBookingRoutes(router *gin.RouterGroup, bookingService *services.BookingService) {
	router.GET("", adminListBookings)
	router.GET("/:id", adminGetBooking)
	router.PUT("/:id", func(c *gin.Context) { adminUpdateBookingStatus(c, bookingService) })
	router.PUT("/:id/payment", func(c *gin.Context) { adminReviewPayment(c, bookingService) })
}

// adminListBookings lists all bookings with optional status filters
func adminListBookings(c *gin.Context) {
	query := database.DB.Preload("User").Preload("Service").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !models.IsValidBookingStatus(models.BookingStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking status"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		query = query.Where("service_id = ?", serviceID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// adminGetBooking returns one booking with its payment history
func adminGetBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.Preload("User").Preload("Service").Preload("Payments").
		First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// adminUpdateBookingStatus moves a booking through its workflow. Transitions
// outside the allowed table are rejected with 400.
func adminUpdateBookingStatus(c *gin.Context, bookingService *services.BookingService) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	booking, err := bookingService.Transition(uint(bookingID), req.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated",
		"booking": booking,
	})
}

// adminReviewPayment approves or rejects a submitted payment proof
func adminReviewPayment(c *gin.Context, bookingService *services.BookingService) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req struct {
		Approved *bool  `json:"approved" binding:"required"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	adminID := c.GetUint("user_id")
	booking, err := bookingService.ReviewPayment(adminID, uint(bookingID), *req.Approved)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	message := "Payment approved, booking confirmed"
	if !*req.Approved {
		message = "Payment rejected"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "booking": booking})
}
