package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
	"retreat-booking-server/utils"
)

// RegisterAdminServiceRoutes registers the back-office service catalog routes
func RegisterAdminServiceRoutes(router *gin.RouterGroup) {
	router.GET("", adminListServices)
	router.POST("", adminCreateService)
	router.PUT("/:id", adminUpdateService)
	router.DELETE("/:id", adminDeleteService)

	router.GET("/:id/schedules", adminListSchedules)
	router.POST("/:id/schedules", adminCreateSchedule)
	router.PUT("/:id/schedules/:scheduleId", adminUpdateSchedule)
	router.DELETE("/:id/schedules/:scheduleId", adminDeleteSchedule)
}

// adminListServices lists all services including non-bookable ones
func adminListServices(c *gin.Context) {
	var svcs []models.Service
	if err := database.DB.Preload("Schedules").
		Order("created_at DESC").Find(&svcs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

// serviceSlugTaken reports whether a slug is already used by another service
func serviceSlugTaken(slug string, excludeID uint) bool {
	var count int64
	query := database.DB.Model(&models.Service{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}

// adminCreateService creates a service with a de-duplicated slug
func adminCreateService(c *gin.Context) {
	var req models.ServicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	slug := utils.DedupeSlug(utils.Slugify(req.Name), func(s string) bool {
		return serviceSlugTaken(s, 0)
	})

	service := models.Service{
		Name:              req.Name,
		Slug:              slug,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          req.ImageURL,
		IsBookable:        true,
		MaxCapacity:       10,
		DepositPercentage: req.DepositPercentage,
		Packages:          req.Packages,
		Durations:         req.Durations,
		AvailableDates:    req.AvailableDates,
		TimeSlots:         req.TimeSlots,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
	}
	if req.IsBookable != nil {
		service.IsBookable = *req.IsBookable
	}
	if req.MaxCapacity > 0 {
		service.MaxCapacity = req.MaxCapacity
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	log.Printf("✅ Service %d (%s) created", service.ID, service.Slug)
	c.JSON(http.StatusCreated, gin.H{"success": true, "service": service})
}

// adminUpdateService updates a service. Renaming regenerates the slug.
func adminUpdateService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var req models.ServicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	if req.Name != service.Name {
		service.Slug = utils.DedupeSlug(utils.Slugify(req.Name), func(s string) bool {
			return serviceSlugTaken(s, service.ID)
		})
	}
	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.DepositPercentage = req.DepositPercentage
	service.Packages = req.Packages
	service.Durations = req.Durations
	service.AvailableDates = req.AvailableDates
	service.TimeSlots = req.TimeSlots
	service.ValidFrom = req.ValidFrom
	service.ValidUntil = req.ValidUntil
	if req.ImageURL != "" {
		service.ImageURL = req.ImageURL
	}
	if req.IsBookable != nil {
		service.IsBookable = *req.IsBookable
	}
	if req.MaxCapacity > 0 {
		service.MaxCapacity = req.MaxCapacity
	}

	if err := database.DB.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "service": service})
}

// adminDeleteService removes a service. Blocked while bookings other than
// cancelled/rejected ones still reference it.
func adminDeleteService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var liveBookings int64
	database.DB.Model(&models.Booking{}).
		Where("service_id = ? AND status NOT IN ?", service.ID,
			[]models.BookingStatus{models.BookingStatusCancelled, models.BookingStatusRejected}).
		Count(&liveBookings)
	if liveBookings > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Service has bookings",
			"message": "Cancel or complete the service's bookings before deleting it",
		})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	log.Printf("🗑️ Service %d (%s) deleted", service.ID, service.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted"})
}

// adminListSchedules lists a service's schedule slots, including inactive ones
func adminListSchedules(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var schedules []models.ServiceSchedule
	if err := database.DB.Where("service_id = ?", serviceID).
		Order("date, start_time").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// adminCreateSchedule adds a dated capacity slot to a service
func adminCreateSchedule(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var req models.SchedulePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	date, err := services.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "message": "Date must be YYYY-MM-DD"})
		return
	}

	schedule := models.ServiceSchedule{
		ServiceID:   service.ID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		IsActive:    true,
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A slot already exists for this date and start time"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "schedule": schedule})
}

// adminUpdateSchedule edits a slot. Capacity cannot drop below the bookings
// already taken on it.
func adminUpdateSchedule(c *gin.Context) {
	scheduleID, err := strconv.ParseUint(c.Param("scheduleId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	var schedule models.ServiceSchedule
	if err := database.DB.Where("service_id = ?", c.Param("id")).
		First(&schedule, scheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	var req models.SchedulePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	date, err := services.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "message": "Date must be YYYY-MM-DD"})
		return
	}

	if req.MaxCapacity < schedule.CurrentBookings {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Capacity too low",
			"message": "Capacity cannot be reduced below the current booking count",
		})
		return
	}

	schedule.Date = date
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.MaxCapacity = req.MaxCapacity
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A slot already exists for this date and start time"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "schedule": schedule})
}

// adminDeleteSchedule removes a slot unless bookings already sit on its date
func adminDeleteSchedule(c *gin.Context) {
	scheduleID, err := strconv.ParseUint(c.Param("scheduleId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	var schedule models.ServiceSchedule
	if err := database.DB.Where("service_id = ?", c.Param("id")).
		First(&schedule, scheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	var liveBookings int64
	database.DB.Model(&models.Booking{}).
		Where("service_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			schedule.ServiceID,
			[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
			schedule.Date, schedule.Date).
		Count(&liveBookings)
	if liveBookings > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Slot has bookings",
			"message": "Cancel the bookings on this date before deleting the slot",
		})
		return
	}

	if err := database.DB.Delete(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Schedule deleted"})
}
