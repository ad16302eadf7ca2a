package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
)

// RegisterServiceRoutes registers the public service catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", listServices)
	router.GET("/:id", getService)
	router.GET("/slug/:slug", getServiceBySlug)
	router.GET("/:id/availability", getServiceAvailability)
	router.POST("/:id/availability", checkServiceAvailability)
}

// listServices returns all bookable services
func listServices(c *gin.Context) {
	var svcs []models.Service
	if err := database.DB.Where("is_bookable = ?", true).
		Order("created_at DESC").Find(&svcs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

// getService returns a specific service by ID
func getService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.Preload("Schedules", "is_active = ?", true).
		First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}

// getServiceBySlug returns a specific service by its slug
func getServiceBySlug(c *gin.Context) {
	var service models.Service
	if err := database.DB.Preload("Schedules", "is_active = ?", true).
		Where("slug = ?", c.Param("slug")).First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}

// getServiceAvailability returns per-schedule availability and aggregate spots
func getServiceAvailability(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	schedules, total, err := services.ListScheduleAvailability(uint(serviceID))
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedules":   schedules,
		"total_spots": total,
	})
}

// checkServiceAvailability answers a single-day capacity query
func checkServiceAvailability(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	date, err := services.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "message": "Date must be YYYY-MM-DD"})
		return
	}

	result, err := services.CheckDayAvailability(uint(serviceID), date, req.NumberOfPeople)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, result)
}
