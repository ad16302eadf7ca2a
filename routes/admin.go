package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
	"retreat-booking-server/utils"
)

// AdminLogin handles admin login. Admin accounts use the same credentials
// table but get their own endpoint so the back office can rate-limit and
// audit it separately.
func AdminLogin(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		var user models.User
		if err := database.DB.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&user).Error; err != nil {
			log.Printf("❌ Admin login failed for %s: %v", req.Email, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if !user.IsAdmin() {
			log.Printf("❌ Admin login attempt by non-admin user %d", user.ID)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin access required"})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
			return
		}

		if !user.HasPassword() || !jwtService.CheckPasswordHash(req.Password, *user.PasswordHash) {
			log.Printf("❌ Invalid password for admin user %d", user.ID)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		tokenPair, err := jwtService.GenerateTokenPair(&user, c.GetHeader("User-Agent"), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		log.Printf("✅ Admin user %d logged in", user.ID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"tokens":  tokenPair,
			"user": gin.H{
				"id":        user.ID,
				"full_name": user.FullName,
				"email":     user.Email,
				"role":      user.Role,
			},
		})
	}
}

// AdminRefreshToken refreshes the back office's access token
func AdminRefreshToken(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "tokens": tokenPair})
	}
}

// GetCurrentAdmin returns the authenticated admin's profile
func GetCurrentAdmin(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetDashboardStats returns the back-office overview numbers
func GetDashboardStats(c *gin.Context) {
	var totalUsers, totalServices, totalBookings, pendingReview int64
	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.Service{}).Count(&totalServices)
	database.DB.Model(&models.Booking{}).Count(&totalBookings)
	database.DB.Model(&models.Booking{}).
		Where("payment_status = ?", models.PaymentStatusPendingApproval).
		Count(&pendingReview)

	var confirmedRevenue float64
	database.DB.Model(&models.Booking{}).
		Where("status IN ?", []models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&confirmedRevenue)

	monthStart := time.Now().AddDate(0, 0, -30)
	var recentBookings int64
	database.DB.Model(&models.Booking{}).
		Where("created_at >= ?", monthStart).Count(&recentBookings)

	c.JSON(http.StatusOK, gin.H{
		"total_users":            totalUsers,
		"total_services":         totalServices,
		"total_bookings":         totalBookings,
		"pending_payment_review": pendingReview,
		"confirmed_revenue":      confirmedRevenue,
		"bookings_last_30_days":  recentBookings,
	})
}

// GetAllUsers lists users for the back office
func GetAllUsers(c *gin.Context) {
	var users []models.User
	query := database.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUserById returns one user with their bookings
func GetUserById(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.Preload("Bookings").Preload("Bookings.Service").
		First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUserStatus activates/deactivates an account or changes its role
func UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		IsActive *bool   `json:"is_active"`
		Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}
	if req.IsActive == nil && req.Role == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	admin := c.MustGet("user").(models.User)
	if admin.ID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify your own account here"})
		return
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated"})
}

// DeleteUser removes an account. Blocked while the user still has active
// bookings, and admins cannot delete themselves.
func DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	admin := c.MustGet("user").(models.User)
	if admin.ID == uint(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activeBookings int64
	database.DB.Model(&models.Booking{}).
		Where("user_id = ? AND status IN ?", user.ID,
			[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Count(&activeBookings)
	if activeBookings > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "User has active bookings",
			"message": "Cancel or complete the user's bookings first",
		})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	log.Printf("🗑️ User %d deleted by admin %d", user.ID, admin.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
