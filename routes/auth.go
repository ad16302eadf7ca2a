package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retreat-booking-server/database"
	"retreat-booking-server/middleware"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
	"retreat-booking-server/utils"
)

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup, jwtService *services.JWTService, mailer *services.Mailer) {
	// Sign up endpoint
	router.POST("/signup", func(c *gin.Context) {
		var req struct {
			FullName        string `json:"full_name" binding:"required,min=2,max=100"`
			Email           string `json:"email" binding:"required"`
			Password        string `json:"password" binding:"required,min=8,max=128"`
			ConfirmPassword string `json:"confirm_password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		req.FullName = middleware.SanitizeInput(req.FullName)
		req.Email = utils.NormalizeEmail(req.Email)

		if !utils.ValidateEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid email",
				"message": "Please provide a valid email address",
			})
			return
		}

		isStrong, errs := middleware.ValidatePasswordStrength(req.Password)
		if !isStrong {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Weak password",
				"message": "Password does not meet security requirements",
				"details": errs,
			})
			return
		}

		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Password mismatch",
				"message": "Passwords do not match",
			})
			return
		}

		var existingUser models.User
		if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "User already exists",
				"message": "An account with this email already exists",
			})
			return
		}

		hashedPassword, err := jwtService.HashPassword(req.Password)
		if err != nil {
			log.Printf("❌ Password hashing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to process password",
			})
			return
		}

		user := models.User{
			FullName:     req.FullName,
			Email:        req.Email,
			PasswordHash: &hashedPassword,
			Role:         models.RoleUser,
			IsActive:     true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("❌ User creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to create account",
			})
			return
		}

		token := issueVerificationToken(req.Email)
		if token != "" {
			mailer.SendVerificationEmail(req.Email, token)
		}

		log.Printf("✅ User created successfully: %d", user.ID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Account created. Please check your email to verify your address.",
			"data": gin.H{
				"user": gin.H{
					"id":        user.ID,
					"full_name": user.FullName,
					"email":     user.Email,
					"role":      user.Role,
				},
			},
		})
	})

	// Email verification endpoint
	router.POST("/verify-email", func(c *gin.Context) {
		var req struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		var vt models.VerificationToken
		if err := database.DB.Where("token = ?", req.Token).First(&vt).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Invalid token",
				"message": "Verification token not found",
			})
			return
		}

		if vt.IsExpired() {
			database.DB.Delete(&vt)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Token expired",
				"message": "The verification link has expired. Please request a new one.",
			})
			return
		}

		now := time.Now()
		if err := database.DB.Model(&models.User{}).
			Where("email = ?", vt.Email).
			Update("email_verified_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to verify email"})
			return
		}
		database.DB.Delete(&vt)

		log.Printf("✅ Email verified: %s", vt.Email)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
	})

	// Resend verification email
	router.POST("/resend-verification", func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		email := utils.NormalizeEmail(req.Email)
		var user models.User
		if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil && !user.IsVerified() {
			if token := issueVerificationToken(email); token != "" {
				mailer.SendVerificationEmail(email, token)
			}
		}

		// Same response whether the account exists or not
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the account exists, a verification email was sent"})
	})

	// Sign in endpoint (two-step when 2FA is enabled)
	router.POST("/signin", func(c *gin.Context) {
		var req struct {
			Email         string `json:"email" binding:"required"`
			Password      string `json:"password" binding:"required"`
			TwoFactorCode string `json:"two_factor_code"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		email := utils.NormalizeEmail(req.Email)

		var user models.User
		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Account deactivated",
				"message": "Your account has been deactivated",
			})
			return
		}

		if !user.HasPassword() || !jwtService.CheckPasswordHash(req.Password, *user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}

		if !user.IsVerified() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Email not verified",
				"message": "Please verify your email address before signing in",
			})
			return
		}

		if user.TwoFactorEnabled {
			if req.TwoFactorCode == "" {
				sendTwoFactorChallenge(email, mailer)
				c.JSON(http.StatusOK, gin.H{
					"success":             true,
					"two_factor_required": true,
					"message":             "A login code was sent to your email",
				})
				return
			}
			if !consumeTwoFactorCode(email, req.TwoFactorCode) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid code",
					"message": "The login code is invalid or expired",
				})
				return
			}
		}

		tokenPair, err := jwtService.GenerateTokenPair(&user, c.GetHeader("User-Agent"), c.ClientIP())
		if err != nil {
			log.Printf("❌ Token generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to generate authentication tokens",
			})
			return
		}

		log.Printf("✅ User %d signed in", user.ID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Signed in successfully",
			"data": gin.H{
				"user": gin.H{
					"id":                 user.ID,
					"full_name":          user.FullName,
					"email":              user.Email,
					"role":               user.Role,
					"two_factor_enabled": user.TwoFactorEnabled,
				},
				"tokens": tokenPair,
			},
		})
	})

	// Token refresh endpoint
	router.POST("/refresh", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid refresh token",
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"tokens": tokenPair}})
	})

	// Logout endpoint
	router.POST("/logout", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid refresh token", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	})

	// Password reset request
	router.POST("/forgot-password", func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		email := utils.NormalizeEmail(req.Email)
		var user models.User
		if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil && user.HasPassword() {
			token := uuid.NewString()
			database.DB.Where("email = ?", email).Delete(&models.PasswordResetToken{})
			reset := models.PasswordResetToken{
				Email:     email,
				Token:     token,
				ExpiresAt: time.Now().Add(time.Hour),
			}
			if err := database.DB.Create(&reset).Error; err == nil {
				mailer.SendPasswordReset(email, token)
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the account exists, a reset email was sent"})
	})

	// Password reset confirmation
	router.POST("/reset-password", func(c *gin.Context) {
		var req struct {
			Token    string `json:"token" binding:"required"`
			Password string `json:"password" binding:"required,min=8,max=128"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		isStrong, errs := middleware.ValidatePasswordStrength(req.Password)
		if !isStrong {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Weak password",
				"message": "Password does not meet security requirements",
				"details": errs,
			})
			return
		}

		var reset models.PasswordResetToken
		if err := database.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid token", "message": "Reset token not found"})
			return
		}
		if reset.IsExpired() {
			database.DB.Delete(&reset)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token expired", "message": "The reset link has expired"})
			return
		}

		hashed, err := jwtService.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to process password"})
			return
		}

		var user models.User
		if err := database.DB.Where("email = ?", reset.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "message": "No account for this token"})
			return
		}

		database.DB.Model(&user).Update("password_hash", hashed)
		database.DB.Delete(&reset)
		jwtService.RevokeAllUserTokens(user.ID)

		log.Printf("✅ Password reset for user %d", user.ID)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated. Please sign in again."})
	})
}

// RegisterAccountRoutes registers routes that require authentication
func RegisterAccountRoutes(router *gin.RouterGroup, mailer *services.Mailer) {
	// Current user
	router.GET("/me", func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"user": user})
	})

	// Toggle email two-factor
	router.POST("/me/two-factor", func(c *gin.Context) {
		user := c.MustGet("user").(models.User)

		var req struct {
			Enabled *bool `json:"enabled" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
			return
		}

		if err := database.DB.Model(&user).Update("two_factor_enabled", *req.Enabled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to update settings"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "two_factor_enabled": *req.Enabled})
	})

	// Notifications
	router.GET("/notifications", func(c *gin.Context) {
		userID := c.GetUint("user_id")
		var notifications []models.Notification
		if err := database.DB.Where("user_id = ?", userID).
			Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	})

	router.POST("/notifications/:id/read", func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if err := database.DB.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}

// issueVerificationToken replaces any live token for the email and returns
// the new token value, or "" on storage failure
func issueVerificationToken(email string) string {
	token := uuid.NewString()
	database.DB.Where("email = ?", email).Delete(&models.VerificationToken{})
	vt := models.VerificationToken{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := database.DB.Create(&vt).Error; err != nil {
		log.Printf("❌ Failed to store verification token: %v", err)
		return ""
	}
	return token
}

// sendTwoFactorChallenge issues and emails a fresh 6-digit code
func sendTwoFactorChallenge(email string, mailer *services.Mailer) {
	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		log.Printf("❌ Failed to generate 2FA code: %v", err)
		return
	}

	database.DB.Where("email = ?", email).Delete(&models.TwoFactorToken{})
	token := models.TwoFactorToken{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := database.DB.Create(&token).Error; err != nil {
		log.Printf("❌ Failed to store 2FA code: %v", err)
		return
	}

	mailer.SendTwoFactorCode(email, code)
}

// consumeTwoFactorCode validates and burns the code for the email
func consumeTwoFactorCode(email, code string) bool {
	var token models.TwoFactorToken
	if err := database.DB.Where("email = ?", email).First(&token).Error; err != nil {
		return false
	}

	if token.IsExpired() {
		database.DB.Delete(&token)
		return false
	}
	if token.Code != code {
		return false
	}

	database.DB.Delete(&token)
	return true
}
