package routes

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"retreat-booking-server/config"
	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
	"retreat-booking-server/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

func googleOAuthConfig() *oauth2.Config {
	cfg := config.AppConfig.OAuth
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// RegisterOAuthRoutes registers Google OAuth sign-in routes
func RegisterOAuthRoutes(router *gin.RouterGroup, jwtService *services.JWTService) {
	// Redirect to Google's consent screen
	router.GET("/google", func(c *gin.Context) {
		if config.AppConfig.OAuth.GoogleClientID == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "OAuth not configured",
				"message": "Google sign-in is not available",
			})
			return
		}

		state, err := utils.GenerateNumericCode(12)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to start OAuth flow"})
			return
		}

		// State is double-submitted via a short-lived cookie
		c.SetCookie("oauth_state", state, 600, "/", "", false, true)
		c.Redirect(http.StatusTemporaryRedirect, googleOAuthConfig().AuthCodeURL(state))
	})

	// Exchange the callback code and sign the user in
	router.GET("/google/callback", func(c *gin.Context) {
		state := c.Query("state")
		cookieState, err := c.Cookie("oauth_state")
		if err != nil || state == "" || state != cookieState {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid state",
				"message": "OAuth state mismatch",
			})
			return
		}

		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code", "message": "No authorization code in callback"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		conf := googleOAuthConfig()
		token, err := conf.Exchange(ctx, code)
		if err != nil {
			log.Printf("❌ OAuth code exchange failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "OAuth failed", "message": "Could not exchange authorization code"})
			return
		}

		info, err := fetchGoogleUserInfo(ctx, conf, token)
		if err != nil {
			log.Printf("❌ OAuth userinfo fetch failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "OAuth failed", "message": "Could not fetch user profile"})
			return
		}

		user, err := upsertOAuthUser(info)
		if err != nil {
			log.Printf("❌ OAuth user upsert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to create account"})
			return
		}

		tokenPair, err := jwtService.GenerateTokenPair(user, c.GetHeader("User-Agent"), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to generate authentication tokens"})
			return
		}

		log.Printf("✅ User %d signed in via Google", user.ID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Signed in with Google",
			"data": gin.H{
				"user": gin.H{
					"id":        user.ID,
					"full_name": user.FullName,
					"email":     user.Email,
					"role":      user.Role,
				},
				"tokens": tokenPair,
			},
		})
	})
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	client := conf.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// upsertOAuthUser finds or creates the account for a Google profile. OAuth
// emails arrive verified, so new accounts skip the verification step.
func upsertOAuthUser(info *googleUserInfo) (*models.User, error) {
	email := utils.NormalizeEmail(info.Email)

	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.IsVerified() {
			now := time.Now()
			database.DB.Model(&user).Update("email_verified_at", now)
			user.EmailVerifiedAt = &now
		}
		return &user, nil
	}

	provider := "google"
	now := time.Now()
	user = models.User{
		FullName:        info.Name,
		Email:           email,
		Role:            models.RoleUser,
		EmailVerifiedAt: &now,
		OAuthProvider:   &provider,
		IsActive:        true,
	}
	if info.Picture != "" {
		user.ProfilePictureURL = &info.Picture
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
