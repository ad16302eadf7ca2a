package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
)

// RegisterContentRoutes registers the public marketing content routes
func RegisterContentRoutes(router *gin.RouterGroup) {
	blogs := router.Group("/blogs")
	blogs.GET("", listPublishedBlogs)
	blogs.GET("/:slug", getBlogBySlug)

	router.GET("/gallery", listGalleryImages)
	router.GET("/settings", getPublicSettings)
}

// listPublishedBlogs returns published posts, newest first
func listPublishedBlogs(c *gin.Context) {
	var blogs []models.Blog
	if err := database.DB.
		Select("id", "title", "slug", "excerpt", "cover_image_url", "published_at", "author_id").
		Where("published = ?", true).
		Order("published_at DESC").Find(&blogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

// getBlogBySlug returns one published post with its content
func getBlogBySlug(c *gin.Context) {
	var blog models.Blog
	if err := database.DB.Preload("Author").
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&blog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// listGalleryImages returns the gallery ordered for display
func listGalleryImages(c *gin.Context) {
	query := database.DB.Order("sort_order, created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var images []models.GalleryImage
	if err := query.Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gallery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

// publicSettingKeys are the settings safe to expose without authentication
var publicSettingKeys = []string{
	"site_name", "contact_email", "contact_phone", "currency",
	"address", "instagram_url", "facebook_url",
}

// getPublicSettings returns the public subset of site settings as a map
func getPublicSettings(c *gin.Context) {
	var settings []models.Setting
	if err := database.DB.Where("key IN ?", publicSettingKeys).Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	c.JSON(http.StatusOK, gin.H{"settings": out})
}
