package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/utils"
)

// RegisterAdminContentRoutes registers the back-office content routes:
// blog posts, the image gallery and site settings.
func RegisterAdminContentRoutes(router *gin.RouterGroup) {
	blogs := router.Group("/blogs")
	blogs.GET("", adminListBlogs)
	blogs.POST("", adminCreateBlog)
	blogs.PUT("/:id", adminUpdateBlog)
	blogs.DELETE("/:id", adminDeleteBlog)
	blogs.POST("/:id/cover", adminUploadBlogCover)

	gallery := router.Group("/gallery")
	gallery.POST("", adminUploadGalleryImage)
	gallery.PUT("/:id", adminUpdateGalleryImage)
	gallery.DELETE("/:id", adminDeleteGalleryImage)

	settings := router.Group("/settings")
	settings.GET("", adminGetSettings)
	settings.PUT("", adminUpdateSettings)
}

// adminListBlogs lists all posts including drafts
func adminListBlogs(c *gin.Context) {
	var blogs []models.Blog
	if err := database.DB.Preload("Author").
		Order("created_at DESC").Find(&blogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

// blogSlugTaken reports whether a slug is already used by another post
func blogSlugTaken(slug string, excludeID uint) bool {
	var count int64
	query := database.DB.Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}

// adminCreateBlog creates a post. Publishing stamps published_at.
func adminCreateBlog(c *gin.Context) {
	var req models.BlogPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	authorID := c.GetUint("user_id")
	slug := utils.DedupeSlug(utils.Slugify(req.Title), func(s string) bool {
		return blogSlugTaken(s, 0)
	})

	blog := models.Blog{
		Title:         req.Title,
		Slug:          slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		AuthorID:      authorID,
	}
	if req.Published != nil && *req.Published {
		blog.Published = true
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := database.DB.Create(&blog).Error; err != nil {
		log.Printf("❌ Failed to create blog post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "blog": blog})
}

// adminUpdateBlog edits a post. Retitling regenerates the slug, and the first
// publish stamps published_at.
func adminUpdateBlog(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blog ID"})
		return
	}

	var blog models.Blog
	if err := database.DB.First(&blog, blogID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	var req models.BlogPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	if req.Title != blog.Title {
		blog.Slug = utils.DedupeSlug(utils.Slugify(req.Title), func(s string) bool {
			return blogSlugTaken(s, blog.ID)
		})
	}
	blog.Title = req.Title
	blog.Excerpt = req.Excerpt
	blog.Content = req.Content
	if req.CoverImageURL != "" {
		blog.CoverImageURL = req.CoverImageURL
	}
	if req.Published != nil {
		if *req.Published && !blog.Published {
			now := time.Now()
			blog.PublishedAt = &now
		}
		blog.Published = *req.Published
	}

	if err := database.DB.Save(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "blog": blog})
}

// adminDeleteBlog removes a post
func adminDeleteBlog(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blog ID"})
		return
	}

	var blog models.Blog
	if err := database.DB.First(&blog, blogID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	if err := database.DB.Delete(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted"})
}

// adminUploadBlogCover uploads a cover image and attaches it to the post
func adminUploadBlogCover(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blog ID"})
		return
	}

	var blog models.Blog
	if err := database.DB.First(&blog, blogID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file", "message": "An image file is required"})
		return
	}
	if !utils.ValidateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file", "message": "Image must be a jpg/png/webp up to 5MB"})
		return
	}

	upload, err := utils.UploadImage(c.Request.Context(), header, "blog_covers")
	if err != nil {
		log.Printf("❌ Blog cover upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	if err := database.DB.Model(&blog).Update("cover_image_url", upload.URL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cover_image_url": upload.URL})
}

// adminUploadGalleryImage uploads an image into the gallery
func adminUploadGalleryImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file", "message": "An image file is required"})
		return
	}
	if !utils.ValidateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file", "message": "Image must be a jpg/png/webp up to 5MB"})
		return
	}

	upload, err := utils.UploadImage(c.Request.Context(), header, "gallery")
	if err != nil {
		log.Printf("❌ Gallery upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	sortOrder, _ := strconv.Atoi(c.DefaultPostForm("sort_order", "0"))
	image := models.GalleryImage{
		Title:     c.PostForm("title"),
		URL:       upload.URL,
		PublicID:  upload.PublicID,
		Category:  c.DefaultPostForm("category", "general"),
		SortOrder: sortOrder,
	}

	if err := database.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gallery image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "image": image})
}

// adminUpdateGalleryImage edits an image's metadata
func adminUpdateGalleryImage(c *gin.Context) {
	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	var image models.GalleryImage
	if err := database.DB.First(&image, imageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Category  *string `json:"category"`
		SortOrder *int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	if req.Title != nil {
		image.Title = *req.Title
	}
	if req.Category != nil {
		image.Category = *req.Category
	}
	if req.SortOrder != nil {
		image.SortOrder = *req.SortOrder
	}

	if err := database.DB.Save(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "image": image})
}

// adminDeleteGalleryImage removes an image from the gallery and from Cloudinary
func adminDeleteGalleryImage(c *gin.Context) {
	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	var image models.GalleryImage
	if err := database.DB.First(&image, imageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if image.PublicID != "" {
		if err := utils.DeleteImage(c.Request.Context(), image.PublicID); err != nil {
			// Keep the DB delete going; the orphaned asset can be cleaned up later
			log.Printf("⚠️ Failed to delete Cloudinary asset %s: %v", image.PublicID, err)
		}
	}

	if err := database.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}

// adminGetSettings returns every setting row
func adminGetSettings(c *gin.Context) {
	var settings []models.Setting
	if err := database.DB.Order("key").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// adminUpdateSettings upserts a batch of key/value pairs
func adminUpdateSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided"})
		return
	}

	for key, value := range req {
		var setting models.Setting
		err := database.DB.Where("key = ?", key).First(&setting).Error
		if err != nil {
			setting = models.Setting{Key: key, Value: value}
			if err := database.DB.Create(&setting).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
				return
			}
			continue
		}
		if err := database.DB.Model(&setting).Update("value", value).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
	}

	log.Printf("✅ %d setting(s) updated", len(req))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated"})
}
