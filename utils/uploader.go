package utils

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"retreat-booking-server/config"
)

// ValidateImageFile validates mimetype and size (<= 5MB)
func ValidateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".pdf":
		return true
	default:
		return false
	}
}

// UploadResult holds the fields we keep from a Cloudinary upload
type UploadResult struct {
	URL      string
	PublicID string
}

// UploadImage pushes a multipart file to Cloudinary under the given folder
func UploadImage(ctx context.Context, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	cld, err := cloudinary.NewFromURL(config.AppConfig.Cloudinary.URL)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "auto",
		UniqueFilename: boolPtr(true),
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// DeleteImage removes a previously uploaded asset by public id
func DeleteImage(ctx context.Context, publicID string) error {
	cld, err := cloudinary.NewFromURL(config.AppConfig.Cloudinary.URL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

func boolPtr(b bool) *bool {
	return &b
}
