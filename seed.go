package main

import (
	"log"
	"os"
	"time"

	"gorm.io/datatypes"

	"retreat-booking-server/database"
	"retreat-booking-server/models"
	"retreat-booking-server/services"
	"retreat-booking-server/utils"
)

// seedDatabase inserts baseline data on an empty database: default site
// settings, a starter catalog, and an admin account when ADMIN_EMAIL is set.
func seedDatabase() error {
	if err := seedSettings(); err != nil {
		return err
	}
	if err := seedServices(); err != nil {
		return err
	}
	return seedAdminUser()
}

func seedSettings() error {
	defaults := map[string]string{
		"site_name":     "Serenity Retreats",
		"contact_email": "hello@serenity-retreats.example",
		"contact_phone": "",
		"currency":      "EUR",
		"address":       "",
		"instagram_url": "",
		"facebook_url":  "",
		"bank_details":  "",
	}

	for key, value := range defaults {
		var count int64
		database.DB.Model(&models.Setting{}).Where("key = ?", key).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.DB.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedServices() error {
	var count int64
	database.DB.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return nil
	}

	seeds := []models.Service{
		{
			Name:              "Mountain Yoga Retreat",
			Slug:              "mountain-yoga-retreat",
			Description:       "A week of yoga, meditation and mountain air.",
			Price:             1200,
			MaxCapacity:       16,
			IsBookable:        true,
			DepositPercentage: 20,
			Packages:          datatypes.JSON([]byte(`[{"name":"Shared room","price":1200},{"name":"Private room","price":1600}]`)),
			Durations:         datatypes.JSON([]byte(`[3,5,7]`)),
		},
		{
			Name:              "Forest Silence Weekend",
			Slug:              "forest-silence-weekend",
			Description:       "Two days of guided silence and forest walks.",
			Price:             450,
			MaxCapacity:       10,
			IsBookable:        true,
			DepositPercentage: 30,
			Durations:         datatypes.JSON([]byte(`[2]`)),
		},
		{
			Name:              "Sunrise Breathwork Session",
			Slug:              "sunrise-breathwork-session",
			Description:       "A single-morning breathwork and cold exposure session.",
			Price:             85,
			MaxCapacity:       20,
			IsBookable:        true,
			DepositPercentage: 100,
			TimeSlots:         datatypes.JSON([]byte(`["06:30-09:00"]`)),
		},
	}

	for i := range seeds {
		if err := database.DB.Create(&seeds[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d starter service(s)", len(seeds))
	return nil
}

func seedAdminUser() error {
	email := utils.NormalizeEmail(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := services.NewJWTService().HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		FullName:        "Administrator",
		Email:           email,
		PasswordHash:    &hash,
		Role:            models.RoleAdmin,
		EmailVerifiedAt: &now,
		IsActive:        true,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account created for %s", email)
	return nil
}
