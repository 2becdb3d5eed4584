package database

import (
	"eventhub/config"
	"eventhub/constants"
	"eventhub/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	password := config.ConfigDefault("ADMIN_PASSWORD", "changeme123")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin seed password:", err)
		return
	}

	admin := model.User{
		Name:       "Administrator",
		Email:      config.ConfigDefault("ADMIN_EMAIL", "admin@eventhub.local"),
		Password:   string(bytes),
		Role:       constants.ROLE_ADMIN,
		IsVerified: true,
		IsActive:   true,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}
}
