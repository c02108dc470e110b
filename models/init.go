package models

import (
	"errors"
	"log"

	"gallery/config"
	"gallery/db"
)

var ErrNotFound = errors.New("record not found")

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&Photo{})

	bootstrapAdmin()
}

// bootstrapAdmin creates the initial admin account from the environment.
// This is the only way users come into existence; there is no signup flow.
func bootstrapAdmin() {
	if config.ADMIN_EMAIL == "" || config.ADMIN_PASSWORD == "" {
		return
	}
	var count int64
	if err := db.Instance.Model(&User{}).Where("email = ?", config.ADMIN_EMAIL).Count(&count).Error; err != nil {
		log.Printf("Admin bootstrap check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if _, err := UserCreate(config.ADMIN_EMAIL, config.ADMIN_PASSWORD); err != nil {
		log.Printf("Cannot create admin user: %v", err)
		return
	}
	log.Printf("Created admin user %s", config.ADMIN_EMAIL)
}
