package models

import (
	"time"

	"gallery/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func UserCreate(email, plainTextPassword string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	return u, db.Instance.Create(&u).Error
}

// VerifyCredentials fails closed: any lookup error or hash mismatch
// yields (zero User, false).
func VerifyCredentials(email, plainTextPassword string) (User, bool) {
	var u User
	if db.Instance.First(&u, "email = ?", email).Error != nil {
		return User{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainTextPassword)) != nil {
		return User{}, false
	}
	return u, true
}

func UserGet(id string) (User, bool) {
	var u User
	if db.Instance.First(&u, "id = ?", id).Error != nil {
		return User{}, false
	}
	return u, true
}
