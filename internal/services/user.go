package services

import (
	"errors"

	"github.com/rollcall-dev/rollcall/internal/auth"
	"github.com/rollcall-dev/rollcall/internal/models"
	"gorm.io/gorm"
)

// GetUserByEmail returns (nil, nil) when no user has the given email.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User

	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// CreateUser hashes the password before persisting. The plaintext is never
// stored.
func CreateUser(db *gorm.DB, email, name, password string) (*models.User, error) {
	passwordHash, err := auth.HashPassword(password)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
