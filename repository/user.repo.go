package repository

import (
	"errors"
	"log"

	"mopay/apperrors"
	"mopay/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found!")
	}
	if err != nil {
		log.Printf("Error retrieving user row: %v", err)
		return nil, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return &user, nil
}
