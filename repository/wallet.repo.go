package repository

import (
	"errors"
	"log"

	"mopay/apperrors"
	"mopay/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		log.Printf("Error creating wallet row: %v", err)
		return apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return nil
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("owner_id = ? AND is_deleted = false", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Wallet not found!")
	}
	if err != nil {
		log.Printf("Error retrieving wallet row: %v", err)
		return nil, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return &wallet, nil
}

func (r *WalletRepository) GetByID(walletID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("id = ? AND is_deleted = false", walletID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Wallet not found!")
	}
	if err != nil {
		log.Printf("Error retrieving wallet row: %v", err)
		return nil, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return &wallet, nil
}

func (r *WalletRepository) SetRecipientCode(walletID uint, recipientCode string) error {
	if err := r.db.Model(&models.Wallet{}).Where("id = ?", walletID).
		Update("recipient_code", recipientCode).Error; err != nil {
		log.Printf("Error updating recipient code for wallet %d: %v", walletID, err)
		return apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return nil
}

func (r *WalletRepository) SetCustomerCode(walletID uint, customerCode string) error {
	if err := r.db.Model(&models.Wallet{}).Where("id = ?", walletID).
		Update("customer_code", customerCode).Error; err != nil {
		log.Printf("Error updating customer code for wallet %d: %v", walletID, err)
		return apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return nil
}
