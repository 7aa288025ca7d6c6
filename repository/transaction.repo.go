package repository

import (
	"errors"
	"log"

	"mopay/apperrors"
	"mopay/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		log.Printf("Error creating transaction row: %v", err)
		return apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return nil
}

func (r *TransactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.Where("transaction_reference = ?", reference).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Transaction with reference " + reference + " was not found")
	}
	if err != nil {
		log.Printf("Error retrieving transaction row: %v", err)
		return nil, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return &txn, nil
}

func (r *TransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.Where("id = ?", id).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Transaction not found!")
	}
	if err != nil {
		log.Printf("Error retrieving transaction row: %v", err)
		return nil, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return &txn, nil
}

func (r *TransactionRepository) ListByUserAndKind(userID uint, kind models.TransactionKind) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.db.Where("owner_id = ? AND kind = ?", userID, kind).
		Order("created_at desc").Find(&txns).Error; err != nil {
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		return nil, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return txns, nil
}

// MarkStatus records a gateway-reported status on the transaction unless it
// has already reached a terminal state. Returns whether the row was updated.
func (r *TransactionRepository) MarkStatus(reference, status string) (bool, error) {
	res := r.db.Model(&models.Transaction{}).
		Where("transaction_reference = ? AND status NOT IN ?", reference, models.TerminalStatuses).
		Update("status", status)
	if res.Error != nil {
		log.Printf("Error updating status for transaction %s: %v", reference, res.Error)
		return false, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return res.RowsAffected > 0, nil
}

// ConfirmTransferCredit closes a transfer transaction and credits the
// recipient wallet in a single database transaction. The status write is
// conditional on the transaction not yet being terminal; the wallet balance is
// incremented only when that conditional write takes effect. Two racing
// confirmations for the same reference therefore apply the credit exactly
// once: the loser of the race sees zero affected rows and leaves the balance
// alone.
func (r *TransactionRepository) ConfirmTransferCredit(reference string, walletID uint, amount int64, status string) (bool, error) {
	credited := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("transaction_reference = ? AND status NOT IN ?", reference, models.TerminalStatuses).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already settled by another confirmation path.
			return nil
		}

		if err := tx.Model(&models.Wallet{}).Where("id = ?", walletID).
			Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
			return err
		}

		credited = true
		return nil
	})
	if err != nil {
		log.Printf("Error confirming transfer credit for %s: %v", reference, err)
		return false, apperrors.Internal("An error occurred while processing your request. Please try again.")
	}
	return credited, nil
}
