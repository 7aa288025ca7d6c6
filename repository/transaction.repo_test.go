package repository

import (
	"fmt"
	"sync"
	"testing"

	"mopay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Wallet{}, &models.Transaction{}))
	return db
}

func seedTransfer(t *testing.T, db *gorm.DB, reference string, amount int64) (*models.Wallet, *models.Transaction) {
	t.Helper()

	wallet := &models.Wallet{OwnerID: 1, Balance: 0, Currency: "NGN", AccountNumber: "0123456789", BankCode: "058"}
	require.NoError(t, db.Create(wallet).Error)

	txn := &models.Transaction{
		OwnerID:   1,
		Kind:      models.TransactionKindTransfer,
		Currency:  "NGN",
		Amount:    amount,
		Code:      "TRF_" + reference,
		CodeType:  models.CodeTypeTransfer,
		Reference: reference,
	}
	require.NoError(t, db.Create(txn).Error)
	return wallet, txn
}

func TestConfirmTransferCreditAppliesOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	wallet, _ := seedTransfer(t, db, "ref-1", 10000)

	credited, err := repo.ConfirmTransferCredit("ref-1", wallet.ID, 10000, models.StatusSuccess)
	require.NoError(t, err)
	assert.True(t, credited)

	credited, err = repo.ConfirmTransferCredit("ref-1", wallet.ID, 10000, models.StatusSuccess)
	require.NoError(t, err)
	assert.False(t, credited)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(10000), got.Balance)
}

func TestConfirmTransferCreditConcurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	wallet, _ := seedTransfer(t, db, "ref-2", 10000)

	const attempts = 8
	results := make(chan bool, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			credited, err := repo.ConfirmTransferCredit("ref-2", wallet.ID, 10000, models.StatusSuccess)
			assert.NoError(t, err)
			results <- credited
		}()
	}
	wg.Wait()
	close(results)

	creditCount := 0
	for credited := range results {
		if credited {
			creditCount++
		}
	}
	assert.Equal(t, 1, creditCount)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(10000), got.Balance)
}

func TestMarkStatusRespectsTerminalState(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	_, txn := seedTransfer(t, db, "ref-3", 10000)

	// Non-terminal statuses may be overwritten.
	updated, err := repo.MarkStatus(txn.Reference, "otp")
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.MarkStatus(txn.Reference, models.StatusSuccess)
	require.NoError(t, err)
	assert.True(t, updated)

	// Terminal state is sticky.
	updated, err = repo.MarkStatus(txn.Reference, models.StatusFailed)
	require.NoError(t, err)
	assert.False(t, updated)

	var got models.Transaction
	require.NoError(t, db.Where("transaction_reference = ?", txn.Reference).First(&got).Error)
	assert.Equal(t, models.StatusSuccess, got.Status)
}

func TestConfirmTransferCreditAfterFailureIsRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	wallet, txn := seedTransfer(t, db, "ref-4", 10000)

	updated, err := repo.MarkStatus(txn.Reference, models.StatusFailed)
	require.NoError(t, err)
	assert.True(t, updated)

	credited, err := repo.ConfirmTransferCredit(txn.Reference, wallet.ID, 10000, models.StatusSuccess)
	require.NoError(t, err)
	assert.False(t, credited)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(0), got.Balance)
}

func TestGetByReferenceNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)

	_, err := repo.GetByReference("ghost")
	require.Error(t, err)
}
