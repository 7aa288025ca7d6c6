package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mopay/apperrors"
	"mopay/models"
	"mopay/paystack"
	"mopay/repository"

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

// stubGateway satisfies Gateway with overridable call sites.
type stubGateway struct {
	verifyPayment    func(reference string) (*paystack.VerifyPaymentData, error)
	verifyTransfer   func(reference string) (*paystack.VerifyTransferData, error)
	initiateTransfer func(args paystack.InitiateTransferArgs) (*paystack.InitiateTransferData, error)
}

func (g *stubGateway) InitializePayment(_ context.Context, args paystack.InitializePaymentArgs) (*paystack.InitializePaymentData, error) {
	return &paystack.InitializePaymentData{
		AuthorizationURL: "https://checkout.example/" + args.Reference,
		AccessCode:       "AC_" + args.Reference[:8],
		Reference:        args.Reference,
	}, nil
}

func (g *stubGateway) VerifyPayment(_ context.Context, reference string) (*paystack.VerifyPaymentData, error) {
	if g.verifyPayment == nil {
		return nil, errors.New("not implemented")
	}
	return g.verifyPayment(reference)
}

func (g *stubGateway) CreateCustomer(context.Context, paystack.CreateCustomerArgs) (*paystack.CustomerData, error) {
	return &paystack.CustomerData{CustomerCode: "CUS_test"}, nil
}

func (g *stubGateway) CreateTransferRecipient(_ context.Context, args paystack.CreateTransferRecipientArgs) (*paystack.TransferRecipientData, error) {
	return &paystack.TransferRecipientData{RecipientCode: "RCP_test", Metadata: args.Metadata}, nil
}

func (g *stubGateway) GetTransferRecipient(context.Context, string) (*paystack.TransferRecipientData, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) InitiateTransfer(_ context.Context, args paystack.InitiateTransferArgs) (*paystack.InitiateTransferData, error) {
	if g.initiateTransfer != nil {
		return g.initiateTransfer(args)
	}
	return &paystack.InitiateTransferData{TransferCode: "TRF_test", Amount: args.Amount, Currency: "NGN", Status: "pending"}, nil
}

func (g *stubGateway) FinalizeTransfer(context.Context, paystack.FinalizeTransferArgs) (*paystack.FinalizeTransferData, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) VerifyTransfer(_ context.Context, reference string) (*paystack.VerifyTransferData, error) {
	if g.verifyTransfer == nil {
		return nil, errors.New("not implemented")
	}
	return g.verifyTransfer(reference)
}

func (g *stubGateway) ListBanks(context.Context, string) ([]paystack.Bank, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) ResolveAccountNumber(context.Context, string, string) (*paystack.ResolveAccountData, error) {
	return nil, errors.New("not implemented")
}

type fixture struct {
	db      *gorm.DB
	gateway *stubGateway
	service *Service
	wallet  *models.Wallet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	gateway := &stubGateway{}
	service := NewService(
		gateway,
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewTransactionRepository(db),
	)

	user := &models.User{FirstName: "Ada", Email: "ada@example.com", Mobile: "08010000001", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	wallet := &models.Wallet{OwnerID: user.ID, Balance: 0, Currency: "NGN", AccountNumber: "0123456789", BankCode: "058"}
	require.NoError(t, db.Create(wallet).Error)

	return &fixture{db: db, gateway: gateway, service: service, wallet: wallet}
}

func (f *fixture) createTransfer(t *testing.T, reference string, amount int64) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		OwnerID:           f.wallet.OwnerID,
		Kind:              models.TransactionKindTransfer,
		Currency:          "NGN",
		Amount:            amount,
		Code:              "TRF_" + reference,
		CodeType:          models.CodeTypeTransfer,
		Reference:         reference,
		RecipientWalletID: fmt.Sprint(f.wallet.ID),
	}
	require.NoError(t, f.db.Create(txn).Error)
	return txn
}

func (f *fixture) walletBalance(t *testing.T) int64 {
	t.Helper()

	var wallet models.Wallet
	require.NoError(t, f.db.First(&wallet, f.wallet.ID).Error)
	return wallet.Balance
}

func (f *fixture) transactionStatus(t *testing.T, reference string) string {
	t.Helper()

	var txn models.Transaction
	require.NoError(t, f.db.Where("transaction_reference = ?", reference).First(&txn).Error)
	return txn.Status
}

func (f *fixture) transferSuccessResponse(reference string, amount int64) {
	f.gateway.verifyTransfer = func(ref string) (*paystack.VerifyTransferData, error) {
		return &paystack.VerifyTransferData{
			Amount:       amount,
			Currency:     "NGN",
			Status:       "success",
			TransferCode: "TRF_" + reference,
			Recipient: paystack.TransferRecipientDetail{
				Metadata: paystack.RecipientMetadata{WalletID: fmt.Sprint(f.wallet.ID)},
			},
		}, nil
	}
}

func (f *fixture) webhookEvent(event, reference string, amount int64, status string) WebhookEvent {
	return WebhookEvent{
		Event: event,
		Data: WebhookData{
			Amount:       amount,
			Currency:     "NGN",
			Status:       status,
			Reference:    reference,
			TransferCode: "TRF_" + reference,
			Recipient: paystack.TransferRecipientDetail{
				Metadata: paystack.RecipientMetadata{WalletID: fmt.Sprint(f.wallet.ID)},
			},
		},
	}
}

func assertErrorKind(t *testing.T, err error, kind string) {
	t.Helper()

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
}

func TestVerifyTransferCreditsRecipient(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-a", 10000)
	f.transferSuccessResponse("ref-a", 10000)

	txn, err := f.service.VerifyTransfer(context.Background(), "ref-a")
	require.NoError(t, err)

	assert.Equal(t, "success", txn.Status)
	assert.Equal(t, int64(10000), f.walletBalance(t))
}

func TestVerifyTransferIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-a", 10000)
	f.transferSuccessResponse("ref-a", 10000)

	for i := 0; i < 3; i++ {
		_, err := f.service.VerifyTransfer(context.Background(), "ref-a")
		require.NoError(t, err)
	}

	assert.Equal(t, int64(10000), f.walletBalance(t))
}

func TestVerifyThenWebhookCreditsOnce(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-b", 10000)
	f.transferSuccessResponse("ref-b", 10000)

	_, err := f.service.VerifyTransfer(context.Background(), "ref-b")
	require.NoError(t, err)

	err = f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferSuccess, "ref-b", 10000, "success"))
	require.NoError(t, err)

	assert.Equal(t, int64(10000), f.walletBalance(t))
	assert.Equal(t, "success", f.transactionStatus(t, "ref-b"))
}

func TestWebhookThenVerifyCreditsOnce(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-c", 10000)
	f.transferSuccessResponse("ref-c", 10000)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferSuccess, "ref-c", 10000, "success"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), f.walletBalance(t))

	_, err = f.service.VerifyTransfer(context.Background(), "ref-c")
	require.NoError(t, err)

	assert.Equal(t, int64(10000), f.walletBalance(t))
}

func TestWebhookUnknownReference(t *testing.T) {
	f := newFixture(t)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferSuccess, "ghost", 10000, "success"))
	assertErrorKind(t, err, "not-found")
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookTransferFailed(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-d", 10000)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferFailed, "ref-d", 10000, "failed"))
	require.NoError(t, err)

	assert.Equal(t, "failed", f.transactionStatus(t, "ref-d"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookTransferReversed(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-e", 10000)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferReversed, "ref-e", 10000, "reversed"))
	require.NoError(t, err)

	assert.Equal(t, "reversed", f.transactionStatus(t, "ref-e"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestTerminalStatusIsSticky(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-f", 10000)
	f.transferSuccessResponse("ref-f", 10000)

	_, err := f.service.VerifyTransfer(context.Background(), "ref-f")
	require.NoError(t, err)

	// A late failed webhook for an already-settled reference must not reopen
	// the transaction or touch the balance.
	err = f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferFailed, "ref-f", 10000, "failed"))
	require.NoError(t, err)

	assert.Equal(t, "success", f.transactionStatus(t, "ref-f"))
	assert.Equal(t, int64(10000), f.walletBalance(t))
}

func TestVerifyTransferAmountMismatch(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-g", 10000)
	f.transferSuccessResponse("ref-g", 9000)

	_, err := f.service.VerifyTransfer(context.Background(), "ref-g")
	assertErrorKind(t, err, "bad-request")

	assert.Equal(t, "", f.transactionStatus(t, "ref-g"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookAmountMismatch(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-h", 10000)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferSuccess, "ref-h", 9000, "success"))
	assertErrorKind(t, err, "bad-request")

	assert.Equal(t, "", f.transactionStatus(t, "ref-h"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookCurrencyMismatch(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-i", 10000)

	event := f.webhookEvent(EventTransferSuccess, "ref-i", 10000, "success")
	event.Data.Currency = "USD"

	err := f.service.HandleTransferWebhook(context.Background(), event)
	assertErrorKind(t, err, "bad-request")
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookTransferCodeMismatch(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-j", 10000)

	event := f.webhookEvent(EventTransferSuccess, "ref-j", 10000, "success")
	event.Data.TransferCode = "TRF_other"

	err := f.service.HandleTransferWebhook(context.Background(), event)
	assertErrorKind(t, err, "bad-request")
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookUnknownEventIsDropped(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-k", 10000)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent("charge.success", "ref-k", 10000, "success"))
	require.NoError(t, err)

	assert.Equal(t, "", f.transactionStatus(t, "ref-k"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookMissingFields(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-l", 10000)

	event := f.webhookEvent(EventTransferSuccess, "ref-l", 10000, "success")
	event.Data.Recipient.Metadata.WalletID = ""

	err := f.service.HandleTransferWebhook(context.Background(), event)
	assertErrorKind(t, err, "bad-request")
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestWebhookSuccessEventWithNonSuccessStatus(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-m", 10000)

	err := f.service.HandleTransferWebhook(context.Background(), f.webhookEvent(EventTransferSuccess, "ref-m", 10000, "otp"))
	require.NoError(t, err)

	// Status recorded for audit, no credit.
	assert.Equal(t, "otp", f.transactionStatus(t, "ref-m"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestVerifyTransferNonSuccessStatus(t *testing.T) {
	f := newFixture(t)
	f.createTransfer(t, "ref-n", 10000)
	f.gateway.verifyTransfer = func(string) (*paystack.VerifyTransferData, error) {
		return &paystack.VerifyTransferData{
			Amount:       10000,
			Currency:     "NGN",
			Status:       "pending",
			TransferCode: "TRF_ref-n",
		}, nil
	}

	_, err := f.service.VerifyTransfer(context.Background(), "ref-n")
	assertErrorKind(t, err, "bad-request")

	assert.Equal(t, "pending", f.transactionStatus(t, "ref-n"))
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestVerifyPaymentNeverTouchesWallet(t *testing.T) {
	f := newFixture(t)

	txn := &models.Transaction{
		OwnerID:   f.wallet.OwnerID,
		Kind:      models.TransactionKindPayment,
		Currency:  "NGN",
		Amount:    5000,
		Code:      "AC_pay",
		CodeType:  models.CodeTypeAccess,
		Reference: "pay-ref",
	}
	require.NoError(t, f.db.Create(txn).Error)

	f.gateway.verifyPayment = func(string) (*paystack.VerifyPaymentData, error) {
		return &paystack.VerifyPaymentData{Amount: 5000, Reference: "pay-ref", Status: "success"}, nil
	}

	got, err := f.service.VerifyPayment(context.Background(), "pay-ref")
	require.NoError(t, err)

	assert.Equal(t, "success", got.Status)
	assert.Equal(t, int64(0), f.walletBalance(t))
}

func TestVerifyPaymentAmountMismatch(t *testing.T) {
	f := newFixture(t)

	txn := &models.Transaction{
		OwnerID:   f.wallet.OwnerID,
		Kind:      models.TransactionKindPayment,
		Currency:  "NGN",
		Amount:    5000,
		Code:      "AC_pay",
		CodeType:  models.CodeTypeAccess,
		Reference: "pay-ref2",
	}
	require.NoError(t, f.db.Create(txn).Error)

	f.gateway.verifyPayment = func(string) (*paystack.VerifyPaymentData, error) {
		return &paystack.VerifyPaymentData{Amount: 4000, Reference: "pay-ref2", Status: "success"}, nil
	}

	_, err := f.service.VerifyPayment(context.Background(), "pay-ref2")
	assertErrorKind(t, err, "bad-request")
	assert.Equal(t, "", f.transactionStatus(t, "pay-ref2"))
}

func TestVerifyPaymentUnknownReference(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.VerifyPayment(context.Background(), "ghost")
	assertErrorKind(t, err, "not-found")
}

func TestInitiateTransferCreatesPendingTransaction(t *testing.T) {
	f := newFixture(t)

	var gotReference string
	f.gateway.initiateTransfer = func(args paystack.InitiateTransferArgs) (*paystack.InitiateTransferData, error) {
		gotReference = args.Reference
		return &paystack.InitiateTransferData{TransferCode: "TRF_new", Amount: args.Amount, Currency: "NGN", Status: "otp"}, nil
	}

	_, err := f.service.InitiateTransfer(context.Background(), f.wallet.OwnerID, InitiateTransferInput{
		Source:        "balance",
		Reason:        "rent",
		Amount:        100, // major units
		RecipientCode: "RCP_test",
	})
	require.NoError(t, err)
	require.NotEmpty(t, gotReference)

	var txn models.Transaction
	require.NoError(t, f.db.Where("transaction_reference = ?", gotReference).First(&txn).Error)
	assert.Equal(t, int64(10000), txn.Amount) // converted to kobo
	assert.Equal(t, models.TransactionKindTransfer, txn.Kind)
	assert.Equal(t, "TRF_new", txn.Code)
	assert.Equal(t, models.CodeTypeTransfer, txn.CodeType)
	assert.Equal(t, "", txn.Status)
}

func TestInitializePaymentCreatesPendingTransaction(t *testing.T) {
	f := newFixture(t)

	var user models.User
	require.NoError(t, f.db.First(&user, f.wallet.OwnerID).Error)

	data, err := f.service.InitializePayment(context.Background(), &user, InitializePaymentInput{
		Amount: 50, // major units
		Email:  user.Email,
		Name:   user.FirstName,
	})
	require.NoError(t, err)

	var txn models.Transaction
	require.NoError(t, f.db.Where("transaction_reference = ?", data.Reference).First(&txn).Error)
	assert.Equal(t, int64(5000), txn.Amount) // converted to kobo
	assert.Equal(t, models.TransactionKindPayment, txn.Kind)
	assert.Equal(t, models.CodeTypeAccess, txn.CodeType)
	assert.Equal(t, "", txn.Status)
}

func TestInitiateTransferRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.InitiateTransfer(context.Background(), f.wallet.OwnerID, InitiateTransferInput{
		Source:        "balance",
		Amount:        0,
		RecipientCode: "RCP_test",
	})
	assertErrorKind(t, err, "bad-request")
}
