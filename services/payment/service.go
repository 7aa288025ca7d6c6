package payment

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"mopay/apperrors"
	"mopay/models"
	"mopay/paystack"
	"mopay/repository"
	"mopay/utils"
)

const defaultCurrency = "NGN"

// Gateway is the Paystack surface the service depends on.
type Gateway interface {
	InitializePayment(ctx context.Context, args paystack.InitializePaymentArgs) (*paystack.InitializePaymentData, error)
	VerifyPayment(ctx context.Context, reference string) (*paystack.VerifyPaymentData, error)
	CreateCustomer(ctx context.Context, args paystack.CreateCustomerArgs) (*paystack.CustomerData, error)
	CreateTransferRecipient(ctx context.Context, args paystack.CreateTransferRecipientArgs) (*paystack.TransferRecipientData, error)
	GetTransferRecipient(ctx context.Context, recipientCode string) (*paystack.TransferRecipientData, error)
	InitiateTransfer(ctx context.Context, args paystack.InitiateTransferArgs) (*paystack.InitiateTransferData, error)
	FinalizeTransfer(ctx context.Context, args paystack.FinalizeTransferArgs) (*paystack.FinalizeTransferData, error)
	VerifyTransfer(ctx context.Context, reference string) (*paystack.VerifyTransferData, error)
	ListBanks(ctx context.Context, currency string) ([]paystack.Bank, error)
	ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*paystack.ResolveAccountData, error)
}

// Service owns the transaction/wallet state machine. Every confirmation path
// (verify poll, webhook push) funnels through here; the conditional updates in
// the transaction repository are what make racing confirmations safe.
type Service struct {
	gateway      Gateway
	users        *repository.UserRepository
	wallets      *repository.WalletRepository
	transactions *repository.TransactionRepository
}

func NewService(gateway Gateway, users *repository.UserRepository, wallets *repository.WalletRepository, transactions *repository.TransactionRepository) *Service {
	return &Service{
		gateway:      gateway,
		users:        users,
		wallets:      wallets,
		transactions: transactions,
	}
}

// CreateCustomer registers the user on the gateway and stores the customer
// code on their wallet.
func (s *Service) CreateCustomer(ctx context.Context, user *models.User) (*paystack.CustomerData, error) {
	wallet, err := s.wallets.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.CreateCustomer(ctx, paystack.CreateCustomerArgs{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Mobile,
	})
	if err != nil {
		return nil, err
	}
	if data.CustomerCode == "" {
		return nil, apperrors.Internal("A problem occurred while accessing the requested resource. Please try again!")
	}

	if err := s.wallets.SetCustomerCode(wallet.ID, data.CustomerCode); err != nil {
		return nil, err
	}

	log.Printf("customerCode was updated for user with id: %d", user.ID)
	return data, nil
}

type InitializePaymentInput struct {
	Amount      int64 // major units
	Email       string
	Name        string
	CallbackURL string
}

// InitializePayment starts a pay-in: generates the reference, calls the
// gateway, and writes the pending Transaction row that later confirmation
// paths are matched against.
func (s *Service) InitializePayment(ctx context.Context, user *models.User, in InitializePaymentInput) (*paystack.InitializePaymentData, error) {
	wallet, err := s.wallets.GetByUserID(user.ID)
	if err != nil {
		log.Printf("Wallet with owner %d not found", user.ID)
		return nil, err
	}

	amountKobo := in.Amount * 100
	reference := utils.GenerateReference()

	data, err := s.gateway.InitializePayment(ctx, paystack.InitializePaymentArgs{
		Email:       in.Email,
		Amount:      amountKobo,
		CallbackURL: in.CallbackURL,
		Reference:   reference,
		Metadata: paystack.PaymentMetadata{
			Email:    in.Email,
			Name:     in.Name,
			Amount:   amountKobo,
			WalletID: strconv.FormatUint(uint64(wallet.ID), 10),
		},
	})
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		OwnerID:   user.ID,
		Kind:      models.TransactionKindPayment,
		Currency:  defaultCurrency,
		Amount:    amountKobo,
		Code:      data.AccessCode,
		CodeType:  models.CodeTypeAccess,
		Reference: reference,
	}
	if err := s.transactions.Create(txn); err != nil {
		return nil, err
	}

	log.Printf("New payment transaction created for user: %d", user.ID)
	return data, nil
}

// VerifyPayment polls the gateway for a pay-in. A successful pay-in settles in
// the platform's own account, so no wallet balance changes here; the
// transaction status is advanced for audit.
func (s *Service) VerifyPayment(ctx context.Context, reference string) (*models.Transaction, error) {
	txn, err := s.transactions.GetByReference(reference)
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		return nil, err
	}

	if resp.Amount != txn.Amount {
		return nil, apperrors.BadRequest("Transaction mismatch")
	}

	if resp.Status != models.StatusSuccess {
		if _, err := s.transactions.MarkStatus(reference, resp.Status); err != nil {
			return nil, err
		}
		return nil, apperrors.BadRequest(fmt.Sprintf("Transaction: %s", resp.Status))
	}

	if _, err := s.transactions.MarkStatus(reference, resp.Status); err != nil {
		return nil, err
	}

	return s.transactions.GetByReference(reference)
}

func (s *Service) ListBanks(ctx context.Context) ([]paystack.Bank, error) {
	return s.gateway.ListBanks(ctx, defaultCurrency)
}

func (s *Service) ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*paystack.ResolveAccountData, error) {
	return s.gateway.ResolveAccountNumber(ctx, accountNumber, bankCode)
}

type CreateRecipientInput struct {
	Type          string
	Name          string
	AccountNumber string
	BankCode      string
	Currency      string
	Description   string
	WalletID      uint
}

// CreateTransferRecipient registers a recipient wallet on the gateway. The
// wallet id travels in the recipient metadata so that a confirmed transfer can
// be routed back to the wallet it credits.
func (s *Service) CreateTransferRecipient(ctx context.Context, in CreateRecipientInput) (*paystack.TransferRecipientData, error) {
	wallet, err := s.wallets.GetByID(in.WalletID)
	if err != nil {
		return nil, apperrors.BadRequest("Recipient does not exist. Please confirm that the recipient's walletId is correct, and try again.")
	}

	if wallet.AccountNumber != in.AccountNumber || wallet.BankCode != in.BankCode {
		return nil, apperrors.BadRequest("WalletId does not match the recipient bank details provided. We suggest you confirm the bank details and try again.")
	}

	recipientUser, err := s.users.GetByID(wallet.OwnerID)
	if err != nil {
		log.Printf("User owning wallet %d not found", wallet.ID)
		return nil, apperrors.NotFound("Recipient not found!")
	}

	data, err := s.gateway.CreateTransferRecipient(ctx, paystack.CreateTransferRecipientArgs{
		Type:          in.Type,
		Name:          in.Name,
		AccountNumber: in.AccountNumber,
		BankCode:      in.BankCode,
		Currency:      in.Currency,
		Description:   in.Description,
		Metadata: paystack.RecipientMetadata{
			Email:    recipientUser.Email,
			Name:     in.Name,
			WalletID: strconv.FormatUint(uint64(wallet.ID), 10),
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.wallets.SetRecipientCode(wallet.ID, data.RecipientCode); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *Service) GetTransferRecipient(ctx context.Context, recipientCode string) (*paystack.TransferRecipientData, error) {
	return s.gateway.GetTransferRecipient(ctx, recipientCode)
}

type InitiateTransferInput struct {
	Source               string
	Reason               string
	Amount               int64 // major units
	RecipientCode        string
	RecipientAccountNo   string
	RecipientBankName    string
	RecipientAccountName string
	RecipientWalletID    string
}

// InitiateTransfer starts a transfer on the gateway and records the pending
// Transaction row keyed by a fresh reference.
func (s *Service) InitiateTransfer(ctx context.Context, userID uint, in InitiateTransferInput) (*paystack.InitiateTransferData, error) {
	if in.Amount <= 0 {
		return nil, apperrors.BadRequest("Invalid amount!")
	}

	amountKobo := in.Amount * 100
	reference := utils.GenerateReference()

	data, err := s.gateway.InitiateTransfer(ctx, paystack.InitiateTransferArgs{
		Source:    in.Source,
		Reason:    in.Reason,
		Amount:    amountKobo,
		Recipient: in.RecipientCode,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	currency := data.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	txn := &models.Transaction{
		OwnerID:              userID,
		Kind:                 models.TransactionKindTransfer,
		Currency:             currency,
		Amount:               amountKobo,
		RecipientAccountNo:   in.RecipientAccountNo,
		RecipientBankName:    in.RecipientBankName,
		RecipientAccountName: in.RecipientAccountName,
		RecipientWalletID:    in.RecipientWalletID,
		Description:          in.Reason,
		Code:                 data.TransferCode,
		CodeType:             models.CodeTypeTransfer,
		Reference:            reference,
	}
	if err := s.transactions.Create(txn); err != nil {
		return nil, err
	}

	log.Printf("New transfer transaction created for user with id: %d", userID)
	return data, nil
}

func (s *Service) FinalizeTransfer(ctx context.Context, transferCode, otp string) (*paystack.FinalizeTransferData, error) {
	return s.gateway.FinalizeTransfer(ctx, paystack.FinalizeTransferArgs{
		TransferCode: transferCode,
		OTP:          otp,
	})
}

// VerifyTransfer polls the gateway for a transfer and, on confirmed success,
// credits the recipient wallet. Safe to call repeatedly for the same
// reference: after the first confirmation the conditional update reports the
// transaction as already settled and the balance is left alone.
func (s *Service) VerifyTransfer(ctx context.Context, reference string) (*models.Transaction, error) {
	txn, err := s.transactions.GetByReference(reference)
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.VerifyTransfer(ctx, reference)
	if err != nil {
		return nil, err
	}

	if err := matchTransfer(txn, resp.Amount, resp.Currency, resp.TransferCode); err != nil {
		return nil, err
	}

	if resp.Status != models.StatusSuccess {
		if _, err := s.transactions.MarkStatus(reference, resp.Status); err != nil {
			return nil, err
		}
		return nil, apperrors.BadRequest(fmt.Sprintf("Transfer: %s", resp.Status))
	}

	walletID, err := parseWalletID(resp.Recipient.Metadata.WalletID)
	if err != nil {
		return nil, err
	}
	if _, err := s.wallets.GetByID(walletID); err != nil {
		return nil, err
	}

	credited, err := s.transactions.ConfirmTransferCredit(reference, walletID, txn.Amount, resp.Status)
	if err != nil {
		return nil, err
	}
	if credited {
		log.Printf("Transfer transaction with reference: %s was completed successfully", reference)
	} else {
		log.Printf("Transfer transaction with reference: %s already settled, skipping credit", reference)
	}

	return s.transactions.GetByReference(reference)
}

// Webhook event names pushed by the gateway.
const (
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
	EventTransferReversed = "transfer.reversed"
)

type WebhookData struct {
	Amount       int64                            `json:"amount"`
	Currency     string                           `json:"currency"`
	Status       string                           `json:"status"`
	Reference    string                           `json:"reference"`
	TransferCode string                           `json:"transfer_code"`
	Recipient    paystack.TransferRecipientDetail `json:"recipient"`
}

type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// HandleTransferWebhook processes an authenticated gateway push. It may race
// with VerifyTransfer for the same reference; both paths converge on the same
// conditional credit so the wallet is incremented at most once.
func (s *Service) HandleTransferWebhook(ctx context.Context, event WebhookEvent) error {
	d := event.Data
	if event.Event == "" || d.Amount <= 0 || d.Currency == "" || d.Status == "" ||
		d.Reference == "" || d.TransferCode == "" || d.Recipient.Metadata.WalletID == "" {
		return apperrors.BadRequest("Invalid Request!")
	}

	txn, err := s.transactions.GetByReference(d.Reference)
	if err != nil {
		return err
	}

	if err := matchTransfer(txn, d.Amount, d.Currency, d.TransferCode); err != nil {
		return err
	}

	switch event.Event {
	case EventTransferSuccess:
		if d.Status != models.StatusSuccess {
			// Gateway reported a success event with a non-success status;
			// record the status for audit but do not credit.
			if _, err := s.transactions.MarkStatus(d.Reference, d.Status); err != nil {
				return err
			}
			log.Printf("Transfer webhook for %s carried status %q, no credit applied", d.Reference, d.Status)
			return nil
		}

		walletID, err := parseWalletID(d.Recipient.Metadata.WalletID)
		if err != nil {
			return err
		}
		if _, err := s.wallets.GetByID(walletID); err != nil {
			return err
		}

		credited, err := s.transactions.ConfirmTransferCredit(d.Reference, walletID, txn.Amount, d.Status)
		if err != nil {
			return err
		}
		if credited {
			log.Printf("Transfer transaction with reference: %s was completed successfully", d.Reference)
		} else {
			log.Printf("Transfer transaction with reference: %s already settled, skipping credit", d.Reference)
		}

	case EventTransferFailed:
		if _, err := s.transactions.MarkStatus(d.Reference, d.Status); err != nil {
			return err
		}
		log.Printf("Transfer transaction with reference: %s failed", d.Reference)

	case EventTransferReversed:
		if _, err := s.transactions.MarkStatus(d.Reference, d.Status); err != nil {
			return err
		}
		log.Printf("Transfer transaction with reference: %s was reversed", d.Reference)

	default:
		log.Printf("Webhook received with unknown event: %s", event.Event)
	}

	return nil
}

// ListTransfers returns the user's transfer transactions, newest first.
func (s *Service) ListTransfers(userID uint) ([]models.Transaction, error) {
	return s.transactions.ListByUserAndKind(userID, models.TransactionKindTransfer)
}

// GetTransferByID returns a snapshot of one transaction.
func (s *Service) GetTransferByID(transactionID uint) (*models.Transaction, error) {
	return s.transactions.GetByID(transactionID)
}

// matchTransfer validates a gateway-reported transfer event against the
// stored transaction: amount, currency and transfer code must all match.
func matchTransfer(txn *models.Transaction, amount int64, currency, code string) error {
	if txn.Amount != amount {
		return apperrors.BadRequest("Transaction mismatch")
	}
	if txn.Currency != currency || txn.Code != code {
		return apperrors.BadRequest("Invalid transaction")
	}
	return nil
}

func parseWalletID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("Invalid request")
	}
	return uint(id), nil
}
