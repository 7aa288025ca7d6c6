package paystackController

import (
	"strconv"

	"mopay/middleware"
	"mopay/repository"
	"mopay/services/payment"
	paymentValidator "mopay/validators/payment"
	transferValidator "mopay/validators/transfer"

	"github.com/gofiber/fiber/v2"
)

type PaystackController struct {
	Service *payment.Service
	Users   *repository.UserRepository
}

func NewPaystackController(service *payment.Service, users *repository.UserRepository) *PaystackController {
	return &PaystackController{Service: service, Users: users}
}

// CreateCustomer registers the authenticated user as a gateway customer.
func (p *PaystackController) CreateCustomer(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	user, err := p.Users.GetByID(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	data, err := p.Service.CreateCustomer(c.UserContext(), user)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer created!", data)
}

// InitializePayment starts a pay-in for the authenticated user.
func (p *PaystackController) InitializePayment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedInitializePayment").(*paymentValidator.InitializePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := p.Users.GetByID(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	data, err := p.Service.InitializePayment(c.UserContext(), user, payment.InitializePaymentInput{
		Amount:      reqData.Amount,
		Email:       reqData.Email,
		Name:        reqData.Name,
		CallbackURL: reqData.CallbackURL,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initialized!", data)
}

// VerifyPayment polls the gateway for a pay-in by reference.
func (p *PaystackController) VerifyPayment(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing transaction reference", nil)
	}

	txn, err := p.Service.VerifyPayment(c.UserContext(), reference)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified!", txn)
}

// ListBanks returns the banks supported for the default currency.
func (p *PaystackController) ListBanks(c *fiber.Ctx) error {
	banks, err := p.Service.ListBanks(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Banks fetched!", banks)
}

// ResolveAccountNumber resolves a bank account number to the holder's name.
func (p *PaystackController) ResolveAccountNumber(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResolveAccount").(*transferValidator.ResolveAccountRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	data, err := p.Service.ResolveAccountNumber(c.UserContext(), reqData.AccountNumber, reqData.BankCode)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account resolved!", data)
}

// CreateTransferRecipient registers a recipient wallet on the gateway.
func (p *PaystackController) CreateTransferRecipient(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateRecipient").(*transferValidator.CreateTransferRecipientRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	data, err := p.Service.CreateTransferRecipient(c.UserContext(), payment.CreateRecipientInput{
		Type:          reqData.RecipientType,
		Name:          reqData.RecipientName,
		AccountNumber: reqData.RecipientAccountNumber,
		BankCode:      reqData.RecipientBankCode,
		Currency:      reqData.Currency,
		Description:   reqData.Description,
		WalletID:      reqData.RecipientWalletID,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfer recipient created!", data)
}

// GetTransferRecipient fetches a recipient from the gateway by code.
func (p *PaystackController) GetTransferRecipient(c *fiber.Ctx) error {
	recipientCode := c.Params("recipientCode")
	if recipientCode == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing recipientCode parameter!", nil)
	}

	data, err := p.Service.GetTransferRecipient(c.UserContext(), recipientCode)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfer recipient fetched!", data)
}

// InitiateTransfer starts a transfer for the authenticated user.
func (p *PaystackController) InitiateTransfer(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedInitiateTransfer").(*transferValidator.InitiateTransferRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	data, err := p.Service.InitiateTransfer(c.UserContext(), userID, payment.InitiateTransferInput{
		Source:               reqData.Source,
		Reason:               reqData.Reason,
		Amount:               reqData.Amount,
		RecipientCode:        reqData.RecipientCode,
		RecipientAccountNo:   reqData.RecipientAccountNo,
		RecipientBankName:    reqData.RecipientBankName,
		RecipientAccountName: reqData.RecipientAccountName,
		RecipientWalletID:    reqData.RecipientWalletID,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfer initiated!", data)
}

// FinalizeTransfer completes an OTP-gated transfer.
func (p *PaystackController) FinalizeTransfer(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFinalizeTransfer").(*transferValidator.FinalizeTransferRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	data, err := p.Service.FinalizeTransfer(c.UserContext(), reqData.TransferCode, reqData.OTP)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfer finalized!", data)
}

// VerifyTransfer polls the gateway for a transfer by reference.
func (p *PaystackController) VerifyTransfer(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing transaction reference", nil)
	}

	txn, err := p.Service.VerifyTransfer(c.UserContext(), reference)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfer verified!", txn)
}

// TransferWebhook handles authenticated gateway pushes. All syntactically
// valid deliveries are acknowledged with 200, even when the event is a no-op.
func (p *PaystackController) TransferWebhook(c *fiber.Ctx) error {
	var event payment.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request!", nil)
	}

	if err := p.Service.HandleTransferWebhook(c.UserContext(), event); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook received.", nil)
}

// ListTransfers returns the authenticated user's transfer transactions.
func (p *PaystackController) ListTransfers(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	txns, err := p.Service.ListTransfers(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfers fetched!", txns)
}

// GetTransferByTransactionID returns one transaction by its id.
func (p *PaystackController) GetTransferByTransactionID(c *fiber.Ctx) error {
	raw := c.Params("transactionId")

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing transaction id", nil)
	}

	txn, err := p.Service.GetTransferByID(uint(id))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transfer fetched!", txn)
}
