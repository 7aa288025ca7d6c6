package transferValidator

import (
	"mopay/middleware"

	"github.com/gofiber/fiber/v2"
)

type ResolveAccountRequest struct {
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
}

// ResolveAccount validates the account resolution request
func ResolveAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ResolveAccountRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.AccountNumber) != 10 {
			errors["accountNumber"] = "A 10-digit account number is required!"
		}
		if reqData.BankCode == "" {
			errors["bankCode"] = "Bank code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResolveAccount", reqData)
		return c.Next()
	}
}

type CreateTransferRecipientRequest struct {
	RecipientType          string `json:"recipientType"`
	RecipientName          string `json:"recipientName"`
	RecipientAccountNumber string `json:"recipientAccountNumber"`
	RecipientBankCode      string `json:"recipientBankCode"`
	Currency               string `json:"currency"`
	Description            string `json:"description"`
	RecipientWalletID      uint   `json:"recipientWalletId"`
}

// CreateTransferRecipient validates the transfer recipient creation request
func CreateTransferRecipient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTransferRecipientRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RecipientType == "" {
			errors["recipientType"] = "Recipient type is required!"
		}
		if reqData.RecipientName == "" {
			errors["recipientName"] = "Recipient name is required!"
		}
		if len(reqData.RecipientAccountNumber) != 10 {
			errors["recipientAccountNumber"] = "A 10-digit account number is required!"
		}
		if reqData.RecipientBankCode == "" {
			errors["recipientBankCode"] = "Bank code is required!"
		}
		if reqData.Currency == "" {
			errors["currency"] = "Currency is required!"
		}
		if reqData.RecipientWalletID == 0 {
			errors["recipientWalletId"] = "Recipient wallet id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateRecipient", reqData)
		return c.Next()
	}
}

type InitiateTransferRequest struct {
	Source               string `json:"source"`
	Reason               string `json:"reason"`
	Amount               int64  `json:"amount"` // major units
	RecipientCode        string `json:"recipientCode"`
	RecipientAccountNo   string `json:"recipientAccountNo"`
	RecipientBankName    string `json:"recipientBankName"`
	RecipientAccountName string `json:"recipientAccountName"`
	RecipientWalletID    string `json:"recipientWalletId"`
}

// InitiateTransfer validates the transfer initiation request
func InitiateTransfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitiateTransferRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Source == "" {
			errors["source"] = "Source is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.RecipientCode == "" {
			errors["recipientCode"] = "Recipient code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitiateTransfer", reqData)
		return c.Next()
	}
}

type FinalizeTransferRequest struct {
	TransferCode string `json:"transferCode"`
	OTP          string `json:"otp"`
}

// FinalizeTransfer validates the transfer finalization request
func FinalizeTransfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(FinalizeTransferRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TransferCode == "" {
			errors["transferCode"] = "Transfer code is required!"
		}
		if reqData.OTP == "" {
			errors["otp"] = "OTP is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFinalizeTransfer", reqData)
		return c.Next()
	}
}
