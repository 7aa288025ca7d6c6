package walletValidator

import (
	"mopay/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateWalletRequest struct {
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
}

// CreateWallet validates the wallet creation request
func CreateWallet() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateWalletRequest)

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

		c.Locals("validatedCreateWallet", reqData)
		return c.Next()
	}
}
