package paymentValidator

import (
	"strings"

	"mopay/middleware"

	"github.com/gofiber/fiber/v2"
)

type InitializePaymentRequest struct {
	Amount      int64  `json:"amount"` // major units
	Email       string `json:"email"`
	Name        string `json:"name"`
	CallbackURL string `json:"callbackUrl"`
}

// InitializePayment validates the pay-in initialization request
func InitializePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitializePaymentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.Email == "" || !strings.Contains(reqData.Email, "@") {
			errors["email"] = "A valid email is required!"
		}
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitializePayment", reqData)
		return c.Next()
	}
}
