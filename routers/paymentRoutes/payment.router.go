package paymentRoutes

import (
	"mopay/config"
	paystackController "mopay/controllers/paystack"
	"mopay/middleware"
	paymentValidator "mopay/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App, cfg *config.Config, paystack *paystackController.PaystackController) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/customer", middleware.JWTMiddleware(cfg), paystack.CreateCustomer)
	paymentGroup.Post("/initialize", paymentValidator.InitializePayment(), middleware.JWTMiddleware(cfg), paystack.InitializePayment)
	paymentGroup.Get("/verify", middleware.JWTMiddleware(cfg), paystack.VerifyPayment)
}
