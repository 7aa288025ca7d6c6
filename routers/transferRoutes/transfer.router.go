package transferRoutes

import (
	"mopay/config"
	paystackController "mopay/controllers/paystack"
	"mopay/middleware"
	transferValidator "mopay/validators/transfer"

	"github.com/gofiber/fiber/v2"
)

func SetupTransferRoutes(app *fiber.App, cfg *config.Config, paystack *paystackController.PaystackController) {
	transferGroup := app.Group("/transfer")

	transferGroup.Get("/banks", middleware.JWTMiddleware(cfg), paystack.ListBanks)
	transferGroup.Post("/resolve-account", transferValidator.ResolveAccount(), middleware.JWTMiddleware(cfg), paystack.ResolveAccountNumber)
	transferGroup.Post("/recipient", transferValidator.CreateTransferRecipient(), middleware.JWTMiddleware(cfg), paystack.CreateTransferRecipient)
	transferGroup.Get("/recipient/:recipientCode", middleware.JWTMiddleware(cfg), paystack.GetTransferRecipient)
	transferGroup.Post("/initiate", transferValidator.InitiateTransfer(), middleware.JWTMiddleware(cfg), paystack.InitiateTransfer)
	transferGroup.Post("/finalize", transferValidator.FinalizeTransfer(), middleware.JWTMiddleware(cfg), paystack.FinalizeTransfer)
	transferGroup.Get("/verify/:reference", middleware.JWTMiddleware(cfg), paystack.VerifyTransfer)
	transferGroup.Get("/", middleware.JWTMiddleware(cfg), paystack.ListTransfers)
	transferGroup.Get("/:transactionId", middleware.JWTMiddleware(cfg), paystack.GetTransferByTransactionID)

	// Gateway push; authenticated by signature, not by JWT.
	transferGroup.Post("/webhook", middleware.PaystackWebhookAuth(cfg.PaystackSecretKey), paystack.TransferWebhook)
}
