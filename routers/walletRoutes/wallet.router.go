package walletRoutes

import (
	"mopay/config"
	walletController "mopay/controllers/wallet"
	"mopay/middleware"
	walletValidator "mopay/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App, cfg *config.Config, wallet *walletController.WalletController) {
	walletGroup := app.Group("/wallet")

	walletGroup.Post("/", walletValidator.CreateWallet(), middleware.JWTMiddleware(cfg), wallet.CreateWallet)
	walletGroup.Get("/", middleware.JWTMiddleware(cfg), wallet.GetWallet)
	walletGroup.Get("/balance", middleware.JWTMiddleware(cfg), wallet.GetWalletBalance)
}
