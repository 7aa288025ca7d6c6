package main

import (
	"log"

	"mopay/config"
	authController "mopay/controllers/auth"
	paystackController "mopay/controllers/paystack"
	walletController "mopay/controllers/wallet"
	"mopay/database"
	"mopay/paystack"
	"mopay/repository"
	authRoutes "mopay/routers/authRoutes"
	paymentRoutes "mopay/routers/paymentRoutes"
	transferRoutes "mopay/routers/transferRoutes"
	walletRoutes "mopay/routers/walletRoutes"
	"mopay/services/payment"
	"mopay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	users := repository.NewUserRepository(db)
	wallets := repository.NewWalletRepository(db)
	transactions := repository.NewTransactionRepository(db)

	gateway := paystack.NewClient(cfg)
	paymentService := payment.NewService(gateway, users, wallets, transactions)

	auth := authController.NewAuthController(cfg, db)
	wallet := walletController.NewWalletController(users, wallets)
	gatewayCtrl := paystackController.NewPaystackController(paymentService, users)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,x-paystack-signature",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, auth)
	walletRoutes.SetupWalletRoutes(app, cfg, wallet)
	paymentRoutes.SetupPaymentRoutes(app, cfg, gatewayCtrl)
	transferRoutes.SetupTransferRoutes(app, cfg, gatewayCtrl)

	utils.InitializeOTPCleanupScheduler(db)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
