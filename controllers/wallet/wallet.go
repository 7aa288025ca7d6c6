package walletController

import (
	"mopay/middleware"
	"mopay/models"
	"mopay/repository"
	walletValidator "mopay/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Users   *repository.UserRepository
	Wallets *repository.WalletRepository
}

func NewWalletController(users *repository.UserRepository, wallets *repository.WalletRepository) *WalletController {
	return &WalletController{Users: users, Wallets: wallets}
}

// CreateWallet creates the user's wallet. One wallet per user.
func (w *WalletController) CreateWallet(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCreateWallet").(*walletValidator.CreateWalletRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := w.Users.GetByID(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if _, err := w.Wallets.GetByUserID(user.ID); err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Wallet already exists!", nil)
	}

	wallet := &models.Wallet{
		OwnerID:       user.ID,
		Currency:      "NGN",
		AccountNumber: reqData.AccountNumber,
		BankCode:      reqData.BankCode,
	}
	if err := w.Wallets.Create(wallet); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Wallet created!", wallet)
}

// GetWallet returns the user's wallet including the current balance.
func (w *WalletController) GetWallet(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	wallet, err := w.Wallets.GetByUserID(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet fetched!", wallet)
}

// GetWalletBalance returns the user's current wallet balance in minor units.
func (w *WalletController) GetWalletBalance(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	wallet, err := w.Wallets.GetByUserID(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance":  wallet.Balance,
		"currency": wallet.Currency,
	})
}
