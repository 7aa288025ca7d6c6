package authRoutes

import (
	authController "mopay/controllers/auth"
	authValidator "mopay/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, auth *authController.AuthController) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), auth.Signup)
	authGroup.Post("/verify-otp", authValidator.VerifyOTP(), auth.VerifyOTP)
	authGroup.Post("/login", authValidator.Login(), auth.Login)
}
