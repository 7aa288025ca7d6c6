package authController

import (
	"log"
	"time"

	"mopay/config"
	"mopay/middleware"
	"mopay/models"
	"mopay/utils"
	authValidator "mopay/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	Cfg *config.Config
	DB  *gorm.DB
}

func NewAuthController(cfg *config.Config, db *gorm.DB) *AuthController {
	return &AuthController{Cfg: cfg, DB: db}
}

func (a *AuthController) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check if email already exists
	if err := a.DB.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if mobile already exists
	if err := a.DB.Where("mobile = ?", reqData.Mobile).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Mobile number is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), a.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     reqData.Email,
		Mobile:    reqData.Mobile,
		Password:  string(hashedPassword),
	}

	if err := a.DB.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	code := utils.GenerateOTP()
	otp := models.OTP{
		UserID:    newUser.ID,
		Email:     newUser.Email,
		Mobile:    newUser.Mobile,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := a.DB.Create(&otp).Error; err != nil {
		log.Printf("Error saving OTP to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	go func(email, code string) {
		if err := utils.SendOTPEmail(a.Cfg, code, email); err != nil {
			log.Printf("Error sending OTP email to %s: %v", email, err)
		}
	}(newUser.Email, code)

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Verify the OTP sent to your email.", newUser)
}

func (a *AuthController) VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var otp models.OTP
	if err := a.DB.
		Where("email = ? AND code = ? AND is_used = false AND is_deleted = false", reqData.Email, reqData.Code).
		Order("created_at desc").First(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid OTP!", nil)
	}

	if otp.ExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP has expired!", nil)
	}

	otp.IsUsed = true
	if err := a.DB.Save(&otp).Error; err != nil {
		log.Printf("Error marking OTP used: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	if err := a.DB.Model(&models.User{}).Where("id = ?", otp.UserID).
		Updates(map[string]interface{}{"is_email_verified": true, "is_mobile_verified": true}).Error; err != nil {
		log.Printf("Error updating user verification: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account verified successfully.", nil)
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	var result *gorm.DB

	// Retrieve user by email or mobile
	if reqData.Email != "" {
		result = a.DB.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	} else {
		result = a.DB.Where("mobile = ? AND is_deleted = ?", reqData.Mobile, false).First(&user)
	}

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsMobileVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account not verified!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong Password", nil)
	}

	user.LastLogin = time.Now()
	if err := a.DB.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	token, err := middleware.GenerateJWT(a.Cfg, user.ID, user.Email, user.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}
