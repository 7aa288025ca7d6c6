package middleware

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"
)

// PaystackWebhookAuth verifies that an inbound webhook call genuinely comes
// from the gateway: the x-paystack-signature header must equal the hex
// HMAC-SHA512 of the raw body under the integration secret. Runs before the
// payload is parsed; no field of an unauthenticated body is ever trusted.
func PaystackWebhookAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("x-paystack-signature")
		if signature == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Request!", nil)
		}

		mac := hmac.New(sha512.New, []byte(secret))
		mac.Write(c.Body())
		expected := hex.EncodeToString(mac.Sum(nil))

		if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Request!", nil)
		}

		return c.Next()
	}
}
