package middleware

import (
	"errors"

	"mopay/apperrors"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errs)
}

// ErrorResponse renders a service error onto the JSON envelope, keeping the
// stable status kind alongside the message.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return JsonResponse(c, appErr.Status, false, appErr.Message, fiber.Map{"kind": appErr.Kind})
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while processing your request. Please try again.", nil)
}
