package middleware

import (
	"errors"

	"techtrek/utils"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// Render emits the view-model for view: its data plus the pending flashes.
func Render(c *fiber.Ctx, statusCode int, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["view"] = view
	data["flashes"] = PopFlashes(c)
	_, data["authenticated"] = CurrentUserID(c)
	return JsonResponse(c, statusCode, statusCode < fiber.StatusBadRequest, view, data)
}

// ErrorHandler answers unhandled errors without leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code != fiber.StatusInternalServerError {
			message = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		utils.Log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return JsonResponse(c, code, false, message, nil)
}
