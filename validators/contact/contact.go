package contactValidator

import (
	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

// Contact parses the contact form into locals "validatedContact". Field
// rules are applied by the contact service.
func Contact() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.ContactRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"form": "Invalid form submission!"})
		}

		c.Locals("validatedContact", reqData)
		return c.Next()
	}
}
