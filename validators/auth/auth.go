package authValidator

import (
	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

// Register parses the registration form into locals "validatedRegister".
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.RedirectWithFlash(c, "/register", middleware.FlashDanger, "Invalid form submission!")
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login parses the login form into locals "validatedLogin".
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.RedirectWithFlash(c, "/login", middleware.FlashDanger, "Invalid form submission!")
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
