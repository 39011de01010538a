package cartValidator

import (
	"strings"

	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

func AddToCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.AddToCartRequest)
		if strings.TrimSpace(c.FormValue("plan_price")) == "" {
			return middleware.RedirectWithFlash(c, "/cart", middleware.FlashDanger, "Plan price is required!")
		}
		if err := c.BodyParser(reqData); err != nil {
			return middleware.RedirectWithFlash(c, "/cart", middleware.FlashDanger, "Invalid plan price!")
		}

		c.Locals("validatedAddToCart", reqData)
		return c.Next()
	}
}

// RemoveFromCart answers 404 for an unparsable item id, like an unknown one.
func RemoveFromCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.RemoveFromCartRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
		}

		c.Locals("validatedRemoveFromCart", reqData)
		return c.Next()
	}
}
