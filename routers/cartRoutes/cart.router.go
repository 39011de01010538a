package cartRoutes

import (
	controller "techtrek/controllers/cart"
	"techtrek/middleware"
	validator "techtrek/validators/cart"

	"github.com/gofiber/fiber/v2"
)

// SetupCartRoutes guards only the cart view with a login; adding, removing
// and checkout stay open to anonymous sessions.
func SetupCartRoutes(app *fiber.App, ctl *controller.Controller, loadUser middleware.UserLoader) {
	app.Get("/cart", middleware.RequireLogin(loadUser), ctl.CartPage)
	app.Post("/add-to-cart", validator.AddToCart(), ctl.AddToCart)
	app.Post("/remove-from-cart", validator.RemoveFromCart(), ctl.RemoveFromCart)
	app.Post("/checkout", ctl.Checkout)
}
