package authRoutes

import (
	authControllers "techtrek/controllers/auth"
	authValidators "techtrek/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctl *authControllers.Controller, limit fiber.Handler) {
	app.Get("/register", ctl.RegisterPage)
	app.Post("/register", limit, authValidators.Register(), ctl.Register)
	app.Get("/login", ctl.LoginPage)
	app.Post("/login", limit, authValidators.Login(), ctl.Login)
	app.Get("/logout", ctl.Logout)
}
