package contactRoutes

import (
	controller "techtrek/controllers/contact"
	validator "techtrek/validators/contact"

	"github.com/gofiber/fiber/v2"
)

func SetupContactRoutes(app *fiber.App, ctl *controller.Controller, limit fiber.Handler) {
	app.Get("/contact", ctl.ContactPage)
	app.Post("/contact", limit, validator.Contact(), ctl.Submit)
}
