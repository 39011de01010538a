package courseRoutes

import (
	controllers "techtrek/controllers/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the landing page, informational pages and course pages
func SetupCourseRoutes(app *fiber.App, ctl *controllers.Controller) {
	app.Get("/", ctl.Home)

	for _, page := range controllers.StaticPages {
		app.Get("/"+page, ctl.Page(page))
	}
	// Blog and careers accept form posts as well.
	for _, page := range []string{"blog", "careers"} {
		app.Get("/"+page, ctl.Page(page))
		app.Post("/"+page, ctl.Page(page))
	}

	for _, slug := range controllers.CoursePages {
		app.Get("/"+slug, ctl.Page(slug))
	}
}
