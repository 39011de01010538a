package catalogController

import (
	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

// StaticPages are informational views without data.
var StaticPages = []string{"about", "terms", "accessibility", "privacy", "pricing"}

// CoursePages are the per-course landing views, served at /<slug>.
var CoursePages = []string{"python", "react", "webdev", "cpp", "js", "sql", "ai", "datascience"}

type Controller struct {
	Catalog *services.CatalogService
}

func New(catalog *services.CatalogService) *Controller {
	return &Controller{Catalog: catalog}
}

func (ctl *Controller) Home(c *fiber.Ctx) error {
	courses, err := ctl.Catalog.FeaturedCourses(c.UserContext(), services.DefaultCatalogLimit)
	if err != nil {
		return err
	}
	testimonials, err := ctl.Catalog.Testimonials(c.UserContext(), services.DefaultCatalogLimit)
	if err != nil {
		return err
	}
	return middleware.Render(c, fiber.StatusOK, "index", fiber.Map{
		"featured_courses": courses,
		"testimonials":     testimonials,
	})
}

// Page renders the named view.
func (ctl *Controller) Page(view string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return middleware.Render(c, fiber.StatusOK, view, nil)
	}
}
