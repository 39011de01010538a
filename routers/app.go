package routers

import (
	"os"

	"techtrek/config"
	authController "techtrek/controllers/auth"
	cartController "techtrek/controllers/cart"
	catalogController "techtrek/controllers/catalog"
	contactController "techtrek/controllers/contact"
	userController "techtrek/controllers/userControllers"
	"techtrek/events"
	"techtrek/middleware"
	"techtrek/routers/authRoutes"
	"techtrek/routers/cartRoutes"
	"techtrek/routers/contactRoutes"
	"techtrek/routers/courseRoutes"
	userProfileRoutes "techtrek/routers/userRoutes"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Deps are the collaborators every request shares. Storage and Publisher
// may be nil.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Storage   fiber.Storage
	Publisher events.Publisher
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// NewApp wires services, controllers and routes into a Fiber app.
func NewApp(deps Deps) *fiber.App {
	cfg := deps.Config
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}

	app := fiber.New(fiber.Config{
		AppName:      "techtrek",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})

	app.Use(recover.New())
	if deps.AccessLog {
		// Enable the built-in logger middleware to log all requests
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
			Output: os.Stdout,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type",
	}))

	// Serve static files, uploaded avatars included
	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}

	app.Use(middleware.Sessions(middleware.NewSessionStore(middleware.SessionConfig{
		Expiration:   cfg.SessionExpiration,
		CookieSecure: cfg.CookieSecure,
		Storage:      deps.Storage,
	})))

	authService := services.NewAuthService(deps.DB, cfg.SaltRound, publisher)
	profileService := services.NewProfileService(deps.DB, cfg.UploadDir, cfg.AvatarSniffContent)
	catalogService := services.NewCatalogService(deps.DB)
	cartService := services.NewCartService(deps.DB)
	contactService := services.NewContactService(deps.DB, publisher)

	authRoutes.SetupAuthRoutes(app, authController.New(authService), middleware.RateLimit(cfg.RateLimitMax))
	userProfileRoutes.SetupUserRoutes(app, userController.New(profileService))
	courseRoutes.SetupCourseRoutes(app, catalogController.New(catalogService))
	cartRoutes.SetupCartRoutes(app, cartController.New(cartService), profileService.View)
	contactRoutes.SetupContactRoutes(app, contactController.New(contactService), middleware.RateLimit(cfg.RateLimitMax))

	return app
}
