package userProfileRoutes

import (
	userProfileController "techtrek/controllers/userControllers"
	"techtrek/middleware"
	userProfileValidator "techtrek/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, ctl *userProfileController.Controller) {
	requireLogin := middleware.RequireLogin(ctl.Profile.View)

	app.Get("/profile", requireLogin, ctl.ProfilePage)
	app.Post("/profile", requireLogin, userProfileValidator.UpdateProfile("/profile"), ctl.UpdateProfile("/profile"))
	app.Get("/edit_profile", requireLogin, ctl.EditProfilePage)
	app.Post("/edit_profile", requireLogin, userProfileValidator.UpdateProfile("/edit_profile"), ctl.UpdateProfile("/edit_profile"))
}
