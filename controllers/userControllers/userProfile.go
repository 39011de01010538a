package userController

import (
	"errors"
	"mime/multipart"

	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Profile *services.ProfileService
}

func New(profile *services.ProfileService) *Controller {
	return &Controller{Profile: profile}
}

func (ctl *Controller) ProfilePage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return middleware.Render(c, fiber.StatusOK, "profile", fiber.Map{"user": user})
}

func (ctl *Controller) EditProfilePage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return middleware.Render(c, fiber.StatusOK, "edit_profile", fiber.Map{"user": user})
}

// UpdateProfile handles both profile forms; back is where failures return to.
func (ctl *Controller) UpdateProfile(back string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		reqData, ok := c.Locals("validatedProfile").(*services.ProfileUpdate)
		if !ok {
			return middleware.RedirectWithFlash(c, back, middleware.FlashDanger, "Invalid form submission!")
		}
		avatar, _ := c.Locals("validatedAvatar").(*multipart.FileHeader)

		_, err := ctl.Profile.Update(c.UserContext(), user.ID, *reqData, avatar)
		switch {
		case err == nil:
			return middleware.RedirectWithFlash(c, "/profile", middleware.FlashSuccess, "Profile updated successfully!")
		case errors.Is(err, services.ErrFieldsRequired):
			return middleware.RedirectWithFlash(c, back, middleware.FlashWarning, "All fields are required!")
		case errors.Is(err, services.ErrConflict):
			return middleware.RedirectWithFlash(c, back, middleware.FlashDanger, "That email is already registered to another account!")
		default:
			return middleware.RedirectWithFlash(c, back, middleware.FlashDanger, "An error occurred. Please try again.")
		}
	}
}
