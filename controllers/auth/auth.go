package authController

import (
	"errors"

	"techtrek/middleware"
	"techtrek/services"
	"techtrek/utils"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Auth *services.AuthService
}

func New(auth *services.AuthService) *Controller {
	return &Controller{Auth: auth}
}

func (ctl *Controller) RegisterPage(c *fiber.Ctx) error {
	return middleware.Render(c, fiber.StatusOK, "register", nil)
}

func (ctl *Controller) Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*services.RegisterRequest)
	if !ok {
		return middleware.RedirectWithFlash(c, "/register", middleware.FlashDanger, "Invalid form submission!")
	}

	user, err := ctl.Auth.Register(c.UserContext(), *reqData)
	switch {
	case err == nil:
		utils.Log.Info().Uint("user_id", user.ID).Msg("user registered")
		return middleware.RedirectWithFlash(c, "/login", middleware.FlashSuccess, "Registration successful! Please login.")
	case errors.Is(err, services.ErrFieldsRequired):
		return middleware.RedirectWithFlash(c, "/register", middleware.FlashWarning, "All fields are required!")
	case errors.Is(err, services.ErrPasswordMismatch):
		return middleware.RedirectWithFlash(c, "/register", middleware.FlashDanger, "Passwords do not match!")
	case errors.Is(err, services.ErrWeakPassword):
		return middleware.RedirectWithFlash(c, "/register", middleware.FlashWarning,
			"Password must be at least 8 characters, include an uppercase, lowercase, number, and special character (!@#$%^&*).")
	case errors.Is(err, services.ErrConflict):
		return middleware.RedirectWithFlash(c, "/login", middleware.FlashWarning, "Email already registered. Please login!")
	default:
		return middleware.RedirectWithFlash(c, "/register", middleware.FlashDanger, "An error occurred. Please try again.")
	}
}

func (ctl *Controller) LoginPage(c *fiber.Ctx) error {
	return middleware.Render(c, fiber.StatusOK, "login", nil)
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*services.LoginRequest)
	if !ok {
		return middleware.RedirectWithFlash(c, "/login", middleware.FlashDanger, "Invalid form submission!")
	}

	user, err := ctl.Auth.Authenticate(c.UserContext(), reqData.Email, reqData.Password)
	if errors.Is(err, services.ErrAuth) {
		return middleware.RedirectWithFlash(c, "/login", middleware.FlashDanger, "Invalid email or password. Try again!")
	}
	if err != nil {
		return middleware.RedirectWithFlash(c, "/login", middleware.FlashDanger, "An error occurred. Please try again.")
	}

	if err := middleware.SignIn(c, user.ID); err != nil {
		utils.Log.Error().Err(err).Uint("user_id", user.ID).Msg("establishing session")
		return middleware.RedirectWithFlash(c, "/login", middleware.FlashDanger, "An error occurred. Please try again.")
	}
	return middleware.RedirectWithFlash(c, "/profile", middleware.FlashSuccess, "Login successful!")
}

// Logout is safe to call without an authenticated session.
func (ctl *Controller) Logout(c *fiber.Ctx) error {
	middleware.SignOut(c)
	return middleware.RedirectWithFlash(c, "/login", middleware.FlashInfo, "Logged out successfully!")
}
