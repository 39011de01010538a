package middleware

import (
	"context"
	"errors"

	"techtrek/models"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "currentUser"

// UserLoader resolves the session's user id to a user row.
type UserLoader func(ctx context.Context, userID uint) (*models.User, error)

// RequireLogin redirects anonymous visitors to /login. Authenticated
// requests get the loaded user in locals, see CurrentUser.
func RequireLogin(load UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return RedirectWithFlash(c, "/login", FlashInfo, "Please log in to access this page.")
		}

		user, err := load(c.UserContext(), userID)
		if errors.Is(err, services.ErrNotFound) {
			SignOut(c)
			return RedirectWithFlash(c, "/login", FlashInfo, "Please log in to access this page.")
		}
		if err != nil {
			return err
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// CurrentUser returns the user placed by RequireLogin.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userLocal).(*models.User)
	return user, ok
}
