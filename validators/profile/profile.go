package profileValidator

import (
	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile parses the profile form into locals "validatedProfile" and
// the optional upload into "validatedAvatar". Failures redirect to back.
func UpdateProfile(back string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.ProfileUpdate)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.RedirectWithFlash(c, back, middleware.FlashDanger, "Invalid form submission!")
		}

		// Non-multipart bodies simply carry no upload.
		if form, err := c.MultipartForm(); err == nil {
			if files := form.File["profile_picture"]; len(files) > 0 && files[0].Filename != "" {
				c.Locals("validatedAvatar", files[0])
			}
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
