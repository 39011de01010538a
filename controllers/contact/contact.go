package contactController

import (
	"errors"

	"techtrek/middleware"
	"techtrek/services"
	"techtrek/utils"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Contact *services.ContactService
}

func New(contact *services.ContactService) *Controller {
	return &Controller{Contact: contact}
}

func (ctl *Controller) ContactPage(c *fiber.Ctx) error {
	return middleware.Render(c, fiber.StatusOK, "contact", fiber.Map{
		"form":   services.ContactRequest{},
		"errors": map[string]string{},
	})
}

// Submit redisplays the form with field errors when validation fails.
func (ctl *Controller) Submit(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContact").(*services.ContactRequest)
	if !ok {
		return middleware.ValidationErrorResponse(c, map[string]string{"form": "Invalid form submission!"})
	}

	msg, err := ctl.Contact.Submit(c.UserContext(), *reqData)
	var verr *services.ValidationError
	switch {
	case err == nil:
		utils.Log.Info().Uint("message_id", msg.ID).Msg("contact message stored")
		return middleware.RedirectWithFlash(c, "/contact", middleware.FlashSuccess, "Thank you! Your message has been sent successfully.")
	case errors.As(err, &verr):
		return middleware.Render(c, fiber.StatusUnprocessableEntity, "contact", fiber.Map{
			"form":   reqData,
			"errors": verr.Fields,
		})
	default:
		middleware.AddFlash(c, middleware.FlashDanger, "An error occurred while sending your message. Please try again.")
		return middleware.Render(c, fiber.StatusInternalServerError, "contact", fiber.Map{
			"form":   reqData,
			"errors": map[string]string{},
		})
	}
}
