package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Flashes are stored as a JSON string so any session storage can encode them.
func loadFlashes(c *fiber.Ctx) []Flash {
	raw, _ := Session(c).Get(flashKey).(string)
	if raw == "" {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}

// AddFlash queues a message for the next rendered view.
func AddFlash(c *fiber.Ctx, category, message string) {
	flashes := append(loadFlashes(c), Flash{Category: category, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	Session(c).Set(flashKey, string(raw))
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(c *fiber.Ctx) []Flash {
	flashes := loadFlashes(c)
	Session(c).Delete(flashKey)
	if flashes == nil {
		flashes = []Flash{}
	}
	return flashes
}

// RedirectWithFlash queues a flash and redirects to location.
func RedirectWithFlash(c *fiber.Ctx, location, category, message string) error {
	AddFlash(c, category, message)
	return c.Redirect(location, fiber.StatusFound)
}
