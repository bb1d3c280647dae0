package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"snapfind/internal/validate"
)

// ensureSID returns the browser's session id, minting one on first visit.
// History and hand-off slots are keyed by it.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if _, ok := validate.ID(sid); ok {
		return sid
	}
	sid = uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
	})
	return sid
}
