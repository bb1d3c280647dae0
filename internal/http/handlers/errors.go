package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "snapfind/internal/log"
)

// ErrorHandler logs server faults and answers with a friendly message: JSON
// under /api, the notfound page elsewhere. Internal details never reach the
// client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		if code >= fiber.StatusInternalServerError && c.Path() == "/api/analyze-image" {
			msg = "Failed to analyze image"
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
