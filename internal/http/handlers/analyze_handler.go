package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "snapfind/internal/log"
	"snapfind/internal/services"
	"snapfind/internal/validate"
)

type AnalyzeHandler struct {
	Analysis *services.AnalysisService
	MaxBytes int
}

type analyzeRequest struct {
	Image string `json:"image"`
}

// POST /api/analyze-image
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if body := c.Body(); len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No image data provided"})
	} else if err := json.Unmarshal(body, &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	img, err := validate.ImageBase64(req.Image, h.MaxBytes)
	switch {
	case errors.Is(err, validate.ErrNoImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No image data provided"})
	case err != nil:
		applog.Security(c, "validation.fail", map[string]any{"field": "image", "reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid image data"})
	}

	res := h.Analysis.Analyze(c.UserContext(), img)
	applog.Info(c, "analyze.done", map[string]any{
		"bytes":    len(img),
		"detected": res.DetectedObject,
		"degraded": res.Warning != "",
	})
	return c.JSON(res)
}
