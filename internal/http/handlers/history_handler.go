package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"snapfind/internal/domain"
	applog "snapfind/internal/log"
	"snapfind/internal/services"
	"snapfind/internal/validate"
)

type HistoryHandler struct {
	History *services.HistoryService
}

// GET /api/history
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	return c.JSON(fiber.Map{"products": h.History.List(sid)})
}

// POST /api/history
func (h *HistoryHandler) Append(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var p domain.Product
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product"})
	}
	// ids must stay addressable by DELETE /api/history/:id
	if p.ID != "" {
		if _, ok := validate.ID(p.ID); !ok || strings.TrimSpace(p.ID) != p.ID {
			applog.Security(c, "validation.fail", map[string]any{"field": "id"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
		}
	}
	saved, err := h.History.Append(sid, p)
	if err != nil {
		// history is best effort; the caller still gets the product back
		applog.Error(c, "history.append.fail", err, map[string]any{"product": saved.ID})
	} else {
		applog.Audit(c, "history.append", map[string]any{"product": saved.ID})
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// DELETE /api/history/:id
func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.History.Remove(sid, id); err != nil {
		applog.Error(c, "history.delete.fail", err, map[string]any{"product": id})
	} else {
		applog.Audit(c, "history.delete", map[string]any{"product": id})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
