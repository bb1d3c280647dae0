package handlers

import (
	"errors"
	"html/template"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"snapfind/internal/catalog"
	"snapfind/internal/domain"
	applog "snapfind/internal/log"
	"snapfind/internal/services"
	"snapfind/internal/validate"
)

type PageHandler struct {
	Analysis *services.AnalysisService
	History  *services.HistoryService
	Handoff  *services.HandoffService
	MaxBytes int
}

// GET /
func (h *PageHandler) Landing(c *fiber.Ctx) error {
	ensureSID(c)
	return render(c, "landing", fiber.Map{
		"Known": catalog.Keys(),
		"Err":   c.Query("err"),
	})
}

// POST /capture
// Accepts a multipart file "image" or a base64/data URL field "image_data".
func (h *PageHandler) Capture(c *fiber.Ctx) error {
	sid := ensureSID(c)
	img, err := h.readUpload(c)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "image", "reason": err.Error()})
		msg := "Please choose an image to analyze."
		if !errors.Is(err, validate.ErrNoImage) {
			msg = "That file does not look like a supported image."
		}
		c.Status(fiber.StatusBadRequest)
		return render(c, "landing", fiber.Map{"Known": catalog.Keys(), "Err": msg})
	}
	if err := h.Handoff.SetCaptured(sid, validate.DataURL(img)); err != nil {
		return err
	}
	applog.Info(c, "capture.stored", map[string]any{"bytes": len(img)})
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *PageHandler) readUpload(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("image"); err == nil {
		if h.MaxBytes > 0 && fh.Size > int64(h.MaxBytes) {
			return nil, validate.ErrImageTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			return nil, validate.ErrNoImage
		}
		if !validate.IsImage(b) {
			return nil, validate.ErrBadImage
		}
		return b, nil
	}
	b, err := validate.ImageBase64(c.FormValue("image_data"), h.MaxBytes)
	if err != nil {
		return nil, err
	}
	if !validate.IsImage(b) {
		return nil, validate.ErrBadImage
	}
	return b, nil
}

// GET /dashboard
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	sid := ensureSID(c)

	if p, ok := h.Handoff.TakeSelected(sid); ok {
		return render(c, "dashboard", productView(p, "", "", ""))
	}

	dataURL, ok := h.Handoff.Captured(sid)
	if !ok {
		return render(c, "dashboard", fiber.Map{"Empty": true})
	}
	img, err := validate.ImageBase64(dataURL, h.MaxBytes)
	if err != nil {
		// slot content we wrote ourselves; drop it rather than loop on it
		applog.Warn(c, "capture.corrupt", err, nil)
		_ = h.Handoff.ClearCaptured(sid)
		return render(c, "dashboard", fiber.Map{"Empty": true})
	}

	res := h.Analysis.Analyze(c.UserContext(), img)
	saved, err := h.History.Append(sid, res.Product)
	if err != nil {
		applog.Error(c, "history.append.fail", err, map[string]any{"product": saved.ID})
	} else {
		applog.Audit(c, "history.append", map[string]any{"product": saved.ID})
	}
	return render(c, "dashboard", productView(saved, dataURL, res.DetectedObject, res.Warning))
}

// POST /dashboard/new
func (h *PageHandler) NewImage(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Handoff.ClearCaptured(sid); err != nil {
		applog.Error(c, "capture.clear.fail", err, nil)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// GET /history
func (h *PageHandler) HistoryPage(c *fiber.Ctx) error {
	sid := ensureSID(c)
	items := h.History.List(sid)
	views := make([]fiber.Map, 0, len(items))
	for _, p := range items {
		views = append(views, fiber.Map{
			"ID":          p.ID,
			"Title":       p.Title,
			"Description": p.Description,
			"Categories":  p.Categories,
			"ImageURL":    imageOrPlaceholder(p.ImageURL),
		})
	}
	return render(c, "history", fiber.Map{"Items": views})
}

// POST /history/:id/view
func (h *PageHandler) ViewFromHistory(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return notFound(c, "That item is not in your history")
	}
	p, ok := h.History.Get(sid, id)
	if !ok {
		return notFound(c, "That item is not in your history")
	}
	if err := h.Handoff.Select(sid, p); err != nil {
		return err
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// POST /history/:id/delete
func (h *PageHandler) DeleteFromHistory(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Redirect("/history", fiber.StatusSeeOther)
	}
	if err := h.History.Remove(sid, id); err != nil {
		applog.Error(c, "history.delete.fail", err, map[string]any{"product": id})
	} else {
		applog.Audit(c, "history.delete", map[string]any{"product": id})
	}
	return c.Redirect("/history", fiber.StatusSeeOther)
}

func productView(p domain.Product, image, detected, warning string) fiber.Map {
	related := make([]fiber.Map, 0, len(p.RelatedItems))
	for _, r := range p.RelatedItems {
		related = append(related, fiber.Map{
			"ID":          r.ID,
			"Title":       r.Title,
			"Description": r.Description,
			"Price":       r.Price,
			"ImageURL":    imageOrPlaceholder(r.ImageURL),
		})
	}
	if warning == "" {
		warning = p.Warning
	}
	m := fiber.Map{
		"Product":  p,
		"Related":  related,
		"Detected": detected,
		"Warning":  warning,
	}
	// data: URLs are filtered by html/template unless marked safe; we only
	// ever store ones produced by validate.DataURL.
	if strings.HasPrefix(image, "data:image/") {
		m["Image"] = template.URL(image)
	}
	return m
}

func imageOrPlaceholder(u string) string {
	if u == "" {
		return catalog.PlaceholderImage
	}
	return u
}
