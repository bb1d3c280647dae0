package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "snapfind/internal/log"
)

// Routes mounts the JSON API and the pages on app. Global middleware (request
// id, access log, CSRF) is installed by the caller.
func Routes(app *fiber.App, d *Deps) {
	var analyzeGuard []fiber.Handler
	if d.AnalyzeLimit > 0 {
		analyzeGuard = append(analyzeGuard, limiter.New(limiter.Config{
			Max:        d.AnalyzeLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP() + "|analyze"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.analyze.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}))
	}

	// API
	api := app.Group("/api")
	api.Post("/analyze-image", append(analyzeGuard, d.AnalyzeHandler.Analyze)...)
	api.Get("/history", d.HistoryHandler.List)
	api.Post("/history", d.HistoryHandler.Append)
	api.Delete("/history/:id", d.HistoryHandler.Delete)

	// Pages
	app.Get("/", d.PageHandler.Landing)
	app.Post("/capture", append(analyzeGuard, d.PageHandler.Capture)...)
	app.Get("/dashboard", d.PageHandler.Dashboard)
	app.Post("/dashboard/new", d.PageHandler.NewImage)
	app.Get("/history", d.PageHandler.HistoryPage)
	app.Post("/history/:id/view", d.PageHandler.ViewFromHistory)
	app.Post("/history/:id/delete", d.PageHandler.DeleteFromHistory)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return notFound(c, "Page not found")
	})
}
