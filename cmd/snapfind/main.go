package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/sync/errgroup"

	"snapfind/internal/config"
	"snapfind/internal/http/handlers"
	"snapfind/internal/kv"
	applog "snapfind/internal/log"
	"snapfind/internal/repos"
)

func main() {
	cfg := config.Load()
	l := applog.Logger()

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			l.Warn().Err(err).Str("file", cfg.Log.File).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
			applog.Setup(out)
			l = applog.Logger()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// ---------- Storage ----------
	var store kv.Store
	switch cfg.Store.Driver {
	case "memory":
		store = kv.NewMemory()
	case "redis":
		rdb, err := kv.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			l.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable")
		}
		defer rdb.Close()
		store = rdb
	default:
		db, err := repos.OpenDB(cfg.Store.DSN)
		if err != nil {
			l.Fatal().Err(err).Str("dsn", cfg.Store.DSN).Msg("open db")
		}
		defer db.Close()
		kvRepo := repos.NewKVRepo(db)
		store = kvRepo
		if cfg.Store.TTL > 0 {
			g.Go(func() error { return purgeLoop(ctx, kvRepo, cfg.Store.TTL) })
		}
	}

	// ---------- Templates & app ----------
	engine := html.New(cfg.Server.Templates, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard; analyze bodies carry base64 images
	app.Server().MaxRequestBodySize = cfg.Server.BodyLimit

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New(helmet.Config{
		// dashboard shows the captured photo inline as a data: URL
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		ContextKey:     "csrf",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		// JSON API is same-origin fetch with no form token
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	l.Info().Str("dir", cfg.Server.Static).Msg("static /static")
	app.Static("/static", cfg.Server.Static)

	// ---------- App handlers ----------
	deps := handlers.NewDeps(store, handlers.NewResolver(cfg, store), cfg)
	handlers.Routes(app, deps)

	g.Go(func() error {
		l.Info().Str("port", cfg.Server.Port).Msg("listening")
		return app.Listen(":" + cfg.Server.Port)
	})
	g.Go(func() error {
		<-ctx.Done()
		l.Info().Msg("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		l.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// purgeLoop drops transient sqlite rows nobody has touched within ttl.
func purgeLoop(ctx context.Context, r *repos.KVRepo, ttl time.Duration) error {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		n, err := r.PurgeBefore(time.Now().Add(-ttl))
		if err != nil {
			applog.Warn(nil, "store.purge.fail", err, nil)
		} else if n > 0 {
			applog.Info(nil, "store.purge", map[string]any{"rows": n})
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
