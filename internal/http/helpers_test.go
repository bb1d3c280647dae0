package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"snapfind/internal/config"
	"snapfind/internal/domain"
	"snapfind/internal/http/handlers"
	"snapfind/internal/kv"
	applog "snapfind/internal/log"
)

type resolverFunc func(ctx context.Context, image []byte) ([]domain.Label, error)

func (f resolverFunc) Resolve(ctx context.Context, image []byte) ([]domain.Label, error) {
	return f(ctx, image)
}

func labels(names ...string) resolverFunc {
	return func(context.Context, []byte) ([]domain.Label, error) {
		out := make([]domain.Label, 0, len(names))
		for i, n := range names {
			out = append(out, domain.Label{Label: n, Score: 1 / float64(i+1)})
		}
		return out, nil
	}
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.History.Limit = 20
	cfg.Image.MaxBytes = 1 << 20
	return cfg
}

// newTestApp mirrors the production wiring minus the global limiter and the
// access log.
func newTestApp(t *testing.T, r resolverFunc, tweak func(*handlers.Deps)) (*fiber.App, kv.Store) {
	t.Helper()
	store := kv.NewMemory()
	deps := handlers.NewDeps(store, r, testConfig())
	if tweak != nil {
		tweak(deps)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 2 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ContextKey:     "csrf",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	handlers.Routes(app, deps)
	return app, store
}

// browser keeps cookies between requests the way a real client would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	return resp
}

// tinyPNG is enough for content sniffing; the classifier is stubbed.
var tinyPNG = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.Setup(buf)
	t.Cleanup(func() { applog.Setup(os.Stdout) })

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
