package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout)
)

// Setup redirects every event to w. Safe to call from tests.
func Setup(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w)
}

// Logger returns the underlying zerolog logger for code that wants to build
// its own events (startup, shutdown).
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	l := Logger()
	var ev *zerolog.Event
	switch level {
	case "error":
		ev = l.Error()
	case "warn":
		ev = l.Warn()
	case "info":
		ev = l.Info()
	default:
		ev = l.Log().Str("level", level)
	}
	ev = ev.Str("ts", time.Now().UTC().Format(time.RFC3339))
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
		if sid := c.Cookies("sid"); sid != "" {
			ev = ev.Str("sid", sid)
		}
	}
	ev = ev.Str("action", action)
	if err != nil {
		ev = ev.Str("err", err.Error())
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

// c may be nil for events raised outside a request.
func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("warn", c, action, err, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
