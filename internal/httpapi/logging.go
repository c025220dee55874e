package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, request logging is off.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer and attached
// to every service call context.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug", "1":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel is read once from LLAMAGATE_LOG_LEVEL.
var defaultLogLevel = parseLevel(os.Getenv("LLAMAGATE_LOG_LEVEL"))

// SetDefaultLogLevel overrides the level used when a request carries none.
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

// requestLogLevel picks the level for r: ?log= first, then X-Log-Level, then
// the process default.
func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// opLog logs one handled operation: a start line, optional debug lines and
// an end line carrying status and duration.
type opLog struct {
	op    string
	lvl   LogLevel
	rid   string
	path  string
	start time.Time
}

func beginOp(r *http.Request, op string) *opLog {
	return &opLog{
		op:    op,
		lvl:   requestLogLevel(r),
		rid:   middleware.GetReqID(r.Context()),
		path:  r.URL.Path,
		start: time.Now(),
	}
}

func (o *opLog) event(ev *zerolog.Event) *zerolog.Event {
	ev = ev.Str("op", o.op)
	if o.rid != "" {
		ev = ev.Str("request_id", o.rid)
	}
	return ev
}

// started logs the beginning of the operation at info level.
func (o *opLog) started(fields map[string]any) {
	if zlog == nil || o.lvl < LevelInfo {
		return
	}
	o.event(zlog.Info()).Str("path", o.path).Fields(fields).Msg(o.op + " start")
}

// debug returns a debug event, or nil when the request level is below debug.
// zerolog events are nil-safe.
func (o *opLog) debug() *zerolog.Event {
	if zlog == nil || o.lvl < LevelDebug {
		return nil
	}
	return o.event(zlog.Debug())
}

// finished logs completion. Failures log at error level whenever logging is
// on; successes only at info and above.
func (o *opLog) finished(status int, err error) {
	if zlog == nil || o.lvl == LevelOff {
		return
	}
	var ev *zerolog.Event
	switch {
	case err != nil:
		ev = zlog.Error().Err(err)
	case o.lvl >= LevelInfo:
		ev = zlog.Info()
	default:
		return
	}
	o.event(ev).Int("status", status).Dur("dur", time.Since(o.start)).Msg(o.op + " end")
}
