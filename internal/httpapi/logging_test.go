package httpapi

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { zlog = nil })
	return &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":        LevelOff,
		"off":     LevelOff,
		"error":   LevelError,
		" INFO ":  LevelInfo,
		"debug":   LevelDebug,
		"1":       LevelDebug,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevelPrecedence(t *testing.T) {
	r := httptest.NewRequest("POST", "/x?log=1", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query must win over header: %v", got)
	}
	r = httptest.NewRequest("POST", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	SetDefaultLogLevel("info")
	defer SetDefaultLogLevel("")
	if got := requestLogLevel(httptest.NewRequest("POST", "/x", nil)); got != LevelInfo {
		t.Fatalf("default level=%v", got)
	}
}

func TestOpLogFinished(t *testing.T) {
	buf := captureLogs(t)
	r := httptest.NewRequest("POST", "/api/v1/chat/completions", nil)
	r.Header.Set("X-Log-Level", "error")

	o := beginOp(r, "chat")
	o.started(map[string]any{"messages": 1})
	o.finished(200, nil)
	if buf.Len() != 0 {
		t.Fatalf("logged at error level on success: %s", buf.String())
	}
	o.finished(502, errors.New("retries exhausted"))
	if !strings.Contains(buf.String(), `"status":502`) || !strings.Contains(buf.String(), "chat end") {
		t.Fatalf("failure not logged: %s", buf.String())
	}

	buf.Reset()
	r.Header.Set("X-Log-Level", "off")
	beginOp(r, "chat").finished(502, errors.New("x"))
	if buf.Len() != 0 {
		t.Fatalf("logged while off: %s", buf.String())
	}
}

func TestOpLogDebugGate(t *testing.T) {
	buf := captureLogs(t)
	info := beginOp(httptest.NewRequest("POST", "/x?log=info", nil), "chat")
	info.debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line emitted at info: %s", buf.String())
	}
	dbg := beginOp(httptest.NewRequest("POST", "/x?log=debug", nil), "chat")
	dbg.debug().Int("index", 0).Msg("chat choice")
	if !strings.Contains(buf.String(), `"op":"chat"`) || !strings.Contains(buf.String(), "chat choice") {
		t.Fatalf("debug line missing: %s", buf.String())
	}
}
