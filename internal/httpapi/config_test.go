package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetMaxBodyBytes(t *testing.T) {
	SetMaxBodyBytes(64)
	if maxBodyBytes != 64 {
		t.Fatalf("maxBodyBytes=%d", maxBodyBytes)
	}
	SetMaxBodyBytes(-1)
	if maxBodyBytes != DefaultMaxBodyBytes {
		t.Fatalf("non-positive must restore default, got %d", maxBodyBytes)
	}
}

func TestCORSDisabledByDefault(t *testing.T) {
	SetCORSOptions(false, []string{"http://x"}, nil, nil)
	if corsMiddleware() != nil {
		t.Fatalf("middleware built while disabled")
	}
}

func TestCORSExposesAttemptsHeader(t *testing.T) {
	SetCORSOptions(true, nil, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	h := corsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(attemptsHeader, "1")
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/completions", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); got == "" {
		t.Fatalf("no exposed headers")
	}
}
