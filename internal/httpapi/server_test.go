package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"llamagate/internal/manager"
	"llamagate/pkg/types"
)

type mockService struct {
	status  types.StatusResponse
	ready   bool
	loadErr error
	chatErr error
	chatRes *manager.ChatResult
	unload  bool

	loadReq *types.LoadModelRequest
	chatReq *types.CreateChatCompletionRequest
	chatCtx context.Context
}

func (m *mockService) LoadModel(ctx context.Context, req *types.LoadModelRequest) error {
	m.loadReq = req
	return m.loadErr
}

func (m *mockService) UnloadModel(ctx context.Context) (bool, error) { return m.unload, nil }

func (m *mockService) ChatCompletion(ctx context.Context, req *types.CreateChatCompletionRequest) (*manager.ChatResult, error) {
	m.chatReq = req
	m.chatCtx = ctx
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	return m.chatRes, nil
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeStd(t *testing.T, w *httptest.ResponseRecorder) types.StandardResponse {
	t.Helper()
	var body types.StandardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v body=%q", err, w.Body.String())
	}
	return body
}

func TestLoadModelHandler(t *testing.T) {
	svc := &mockService{}
	w := postJSON(t, NewMux(svc), "/config/v1/load-model", `{"path":"/m.gguf","options":{"n_ctx":4096,"prompt_tmpl":"chatml"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if body := decodeStd(t, w); body.Message != "Model loaded successfully" || body.Error != "" {
		t.Fatalf("body=%+v", body)
	}
	if svc.loadReq.Path != "/m.gguf" || *svc.loadReq.Options.ContextSize != 4096 || *svc.loadReq.Options.PromptTemplate != "chatml" {
		t.Fatalf("decoded request=%+v", svc.loadReq)
	}
}

func TestUnloadModelHandler(t *testing.T) {
	for _, c := range []struct {
		released bool
		msg      string
	}{{true, "Model unloaded successfully"}, {false, "No model loaded"}} {
		svc := &mockService{unload: c.released}
		req := httptest.NewRequest(http.MethodPost, "/config/v1/unload-model", nil)
		w := httptest.NewRecorder()
		NewMux(svc).ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		if body := decodeStd(t, w); body.Message != c.msg {
			t.Fatalf("message=%q want %q", body.Message, c.msg)
		}
	}
}

func TestChatCompletionHandler(t *testing.T) {
	content := "Hello there"
	svc := &mockService{chatRes: &manager.ChatResult{
		Attempts: 2,
		Response: types.CreateChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  "m",
			Choices: []types.CreateChatCompletionChoice{{
				Index:        0,
				FinishReason: "stop",
				Message:      types.ChatCompletionResponseMessage{Role: "system", Content: &content},
			}},
			Usage: types.CompletionUsage{CompletionTokens: 2, PromptTokens: 5, TotalTokens: 7},
		},
	}}
	w := postJSON(t, NewMux(svc), "/api/v1/chat/completions", `{"model":"m","temperature":0.5,"messages":[{"role":"user","content":"Hi"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(attemptsHeader); got != "2" {
		t.Fatalf("%s=%q", attemptsHeader, got)
	}
	var resp types.CreateChatCompletionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Choices) != 1 || *resp.Choices[0].Message.Content != "Hello there" || resp.Usage.TotalTokens != 7 {
		t.Fatalf("resp=%+v", resp)
	}
	if *svc.chatReq.Temperature != 0.5 || svc.chatReq.TopP != nil {
		t.Fatalf("presence not preserved: %+v", svc.chatReq)
	}
}

func TestChatContextIsNotCanceledWithRequest(t *testing.T) {
	content := "ok!"
	svc := &mockService{chatRes: &manager.ChatResult{Attempts: 1, Response: types.CreateChatCompletionResponse{
		Choices: []types.CreateChatCompletionChoice{{Message: types.ChatCompletionResponseMessage{Content: &content}}},
	}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/completions", strings.NewReader(`{"model":"m","messages":[{"role":"user","content":"Hi"}]}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	NewMux(svc).ServeHTTP(httptest.NewRecorder(), req)
	if svc.chatCtx == nil {
		t.Fatalf("service not called")
	}
	if svc.chatCtx.Err() != nil {
		t.Fatalf("service context canceled: %v", svc.chatCtx.Err())
	}
}

func TestServiceContextCarriesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()
	content := "ok!"
	svc := &mockService{chatRes: &manager.ChatResult{Attempts: 1, Response: types.CreateChatCompletionResponse{
		Choices: []types.CreateChatCompletionChoice{{Message: types.ChatCompletionResponseMessage{Content: &content}}},
	}}}
	postJSON(t, NewMux(svc), "/api/v1/chat/completions", `{"model":"m","messages":[{"role":"user","content":"Hi"}]}`)
	zerolog.Ctx(svc.chatCtx).Info().Msg("from service")
	if !strings.Contains(buf.String(), `"request_id"`) || !strings.Contains(buf.String(), "from service") {
		t.Fatalf("request logger not attached: %s", buf.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	h := NewMux(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/completions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("content-type: status=%d", w.Code)
	}

	w = postJSON(t, h, "/api/v1/chat/completions", `{"model":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", w.Code)
	}
	if body := decodeStd(t, w); body.Message != "invalid JSON body" || body.Error == "" {
		t.Fatalf("body=%+v", body)
	}

	SetMaxBodyBytes(16)
	defer SetMaxBodyBytes(0)
	w = postJSON(t, h, "/config/v1/load-model", `{"path":"/a/very/long/path/to/model.gguf"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized: status=%d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "loaded", MaxAttempts: 5}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.State != "loaded" || body.MaxAttempts != 5 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadyz(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{ready: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthzAndSecurityHeader(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
}

func TestCORSPreflight(t *testing.T) {
	SetCORSOptions(true, []string{"http://localhost:5173"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat/completions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin=%q status=%d", got, w.Code)
	}
}
