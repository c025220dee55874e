package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llamagate/internal/manager"
	"llamagate/pkg/types"
)

// attemptsHeader reports how many generations a chat completion took.
const attemptsHeader = "X-Generation-Attempts"

// Service defines the methods required by the HTTP API layer.
type Service interface {
	LoadModel(ctx context.Context, req *types.LoadModelRequest) error
	UnloadModel(ctx context.Context) (bool, error)
	ChatCompletion(ctx context.Context, req *types.CreateChatCompletionRequest) (*manager.ChatResult, error)
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if c := corsMiddleware(); c != nil {
		r.Use(c)
	}
	r.Use(MetricsMiddleware)

	h := &handlers{svc: svc}
	r.Post("/config/v1/load-model", h.loadModel)
	r.Post("/config/v1/unload-model", h.unloadModel)
	r.Post("/api/v1/chat/completions", h.chatCompletion)

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no model loaded"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	mountAPIDoc(r)

	return r
}

type handlers struct {
	svc Service
}

// decodeJSON enforces the content type and body limit and decodes into v. It
// writes the error response itself and reports whether decoding succeeded.
// An empty body is accepted when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	if allowEmpty && r.ContentLength == 0 {
		return true
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return false
	}
	return true
}

// loadModel godoc
//
//	@Summary	Load a model
//	@Description	Loads a GGUF model file, replacing any model currently loaded.
//	@Tags		config
//	@Accept		json
//	@Produce	json
//	@Param		request	body		types.LoadModelRequest	true	"Model path and loading options"
//	@Success	200		{object}	types.StandardResponse
//	@Failure	400		{object}	types.StandardResponse
//	@Failure	415		{object}	types.StandardResponse
//	@Failure	422		{object}	types.StandardResponse
//	@Failure	503		{object}	types.StandardResponse
//	@Router		/config/v1/load-model [post]
func (h *handlers) loadModel(w http.ResponseWriter, r *http.Request) {
	var req types.LoadModelRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ol := beginOp(r, "load")
	ol.started(map[string]any{"model_path": req.Path})
	if err := h.svc.LoadModel(serviceContext(r), &req); err != nil {
		ol.finished(writeServiceError(w, "load", err), err)
		return
	}
	writeJSON(w, http.StatusOK, types.StandardResponse{Message: "Model loaded successfully"})
	ol.finished(http.StatusOK, nil)
}

// unloadModel godoc
//
//	@Summary	Unload the model
//	@Description	Releases the loaded model. Succeeds when nothing is loaded.
//	@Tags		config
//	@Produce	json
//	@Success	200	{object}	types.StandardResponse
//	@Failure	500	{object}	types.StandardResponse
//	@Router		/config/v1/unload-model [post]
func (h *handlers) unloadModel(w http.ResponseWriter, r *http.Request) {
	ol := beginOp(r, "unload")
	released, err := h.svc.UnloadModel(serviceContext(r))
	if err != nil {
		ol.finished(writeServiceError(w, "unload", err), err)
		return
	}
	msg := "Model unloaded successfully"
	if !released {
		msg = "No model loaded"
	}
	writeJSON(w, http.StatusOK, types.StandardResponse{Message: msg})
	ol.finished(http.StatusOK, nil)
}

// chatCompletion godoc
//
//	@Summary	Create a chat completion
//	@Description	OpenAI-compatible chat completion against the loaded model. Streaming is not supported.
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Param		request	body		types.CreateChatCompletionRequest	true	"Chat completion request"
//	@Success	200		{object}	types.CreateChatCompletionResponse
//	@Header		200		{integer}	X-Generation-Attempts	"Generations needed to obtain valid output"
//	@Failure	400		{object}	types.StandardResponse
//	@Failure	422		{object}	types.StandardResponse
//	@Failure	500		{object}	types.StandardResponse
//	@Failure	502		{object}	types.StandardResponse
//	@Router		/api/v1/chat/completions [post]
func (h *handlers) chatCompletion(w http.ResponseWriter, r *http.Request) {
	var req types.CreateChatCompletionRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ol := beginOp(r, "chat")
	ol.started(map[string]any{"model": req.Model, "messages": len(req.Messages), "functions": len(req.Functions)})
	res, err := h.svc.ChatCompletion(serviceContext(r), &req)
	if err != nil {
		ol.finished(writeServiceError(w, "chat", err), err)
		return
	}
	w.Header().Set(attemptsHeader, strconv.Itoa(res.Attempts))
	writeJSON(w, http.StatusOK, res.Response)
	observeChat(res.Attempts, &res.Response)
	for _, c := range res.Response.Choices {
		ev := ol.debug().Int("index", c.Index).Str("finish_reason", c.FinishReason)
		if c.Message.Content != nil {
			ev = ev.Str("content", *c.Message.Content)
		}
		if c.Message.FunctionCall != nil {
			ev = ev.Str("function", c.Message.FunctionCall.Name)
		}
		ev.Msg("chat choice")
	}
	ol.finished(http.StatusOK, nil)
}
