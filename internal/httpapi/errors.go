package httpapi

import (
	"encoding/json"
	"net/http"

	"llamagate/internal/inference"
	"llamagate/internal/manager"
	"llamagate/internal/pipeline"
	"llamagate/internal/schema"
	"llamagate/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// msgModelNotLoaded is the message clients match on when no model is loaded.
const msgModelNotLoaded = "Load model before attempting inference"

// classify maps a service error to a status code, a client-facing message and
// a short kind used for metrics.
func classify(err error) (status int, msg, kind string) {
	switch {
	case schema.IsValidation(err):
		return http.StatusUnprocessableEntity, "invalid request", "validation"
	case inference.IsModelNotLoaded(err):
		return http.StatusBadRequest, msgModelNotLoaded, "not_loaded"
	case manager.IsModelFileNotFound(err):
		return http.StatusBadRequest, "model file not found", "file_not_found"
	case inference.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable, "model runtime unavailable", "dependency_unavailable"
	case inference.IsStreamingUnsupported(err):
		return http.StatusInternalServerError, "Can't work with streams yet.", "streaming_unsupported"
	case pipeline.IsRetriesExhausted(err):
		return http.StatusBadGateway, "model did not produce a valid response", "retries_exhausted"
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode(), he.Error(), "http_error"
	}
	return http.StatusInternalServerError, "internal error", "internal"
}

// writeServiceError maps err and writes the error body. It returns the status.
func writeServiceError(w http.ResponseWriter, op string, err error) int {
	status, msg, kind := classify(err)
	errorsTotal.WithLabelValues(op, kind).Inc()
	writeJSONError(w, status, msg, err.Error())
	return status
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.StandardResponse{Message: msg, Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
