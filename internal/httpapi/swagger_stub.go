//go:build !swagger

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountSwaggerUI points UI requests at the build tag that enables it. The
// raw document stays available at /swagger/doc.json.
func mountSwaggerUI(r chi.Router) {
	r.Get("/swagger/*", func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "swagger UI not built", "rebuild with -tags=swagger; the document is at /swagger/doc.json")
	})
}
