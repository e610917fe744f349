package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleServeMedia streams stored object payloads (card audio, story
// narration, generated images) by their store path.
func handleServeMedia(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := chi.URLParam(r, "*")
		if path == "" {
			writeError(w, http.StatusBadRequest, "missing media path")
			return
		}

		data, contentType, err := deps.Objects.Fetch(r.Context(), path)
		if err != nil {
			writeError(w, http.StatusNotFound, "media not found")
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(data)
	}
}
