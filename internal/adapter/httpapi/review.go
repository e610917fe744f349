package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lusolab/lusocards/internal/entity"
)

type reviewRequest struct {
	Success bool `json:"success"`
}

func handleReview(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reviewRequest
		if !decodeBody(w, r, &req) {
			return
		}
		card, err := deps.Srs.Review(r.Context(), userID(r), chi.URLParam(r, "id"), req.Success)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func handleDueQueue(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := deps.Srs.DueQueue(r.Context(), userID(r))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
	}
}

// handleFrequencyQueue filters by a set of buckets, passed as repeated
// or comma-separated `bucket` query parameters.
func handleFrequencyQueue(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buckets []entity.Frequency
		for _, raw := range r.URL.Query()["bucket"] {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					buckets = append(buckets, entity.NormalizeFrequency(part))
				}
			}
		}
		if len(buckets) == 0 {
			writeError(w, http.StatusBadRequest, "at least one bucket parameter is required")
			return
		}

		cards, err := deps.Srs.FrequencyQueue(r.Context(), userID(r), buckets)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
	}
}

func handleSingleCardQueue(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := deps.Srs.SingleCardQueue(r.Context(), userID(r), chi.URLParam(r, "id"))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
	}
}
