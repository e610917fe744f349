package httpapi

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/usecase"
)

// maxExtractBody bounds image uploads for vocabulary extraction.
const maxExtractBody = 8 << 20

type extractRequest struct {
	Text      string `json:"text,omitempty"`
	ImageData string `json:"image_data,omitempty"` // base64
	ImageMIME string `json:"image_mime,omitempty"`
	Count     int    `json:"count,omitempty"` // 0 = extractor default
}

func handleExtract(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxExtractBody)
		var req extractRequest
		if !decodeBody(w, r, &req) {
			return
		}

		input := usecase.ExtractionInput{Text: req.Text, Count: req.Count}
		if req.ImageData != "" {
			data, err := base64.StdEncoding.DecodeString(req.ImageData)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid image_data: "+err.Error())
				return
			}
			input.Image = &usecase.ImagePayload{Data: data, MIME: req.ImageMIME}
		}
		if input.Text == "" && input.Image == nil {
			writeError(w, http.StatusBadRequest, "either text or image_data is required")
			return
		}

		items, err := deps.Generation.ExtractVocabulary(r.Context(), input)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

type buildCardsRequest struct {
	Items    []entity.VocabularyItem `json:"items"`
	FolderID string                  `json:"folder_id,omitempty"` // "" = default folder
	Tags     []string                `json:"tags,omitempty"`
}

func handleBuildCards(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req buildCardsRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.Items) == 0 {
			writeError(w, http.StatusBadRequest, "items must not be empty")
			return
		}

		result, err := deps.Generation.BuildCards(r.Context(), userID(r), req.Items, req.FolderID, req.Tags)
		if err != nil {
			domainError(w, err)
			return
		}
		status := http.StatusCreated
		if len(result.Cards) == 0 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, result)
	}
}

func handleListCards(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := deps.Cards.ListByUser(r.Context(), userID(r))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
	}
}

type deleteCardsRequest struct {
	IDs []string `json:"ids"`
}

func handleDeleteCards(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteCardsRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.IDs) == 0 {
			writeError(w, http.StatusBadRequest, "ids must not be empty")
			return
		}
		if err := deps.Cards.Delete(r.Context(), userID(r), req.IDs); err != nil {
			domainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleCardAudio resolves (generating if needed) the playable audio
// source for a card and returns it.
func handleCardAudio(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source, err := deps.Generation.EnsureCardAudio(r.Context(), userID(r), chi.URLParam(r, "id"))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"audio_source": source})
	}
}

func handleEnrichPatterns(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examples, err := deps.Generation.EnrichPatterns(r.Context(), userID(r), chi.URLParam(r, "id"))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"examples": examples})
	}
}
