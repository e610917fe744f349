package httpapi

import (
	"net/http"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/usecase"
)

func handleAssembleStory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var policy usecase.PoolPolicy
		if !decodeBody(w, r, &policy) {
			return
		}
		story, err := deps.Stories.Assemble(r.Context(), userID(r), policy)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, story)
	}
}

type saveStoryRequest struct {
	Draft       entity.StoryDraft `json:"draft"`
	WordsUsed   []string          `json:"words_used"`
	AudioSource string            `json:"audio_source,omitempty"`
}

func handleSaveStory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveStoryRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Draft.TargetText == "" {
			writeError(w, http.StatusBadRequest, "draft.target_text is required")
			return
		}
		story, err := deps.Stories.SaveStory(r.Context(), userID(r), req.Draft, req.WordsUsed, req.AudioSource)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, story)
	}
}

func handleListStories(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stories, err := deps.Stories.ListStories(r.Context(), userID(r))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stories": stories})
	}
}
