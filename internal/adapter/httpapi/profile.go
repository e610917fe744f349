package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lusolab/lusocards/internal/entity"
)

func handleGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := deps.Profiles.GetProfile(r.Context(), userID(r))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

type advanceQuestRequest struct {
	Amount int `json:"amount"`
}

func handleAdvanceQuest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questType := entity.QuestType(chi.URLParam(r, "type"))
		switch questType {
		case entity.QuestReviewCards, entity.QuestAddCards, entity.QuestCreateStory:
		default:
			writeError(w, http.StatusBadRequest, "unknown quest type")
			return
		}

		var req advanceQuestRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Amount <= 0 {
			req.Amount = 1
		}

		profile, err := deps.Profiles.AdvanceQuest(r.Context(), userID(r), questType, req.Amount)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}
