package httpapi

import (
	"net/http"

	"github.com/lusolab/lusocards/internal/entity"
)

func handleSortSuggest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := deps.SmartSort.Suggest(r.Context(), userID(r))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
	}
}

type sortApplyRequest struct {
	Suggestions     []entity.SortSuggestion `json:"suggestions"`
	SelectedCardIDs []string                `json:"selected_card_ids,omitempty"`
}

func handleSortApply(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sortApplyRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.Suggestions) == 0 {
			writeError(w, http.StatusBadRequest, "suggestions must not be empty")
			return
		}
		result, err := deps.SmartSort.Apply(r.Context(), userID(r), req.Suggestions, req.SelectedCardIDs)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
