package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createFolderRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

func handleCreateFolder(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFolderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		folder, err := deps.Folders.CreateFolder(r.Context(), userID(r), req.Name, req.Icon)
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, folder)
	}
}

func handleListFolders(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folders, err := deps.Folders.ListFolders(r.Context(), userID(r))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"folders": folders})
	}
}

// DELETE /folders/{id}?mode=cascade deletes member cards as well;
// the default strips the folder from its cards.
func handleDeleteFolder(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if mode != "" && mode != "cascade" && mode != "strip" {
			writeError(w, http.StatusBadRequest, "mode must be cascade or strip")
			return
		}
		err := deps.Folders.DeleteFolder(r.Context(), userID(r), chi.URLParam(r, "id"), mode == "cascade")
		if err != nil {
			domainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
