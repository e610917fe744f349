// Package httpapi exposes the application over a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/repository"
	"github.com/lusolab/lusocards/internal/usecase"
)

// userIDHeader identifies the requesting user. Authentication proper
// happens upstream; the API trusts the gateway-injected header.
const userIDHeader = "X-User-ID"

// Deps collects everything the API serves.
type Deps struct {
	Generation    usecase.GenerationUsecase
	Srs           usecase.SrsUsecase
	Pronunciation usecase.PronunciationUsecase
	SmartSort     usecase.SmartSortUsecase
	Stories       usecase.StoryUsecase
	Folders       usecase.FolderUsecase
	Profiles      usecase.ProfileUsecase
	Cards         repository.FlashcardRepository
	Objects       repository.ObjectStore
	Logger        *logrus.Logger
}

// NewHandler builds the API router.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	// Public media serving: object-store payloads by path.
	r.Get("/media/*", handleServeMedia(deps))

	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Post("/extract", handleExtract(deps))
		r.Post("/cards", handleBuildCards(deps))
		r.Get("/cards", handleListCards(deps))
		r.Delete("/cards", handleDeleteCards(deps))
		r.Get("/cards/{id}/audio", handleCardAudio(deps))
		r.Post("/cards/{id}/patterns", handleEnrichPatterns(deps))
		r.Post("/cards/{id}/review", handleReview(deps))

		r.Get("/queue/due", handleDueQueue(deps))
		r.Get("/queue/frequency", handleFrequencyQueue(deps))
		r.Get("/queue/card/{id}", handleSingleCardQueue(deps))

		r.Post("/pronunciation/evaluate", handleEvaluatePronunciation(deps))

		r.Post("/sort/suggest", handleSortSuggest(deps))
		r.Post("/sort/apply", handleSortApply(deps))

		r.Post("/stories/assemble", handleAssembleStory(deps))
		r.Post("/stories", handleSaveStory(deps))
		r.Get("/stories", handleListStories(deps))

		r.Post("/folders", handleCreateFolder(deps))
		r.Get("/folders", handleListFolders(deps))
		r.Delete("/folders/{id}", handleDeleteFolder(deps))

		r.Get("/profile", handleGetProfile(deps))
		r.Post("/profile/quests/{type}", handleAdvanceQuest(deps))
	})

	return r
}

// requireUser rejects requests without a user identity.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(userIDHeader) == "" {
			writeError(w, http.StatusUnauthorized, "missing "+userIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}
