package httpapi

import (
	"encoding/base64"
	"net/http"

	"github.com/lusolab/lusocards/internal/entity"
)

// maxRecordingBody bounds uploaded pronunciation recordings.
const maxRecordingBody = 4 << 20

type evaluateRequest struct {
	Expected string `json:"expected"`
	Audio    string `json:"audio"` // base64 WEBM/Opus
	Language string `json:"language,omitempty"`
}

func handleEvaluatePronunciation(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRecordingBody)
		var req evaluateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Expected == "" {
			writeError(w, http.StatusBadRequest, "expected text is required")
			return
		}
		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid audio: "+err.Error())
			return
		}

		score, err := deps.Pronunciation.EvaluateRecording(r.Context(), req.Expected, audio, entity.Language(req.Language))
		if err != nil {
			domainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, score)
	}
}
