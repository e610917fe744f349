package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// domainError maps application errors to HTTP statuses.
func domainError(w http.ResponseWriter, err error) {
	var collab *entity.CollaboratorError
	switch {
	case errors.Is(err, entity.ErrCardNotFound),
		errors.Is(err, entity.ErrFolderNotFound),
		errors.Is(err, entity.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrDuplicateFolderName):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInvalidFolderName),
		errors.Is(err, entity.ErrEmptyExtraction),
		errors.Is(err, entity.ErrInsufficientWords),
		errors.Is(err, entity.ErrRecordingTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrSpeechNotRecognized):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &collab):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// requestLogger emits one structured line per request, leveled by status.
func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			entry := logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			})
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				entry.Error("request")
			case ww.Status() >= http.StatusBadRequest:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
		})
	}
}
