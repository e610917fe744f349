package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/usecase"
)

// Stubs embed the usecase interface and override only what a test
// exercises; calling anything else panics, which is what we want.

type stubSrs struct {
	usecase.SrsUsecase
	review    func(ctx context.Context, userID, cardID string, success bool) (*entity.Flashcard, error)
	due       func(ctx context.Context, userID string) ([]entity.Flashcard, error)
	frequency func(ctx context.Context, userID string, buckets []entity.Frequency) ([]entity.Flashcard, error)
}

func (s *stubSrs) Review(ctx context.Context, userID, cardID string, success bool) (*entity.Flashcard, error) {
	return s.review(ctx, userID, cardID, success)
}

func (s *stubSrs) DueQueue(ctx context.Context, userID string) ([]entity.Flashcard, error) {
	return s.due(ctx, userID)
}

func (s *stubSrs) FrequencyQueue(ctx context.Context, userID string, buckets []entity.Frequency) ([]entity.Flashcard, error) {
	return s.frequency(ctx, userID, buckets)
}

type stubFolders struct {
	usecase.FolderUsecase
	create func(ctx context.Context, userID, name, icon string) (*entity.Folder, error)
}

func (s *stubFolders) CreateFolder(ctx context.Context, userID, name, icon string) (*entity.Folder, error) {
	return s.create(ctx, userID, name, icon)
}

type stubGeneration struct {
	usecase.GenerationUsecase
	extract func(ctx context.Context, input usecase.ExtractionInput) ([]entity.VocabularyItem, error)
}

func (s *stubGeneration) ExtractVocabulary(ctx context.Context, input usecase.ExtractionInput) ([]entity.VocabularyItem, error) {
	return s.extract(ctx, input)
}

type stubObjects struct {
	objects map[string][]byte
}

func (s *stubObjects) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	s.objects[path] = data
	return "https://media.test/" + path, nil
}

func (s *stubObjects) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, "", entity.ErrCardNotFound
	}
	return data, "audio/mpeg", nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if withUser {
		req.Header.Set(userIDHeader, "u1")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMissingUserHeaderRejected(t *testing.T) {
	h := NewHandler(Deps{Logger: testLogger()})

	rec := doRequest(t, h, http.MethodGet, "/profile", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestReviewRoute(t *testing.T) {
	srs := &stubSrs{
		review: func(_ context.Context, userID, cardID string, success bool) (*entity.Flashcard, error) {
			if userID != "u1" || cardID != "c1" || !success {
				t.Fatalf("unexpected args: %s %s %v", userID, cardID, success)
			}
			return &entity.Flashcard{ID: cardID, Interval: 1}, nil
		},
	}
	h := NewHandler(Deps{Srs: srs, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodPost, "/cards/c1/review", `{"success":true}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var card entity.Flashcard
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if card.Interval != 1 {
		t.Fatalf("interval = %d, want 1", card.Interval)
	}
}

func TestReviewUnknownCardMapsToNotFound(t *testing.T) {
	srs := &stubSrs{
		review: func(context.Context, string, string, bool) (*entity.Flashcard, error) {
			return nil, entity.ErrCardNotFound
		},
	}
	h := NewHandler(Deps{Srs: srs, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodPost, "/cards/nope/review", `{"success":false}`, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateFolderConflict(t *testing.T) {
	folders := &stubFolders{
		create: func(context.Context, string, string, string) (*entity.Folder, error) {
			return nil, entity.ErrDuplicateFolderName
		},
	}
	h := NewHandler(Deps{Folders: folders, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodPost, "/folders", `{"name":"Еда"}`, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestFrequencyQueueRouteParsesBuckets(t *testing.T) {
	var got []entity.Frequency
	srs := &stubSrs{
		frequency: func(ctx context.Context, userID string, buckets []entity.Frequency) ([]entity.Flashcard, error) {
			got = buckets
			return []entity.Flashcard{}, nil
		},
	}
	h := NewHandler(Deps{Srs: srs, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodGet, "/queue/frequency?bucket=Top+500,Top+1000&bucket=High", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := []entity.Frequency{entity.FrequencyTop500, entity.FrequencyTop1000, entity.FrequencyTop1000}
	if len(got) != len(want) {
		t.Fatalf("buckets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrequencyQueueRouteRequiresBucket(t *testing.T) {
	srs := &stubSrs{
		frequency: func(context.Context, string, []entity.Frequency) ([]entity.Flashcard, error) {
			t.Fatal("the queue must not be built without buckets")
			return nil, nil
		},
	}
	h := NewHandler(Deps{Srs: srs, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodGet, "/queue/frequency", "", true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractPassesRequestedCount(t *testing.T) {
	var got usecase.ExtractionInput
	gen := &stubGeneration{
		extract: func(ctx context.Context, input usecase.ExtractionInput) ([]entity.VocabularyItem, error) {
			got = input
			return []entity.VocabularyItem{{Word: "a casa", Translation: "дом"}}, nil
		},
	}
	h := NewHandler(Deps{Generation: gen, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodPost, "/extract", `{"text":"texto longo","count":8}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.Count != 8 {
		t.Errorf("count = %d, want 8", got.Count)
	}
	if got.Text != "texto longo" {
		t.Errorf("text = %q, want the request body text", got.Text)
	}
}

func TestExtractRequiresInput(t *testing.T) {
	gen := &stubGeneration{
		extract: func(context.Context, usecase.ExtractionInput) ([]entity.VocabularyItem, error) {
			t.Fatal("extractor should not be called")
			return nil, nil
		},
	}
	h := NewHandler(Deps{Generation: gen, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodPost, "/extract", `{}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractCollaboratorFailureIsBadGateway(t *testing.T) {
	gen := &stubGeneration{
		extract: func(context.Context, usecase.ExtractionInput) ([]entity.VocabularyItem, error) {
			return nil, entity.NewCollaboratorError("gemini.extract", io.ErrUnexpectedEOF)
		},
	}
	h := NewHandler(Deps{Generation: gen, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodPost, "/extract", `{"text":"o pão fresco"}`, true)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestServeMedia(t *testing.T) {
	store := &stubObjects{objects: map[string][]byte{
		"audio/u1/stories/s1.mp3": []byte("mp3-bytes"),
	}}
	h := NewHandler(Deps{Objects: store, Logger: testLogger()})

	rec := doRequest(t, h, http.MethodGet, "/media/audio/u1/stories/s1.mp3", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("content type = %q", got)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodGet, "/media/audio/u1/stories/missing.mp3", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("miss status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
