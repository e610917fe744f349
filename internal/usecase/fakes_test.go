package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
)

func testQuietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeCardRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Flashcard
	order []string
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{items: make(map[string]*entity.Flashcard)}
}

func cloneCard(c *entity.Flashcard) *entity.Flashcard {
	copy := *c
	copy.Examples = append([]entity.Example(nil), c.Examples...)
	copy.FolderIDs = append([]string(nil), c.FolderIDs...)
	copy.Tags = append([]string(nil), c.Tags...)
	return &copy
}

func (r *fakeCardRepo) Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneCard(card)
	r.items[copy.ID] = copy
	r.order = append(r.order, copy.ID)
	return cloneCard(copy), nil
}

func (r *fakeCardRepo) CreateBatch(ctx context.Context, cards []*entity.Flashcard) error {
	for _, card := range cards {
		if _, err := r.Create(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCardRepo) GetByID(ctx context.Context, userID, id string) (*entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrCardNotFound
	}
	return cloneCard(item), nil
}

func (r *fakeCardRepo) ListByUser(ctx context.Context, userID string) ([]entity.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.Flashcard
	for _, id := range r.order {
		if item, ok := r.items[id]; ok && item.UserID == userID {
			result = append(result, *cloneCard(item))
		}
	}
	return result, nil
}

func (r *fakeCardRepo) UpdateSRS(ctx context.Context, userID, id string, interval int, nextReviewDate int64, difficulty entity.Difficulty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrCardNotFound
	}
	item.Interval = interval
	item.NextReviewDate = nextReviewDate
	item.Difficulty = difficulty
	return nil
}

func (r *fakeCardRepo) UpdateFolderIDs(ctx context.Context, userID, id string, folderIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrCardNotFound
	}
	item.FolderIDs = append([]string(nil), folderIDs...)
	return nil
}

func (r *fakeCardRepo) UpdateAudioSource(ctx context.Context, userID, id, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrCardNotFound
	}
	item.AudioSource = source
	return nil
}

func (r *fakeCardRepo) UpdateExamples(ctx context.Context, userID, id string, examples []entity.Example) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrCardNotFound
	}
	item.Examples = append([]entity.Example(nil), examples...)
	return nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, userID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if item, ok := r.items[id]; ok && item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeFolderRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{items: make(map[string]*entity.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *entity.Folder) (*entity.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *folder
	r.items[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, userID, id string) (*entity.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrFolderNotFound
	}
	copy := *item
	return &copy, nil
}

func (r *fakeFolderRepo) FindByName(ctx context.Context, userID, name string) (*entity.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.UserID == userID && strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			copy := *item
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) ListByUser(ctx context.Context, userID string) ([]entity.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.Folder
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrFolderNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeStoryRepo struct {
	mu    sync.Mutex
	items []entity.Story
}

func (r *fakeStoryRepo) Create(ctx context.Context, story *entity.Story) (*entity.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *story)
	copy := *story
	return &copy, nil
}

func (r *fakeStoryRepo) ListByUser(ctx context.Context, userID string) ([]entity.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Story
	for _, s := range r.items {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	upserts  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, entity.ErrProfileNotFound
	}
	copy := *p
	copy.Quests = append([]entity.Quest(nil), p.Quests...)
	return &copy, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	copy := *profile
	copy.Quests = append([]entity.Quest(nil), profile.Quests...)
	r.profiles[profile.UserID] = &copy
	return nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte), baseURL: "https://media.test/"}
}

func (s *fakeObjectStore) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return s.baseURL + path, nil
}

func (s *fakeObjectStore) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, "", entity.ErrCardNotFound
	}
	return data, "audio/mpeg", nil
}

// fakeProgress records quest and learning-history updates without a real profile store.
type fakeProgress struct {
	mu       sync.Mutex
	advanced map[entity.QuestType]int
	learned  int
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{advanced: make(map[entity.QuestType]int)}
}

func (f *fakeProgress) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	return &entity.Profile{UserID: userID}, nil
}

func (f *fakeProgress) AdvanceQuest(ctx context.Context, userID string, questType entity.QuestType, amount int) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanced[questType] += amount
	return &entity.Profile{UserID: userID}, nil
}

func (f *fakeProgress) RecordLearned(ctx context.Context, userID string, count int) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.learned += count
	return &entity.Profile{UserID: userID}, nil
}

func (f *fakeProgress) questProgress(questType entity.QuestType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.advanced[questType]
}

// sequentialIDs returns an id generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
