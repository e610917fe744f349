package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/usecase/media"
)

type fakeExtractor struct {
	items []entity.VocabularyItem
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, input ExtractionInput) ([]entity.VocabularyItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeSynthesizer struct {
	details  map[string]*entity.CardDetails
	err      error
	patterns []entity.LevelPatterns
}

func (f *fakeSynthesizer) GenerateCardDetails(ctx context.Context, word, translation string) (*entity.CardDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[word]; ok {
		return d, nil
	}
	return &entity.CardDetails{Definition: "def " + word}, nil
}

func (f *fakeSynthesizer) EnrichPatterns(ctx context.Context, word string, examples []entity.Example) ([]entity.LevelPatterns, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.patterns, nil
}

type fakeResolver struct {
	imageURL    string
	imageErr    error
	prompts     []string
	audioSource string
	audioErr    error
	audioCalls  int
}

func (f *fakeResolver) ResolveImage(ctx context.Context, prompt, word string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return f.imageURL, nil
}

func (f *fakeResolver) GetOrGenerateAudio(ctx context.Context, text, cached string, mode media.Mode) (string, error) {
	f.audioCalls++
	if f.audioErr != nil {
		return "", f.audioErr
	}
	if cached != "" {
		return cached, nil
	}
	return f.audioSource, nil
}

func newTestGeneration(repo *fakeCardRepo, extractor *fakeExtractor, synth *fakeSynthesizer, resolver *fakeResolver) *generationUsecase {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return &generationUsecase{
		repo:      repo,
		extractor: extractor,
		synth:     synth,
		resolver:  resolver,
		logger:    logger,
		idgen:     sequentialIDs(),
		clock:     func() time.Time { return now },
	}
}

func TestExtractVocabularyFiltersInvalidItems(t *testing.T) {
	extractor := &fakeExtractor{items: []entity.VocabularyItem{
		{Word: "casa", Translation: "дом"},
		{Word: "", Translation: "пусто"},
		{Word: "semtraducao", Translation: ""},
	}}
	uc := newTestGeneration(newFakeCardRepo(), extractor, &fakeSynthesizer{}, &fakeResolver{})

	items, err := uc.ExtractVocabulary(context.Background(), ExtractionInput{Text: "a casa"})
	if err != nil {
		t.Fatalf("ExtractVocabulary failed: %v", err)
	}
	if len(items) != 1 || items[0].Word != "casa" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestExtractVocabularyEmptyResult(t *testing.T) {
	extractor := &fakeExtractor{items: []entity.VocabularyItem{{Word: "", Translation: ""}}}
	uc := newTestGeneration(newFakeCardRepo(), extractor, &fakeSynthesizer{}, &fakeResolver{})

	if _, err := uc.ExtractVocabulary(context.Background(), ExtractionInput{Text: "..."}); err != entity.ErrEmptyExtraction {
		t.Fatalf("expected ErrEmptyExtraction, got %v", err)
	}
}

func TestBuildCardPersistsNormalizedCard(t *testing.T) {
	repo := newFakeCardRepo()
	synth := &fakeSynthesizer{details: map[string]*entity.CardDetails{
		"falar": {
			Definition:   "to speak",
			VisualPrompt: "a person speaking",
			Frequency:    "High",
			Examples:     []entity.Example{{Level: "A1", Sentence: "Eu falo."}},
		},
	}}
	resolver := &fakeResolver{imageURL: "https://cdn.test/falar.png"}
	uc := newTestGeneration(repo, &fakeExtractor{}, synth, resolver)

	card, err := uc.BuildCard(context.Background(), "u1", entity.VocabularyItem{Word: "falar", Translation: "говорить"}, "", nil)
	if err != nil {
		t.Fatalf("BuildCard failed: %v", err)
	}
	if card.ID == "" || card.UserID != "u1" {
		t.Errorf("identity not set: %+v", card)
	}
	if card.Frequency != string(entity.FrequencyTop1000) {
		t.Errorf("expected legacy High normalized to Top 1000, got %q", card.Frequency)
	}
	if card.ImageURL != "https://cdn.test/falar.png" {
		t.Errorf("unexpected image url %q", card.ImageURL)
	}
	if card.EaseFactor != entity.DefaultEaseFactor || card.Difficulty != entity.DifficultyNew {
		t.Errorf("SRS defaults missing: %+v", card)
	}
	if len(card.FolderIDs) != 1 || card.FolderIDs[0] != entity.DefaultFolderID {
		t.Errorf("expected default folder, got %v", card.FolderIDs)
	}
	if len(resolver.prompts) != 1 || !strings.Contains(resolver.prompts[0], "minimalist flat vector art") {
		t.Errorf("image prompt must carry the style suffix, got %v", resolver.prompts)
	}
	if _, err := repo.GetByID(context.Background(), "u1", card.ID); err != nil {
		t.Errorf("card not persisted: %v", err)
	}
}

func TestBuildCardSurvivesImageFailure(t *testing.T) {
	synth := &fakeSynthesizer{details: map[string]*entity.CardDetails{
		"pao": {Definition: "bread", VisualPrompt: "a loaf"},
	}}
	resolver := &fakeResolver{imageErr: errors.New("image provider down")}
	uc := newTestGeneration(newFakeCardRepo(), &fakeExtractor{}, synth, resolver)

	card, err := uc.BuildCard(context.Background(), "u1", entity.VocabularyItem{Word: "pao", Translation: "хлеб"}, "", nil)
	if err != nil {
		t.Fatalf("image failure must not fail the card: %v", err)
	}
	if card.ImageURL != "" {
		t.Errorf("expected empty image url, got %q", card.ImageURL)
	}
}

func TestBuildCardDetailsFailureIsFatal(t *testing.T) {
	synth := &fakeSynthesizer{err: entity.NewCollaboratorError("gemini.details", errors.New("quota"))}
	uc := newTestGeneration(newFakeCardRepo(), &fakeExtractor{}, synth, &fakeResolver{})

	if _, err := uc.BuildCard(context.Background(), "u1", entity.VocabularyItem{Word: "x", Translation: "y"}, "", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildCardsCollectsFailures(t *testing.T) {
	repo := newFakeCardRepo()
	synth := &fakeSynthesizer{details: map[string]*entity.CardDetails{}}
	uc := newTestGeneration(repo, &fakeExtractor{}, synth, &fakeResolver{})

	calls := 0
	origSynth := uc.synth
	uc.synth = &flakySynthesizer{inner: origSynth, failOn: "ruim", calls: &calls}

	result, err := uc.BuildCards(context.Background(), "u1", []entity.VocabularyItem{
		{Word: "bom", Translation: "хороший"},
		{Word: "ruim", Translation: "плохой"},
		{Word: "casa", Translation: "дом"},
	}, "", nil)
	if err != nil {
		t.Fatalf("BuildCards must not fail as a whole: %v", err)
	}
	if len(result.Cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(result.Cards))
	}
	if len(result.Failures) != 1 || result.Failures[0].Word != "ruim" {
		t.Errorf("unexpected failures %v", result.Failures)
	}
}

type flakySynthesizer struct {
	inner  CardSynthesizer
	failOn string
	calls  *int
}

func (f *flakySynthesizer) GenerateCardDetails(ctx context.Context, word, translation string) (*entity.CardDetails, error) {
	*f.calls++
	if word == f.failOn {
		return nil, errors.New("synthesis failed")
	}
	return f.inner.GenerateCardDetails(ctx, word, translation)
}

func (f *flakySynthesizer) EnrichPatterns(ctx context.Context, word string, examples []entity.Example) ([]entity.LevelPatterns, error) {
	return f.inner.EnrichPatterns(ctx, word, examples)
}

func TestEnrichPatternsMergesByLevel(t *testing.T) {
	repo := newFakeCardRepo()
	seedCard(t, repo, entity.Flashcard{
		ID: "c1", UserID: "u1", OriginalTerm: "falar",
		Examples: []entity.Example{
			{Level: "A1", Sentence: "Eu falo."},
			{Level: "B1", Sentence: "Falaria se pudesse."},
		},
	})
	synth := &fakeSynthesizer{patterns: []entity.LevelPatterns{
		{Level: "A1", Patterns: []entity.Pattern{{Target: "falo", Explanation: "1sg presente"}}},
	}}
	uc := newTestGeneration(repo, &fakeExtractor{}, synth, &fakeResolver{})

	examples, err := uc.EnrichPatterns(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("EnrichPatterns failed: %v", err)
	}
	if len(examples[0].Patterns) != 1 {
		t.Errorf("A1 example should gain a pattern, got %v", examples[0].Patterns)
	}
	if len(examples[1].Patterns) != 0 {
		t.Errorf("unannotated level must stay untouched, got %v", examples[1].Patterns)
	}

	stored, err := repo.GetByID(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(stored.Examples[0].Patterns) != 1 {
		t.Error("patterns not persisted")
	}
}

func TestEnsureCardAudioPersistsResolvedSource(t *testing.T) {
	repo := newFakeCardRepo()
	seedCard(t, repo, entity.Flashcard{ID: "c1", UserID: "u1", OriginalTerm: "ver"})
	resolver := &fakeResolver{audioSource: "https://cdn.test/ver.mp3"}
	uc := newTestGeneration(repo, &fakeExtractor{}, &fakeSynthesizer{}, resolver)

	source, err := uc.EnsureCardAudio(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("EnsureCardAudio failed: %v", err)
	}
	if source != "https://cdn.test/ver.mp3" {
		t.Errorf("unexpected source %q", source)
	}
	stored, _ := repo.GetByID(context.Background(), "u1", "c1")
	if stored.AudioSource != source {
		t.Error("resolved source not written back to the card")
	}
}

func TestEnsureCardAudioKeepsExistingSource(t *testing.T) {
	repo := newFakeCardRepo()
	seedCard(t, repo, entity.Flashcard{ID: "c1", UserID: "u1", OriginalTerm: "ver", AudioSource: "https://cdn.test/old.mp3"})
	resolver := &fakeResolver{}
	uc := newTestGeneration(repo, &fakeExtractor{}, &fakeSynthesizer{}, resolver)

	source, err := uc.EnsureCardAudio(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("EnsureCardAudio failed: %v", err)
	}
	if source != "https://cdn.test/old.mp3" {
		t.Errorf("expected cached source, got %q", source)
	}
}

func TestBuildCardAssignsFolderAndTags(t *testing.T) {
	repo := newFakeCardRepo()
	uc := newTestGeneration(repo, &fakeExtractor{}, &fakeSynthesizer{}, &fakeResolver{})

	card, err := uc.BuildCard(context.Background(), "u1", entity.VocabularyItem{Word: "comida", Translation: "еда"}, "f1", []string{"food"})
	if err != nil {
		t.Fatalf("BuildCard failed: %v", err)
	}
	if len(card.FolderIDs) != 1 || card.FolderIDs[0] != "f1" {
		t.Errorf("FolderIDs = %v, want [f1]", card.FolderIDs)
	}
	if len(card.Tags) != 1 || card.Tags[0] != "food" {
		t.Errorf("Tags = %v, want [food]", card.Tags)
	}

	stored, err := repo.GetByID(context.Background(), "u1", card.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(stored.FolderIDs) != 1 || stored.FolderIDs[0] != "f1" {
		t.Error("folder assignment not persisted")
	}
}

func TestBuildCardDefaultsFolderWhenUnset(t *testing.T) {
	repo := newFakeCardRepo()
	uc := newTestGeneration(repo, &fakeExtractor{}, &fakeSynthesizer{}, &fakeResolver{})

	card, err := uc.BuildCard(context.Background(), "u1", entity.VocabularyItem{Word: "pao", Translation: "хлеб"}, "", nil)
	if err != nil {
		t.Fatalf("BuildCard failed: %v", err)
	}
	if len(card.FolderIDs) != 1 || card.FolderIDs[0] != entity.DefaultFolderID {
		t.Errorf("FolderIDs = %v, want the default folder", card.FolderIDs)
	}
}

func TestBuildCardsAdvancesAddCardsQuest(t *testing.T) {
	repo := newFakeCardRepo()
	uc := newTestGeneration(repo, &fakeExtractor{}, &fakeSynthesizer{}, &fakeResolver{})
	progress := newFakeProgress()
	uc.profiles = progress

	result, err := uc.BuildCards(context.Background(), "u1", []entity.VocabularyItem{
		{Word: "bom", Translation: "хороший"},
		{Word: "casa", Translation: "дом"},
	}, "", nil)
	if err != nil {
		t.Fatalf("BuildCards failed: %v", err)
	}
	if len(result.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(result.Cards))
	}
	if got := progress.questProgress(entity.QuestAddCards); got != 2 {
		t.Errorf("add-cards quest advanced by %d, want 2", got)
	}
}

func TestBuildCardsSkipsQuestWhenNothingBuilt(t *testing.T) {
	repo := newFakeCardRepo()
	synth := &fakeSynthesizer{err: errors.New("provider down")}
	uc := newTestGeneration(repo, &fakeExtractor{}, synth, &fakeResolver{})
	progress := newFakeProgress()
	uc.profiles = progress

	result, err := uc.BuildCards(context.Background(), "u1", []entity.VocabularyItem{
		{Word: "bom", Translation: "хороший"},
	}, "", nil)
	if err != nil {
		t.Fatalf("BuildCards failed: %v", err)
	}
	if len(result.Cards) != 0 {
		t.Fatalf("expected no cards, got %d", len(result.Cards))
	}
	if got := progress.questProgress(entity.QuestAddCards); got != 0 {
		t.Errorf("quest advanced by %d for an empty batch", got)
	}
}
