package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
	"github.com/lusolab/lusocards/internal/usecase/media"
)

// imageStyleSuffix pins every card illustration to the same visual
// style regardless of what the detail synthesis suggested.
const imageStyleSuffix = ", minimalist flat vector art, simple illustration, white background, high contrast, clean lines, no text"

// MediaResolver is the slice of the media cache the generation
// pipeline needs.
type MediaResolver interface {
	ResolveImage(ctx context.Context, prompt, word string) (string, error)
	GetOrGenerateAudio(ctx context.Context, text, cached string, mode media.Mode) (string, error)
}

// ItemFailure records one vocabulary item that could not be turned
// into a card during a batch build.
type ItemFailure struct {
	Word string `json:"word"`
	Err  error  `json:"-"`
}

// BatchResult is the outcome of a batch card build: the cards that
// made it plus the items that failed. A batch never fails as a whole.
type BatchResult struct {
	Cards    []*entity.Flashcard `json:"cards"`
	Failures []ItemFailure       `json:"failures,omitempty"`
}

// GenerationUsecase encapsulates the content-generation pipeline: from
// raw text or an image to persisted, media-enriched flashcards.
type GenerationUsecase interface {
	ExtractVocabulary(ctx context.Context, input ExtractionInput) ([]entity.VocabularyItem, error)
	// BuildCard files the new card under folderID ("" means the default
	// folder) and attaches tags.
	BuildCard(ctx context.Context, userID string, item entity.VocabularyItem, folderID string, tags []string) (*entity.Flashcard, error)
	BuildCards(ctx context.Context, userID string, items []entity.VocabularyItem, folderID string, tags []string) (*BatchResult, error)
	EnrichPatterns(ctx context.Context, userID, cardID string) ([]entity.Example, error)
	EnsureCardAudio(ctx context.Context, userID, cardID string) (string, error)
}

// NewGenerationUsecase wires the pipeline with default id generation
// and clock.
func NewGenerationUsecase(
	repo repository.FlashcardRepository,
	extractor VocabularyExtractor,
	synth CardSynthesizer,
	resolver MediaResolver,
	profiles ProfileUsecase,
	logger *logrus.Logger,
) GenerationUsecase {
	return &generationUsecase{
		repo:      repo,
		extractor: extractor,
		synth:     synth,
		resolver:  resolver,
		profiles:  profiles,
		logger:    logger,
		idgen:     uuid.NewString,
		clock:     time.Now,
	}
}

type generationUsecase struct {
	repo      repository.FlashcardRepository
	extractor VocabularyExtractor
	synth     CardSynthesizer
	resolver  MediaResolver
	profiles  ProfileUsecase
	logger    *logrus.Logger

	idgen func() string
	clock func() time.Time
}

func (u *generationUsecase) ExtractVocabulary(ctx context.Context, input ExtractionInput) ([]entity.VocabularyItem, error) {
	items, err := u.extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	valid := make([]entity.VocabularyItem, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		return nil, entity.ErrEmptyExtraction
	}
	return valid, nil
}

func (u *generationUsecase) BuildCard(ctx context.Context, userID string, item entity.VocabularyItem, folderID string, tags []string) (*entity.Flashcard, error) {
	details, err := u.synth.GenerateCardDetails(ctx, item.Word, item.Translation)
	if err != nil {
		return nil, err
	}

	// The card is still usable without an illustration, so an image
	// failure only degrades the result.
	imageURL := ""
	if details.VisualPrompt != "" {
		imageURL, err = u.resolver.ResolveImage(ctx, details.VisualPrompt+imageStyleSuffix, item.Word)
		if err != nil {
			u.logger.WithError(err).WithField("word", item.Word).Warn("card image generation failed")
			imageURL = ""
		}
	}

	var folderIDs []string
	if folderID != "" && folderID != entity.DefaultFolderID {
		folderIDs = []string{folderID}
	}

	now := u.clock()
	card := &entity.Flashcard{
		ID:           u.idgen(),
		UserID:       userID,
		OriginalTerm: item.Word,
		Translation:  item.Translation,
		Definition:   details.Definition,
		Examples:     details.Examples,
		Conjugation:  details.Conjugation,
		GrammarNotes: details.GrammarNotes,
		ImageURL:     imageURL,
		ImagePrompt:  details.VisualPrompt,
		FolderIDs:    folderIDs,
		Tags:         tags,
		Frequency:    string(entity.NormalizeFrequency(details.Frequency)),
	}
	card.Normalize(now)

	return u.repo.Create(ctx, card)
}

func (u *generationUsecase) BuildCards(ctx context.Context, userID string, items []entity.VocabularyItem, folderID string, tags []string) (*BatchResult, error) {
	result := &BatchResult{}
	for _, item := range items {
		card, err := u.BuildCard(ctx, userID, item, folderID, tags)
		if err != nil {
			u.logger.WithError(err).WithField("word", item.Word).Warn("card build failed")
			result.Failures = append(result.Failures, ItemFailure{Word: item.Word, Err: err})
			continue
		}
		result.Cards = append(result.Cards, card)
	}

	// Quest progress is best-effort: a failed update never fails the
	// batch the learner just paid generation calls for.
	if len(result.Cards) > 0 && u.profiles != nil {
		if _, err := u.profiles.AdvanceQuest(ctx, userID, entity.QuestAddCards, len(result.Cards)); err != nil {
			u.logger.WithError(err).Warn("add-cards quest update failed")
		}
	}
	return result, nil
}

func (u *generationUsecase) EnrichPatterns(ctx context.Context, userID, cardID string) ([]entity.Example, error) {
	card, err := u.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if len(card.Examples) == 0 {
		return card.Examples, nil
	}

	levels, err := u.synth.EnrichPatterns(ctx, card.OriginalTerm, card.Examples)
	if err != nil {
		return nil, err
	}

	byLevel := make(map[string][]entity.Pattern, len(levels))
	for _, lp := range levels {
		byLevel[lp.Level] = lp.Patterns
	}
	// Examples without an annotation for their level stay untouched.
	examples := make([]entity.Example, len(card.Examples))
	copy(examples, card.Examples)
	for i := range examples {
		if patterns, ok := byLevel[examples[i].Level]; ok {
			examples[i].Patterns = patterns
		}
	}

	if err := u.repo.UpdateExamples(ctx, userID, cardID, examples); err != nil {
		return nil, err
	}
	return examples, nil
}

func (u *generationUsecase) EnsureCardAudio(ctx context.Context, userID, cardID string) (string, error) {
	card, err := u.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return "", err
	}

	source, err := u.resolver.GetOrGenerateAudio(ctx, card.OriginalTerm, card.AudioSource, media.ModeCard)
	if err != nil {
		return "", err
	}

	// Persist the resolved source back onto the card so the next fetch
	// skips resolution. A failed write only costs that shortcut.
	if source != card.AudioSource {
		if err := u.repo.UpdateAudioSource(ctx, userID, cardID, source); err != nil {
			u.logger.WithError(err).WithField("card_id", cardID).Warn("audio source persist failed")
		}
	}
	return source, nil
}
