package usecase

import (
	"context"

	"github.com/lusolab/lusocards/internal/entity"
)

// ExtractionInput is a text passage or a photographed page to mine for
// vocabulary. Exactly one of Text or Image is set. Count is how many
// items to extract; non-positive means the extractor's default.
type ExtractionInput struct {
	Text  string
	Image *ImagePayload
	Count int
}

// ImagePayload is raw image bytes plus their MIME type.
type ImagePayload struct {
	Data []byte
	MIME string
}

// VocabularyExtractor picks learnable words out of text or an image.
type VocabularyExtractor interface {
	Extract(ctx context.Context, input ExtractionInput) ([]entity.VocabularyItem, error)
}

// CardSynthesizer produces the structured study content for a term.
type CardSynthesizer interface {
	GenerateCardDetails(ctx context.Context, word, translation string) (*entity.CardDetails, error)
	// EnrichPatterns annotates existing example sentences with grammar
	// patterns, grouped by level.
	EnrichPatterns(ctx context.Context, word string, examples []entity.Example) ([]entity.LevelPatterns, error)
}

// Transcriber converts a voice recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, lang entity.Language) (*entity.Transcription, error)
}

// NarrativeGenerator writes a short story from a word pool.
type NarrativeGenerator interface {
	GenerateStory(ctx context.Context, words []string) (*entity.StoryDraft, error)
}

// CardClassifier clusters uncategorized cards into folder suggestions.
type CardClassifier interface {
	SuggestFolders(ctx context.Context, cards []entity.CardSummary, folders []entity.FolderSummary) ([]entity.SortSuggestion, error)
}
