package entity

import "time"

// Difficulty is the coarse recall grade attached to a card after review.
type Difficulty string

const (
	DifficultyNew    Difficulty = "New"
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

const (
	// DefaultFolderID marks uncategorized cards. An empty folder list is
	// treated identically to containing only this sentinel.
	DefaultFolderID = "default"

	// DefaultEaseFactor is the SM-2 starting multiplier for new cards.
	DefaultEaseFactor = 2.5

	// MillisPerDay converts review intervals (days) to epoch milliseconds.
	MillisPerDay int64 = 24 * 60 * 60 * 1000
)

// Pattern highlights a grammar construct inside an example sentence.
type Pattern struct {
	Target      string `json:"target"`
	Explanation string `json:"explanation"`
}

// Example is a leveled sample sentence attached to a card.
type Example struct {
	Level       string    `json:"level"` // A1, A2, B1, B2
	Sentence    string    `json:"sentence"`
	Translation string    `json:"translation"`
	Patterns    []Pattern `json:"patterns,omitempty"`
	AudioSource string    `json:"audio_source,omitempty"` // cached URL or inline payload
}

// VerbForms holds one tense conjugated across the five spoken persons.
type VerbForms struct {
	Eu   string `json:"eu"`
	Tu   string `json:"tu"`
	Ele  string `json:"ele"`
	Nos  string `json:"nos"`
	Eles string `json:"eles"`
}

// ConjugationTenses covers the four tenses taught by the app.
type ConjugationTenses struct {
	Presente   VerbForms `json:"presente"`
	Perfeito   VerbForms `json:"perfeito"`
	Imperfeito VerbForms `json:"imperfeito"`
	Futuro     VerbForms `json:"futuro"`
}

// Conjugation is present on verb cards only.
type Conjugation struct {
	IsVerb bool               `json:"is_verb"`
	Tenses *ConjugationTenses `json:"tenses,omitempty"`
}

// Flashcard is the unit of study produced by the generation pipeline and
// scheduled by the SRS engine.
type Flashcard struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	OriginalTerm string       `json:"original_term"`
	Translation  string       `json:"translation"`
	Definition   string       `json:"definition"`
	Examples     []Example    `json:"examples"`
	Conjugation  *Conjugation `json:"conjugation,omitempty"`
	GrammarNotes string       `json:"grammar_notes,omitempty"`

	ImageURL    string `json:"image_url,omitempty"`
	ImagePrompt string `json:"image_prompt,omitempty"`
	AudioSource string `json:"audio_source,omitempty"` // URL or inline payload for the term

	FolderIDs []string `json:"folder_ids"`
	Tags      []string `json:"tags"`
	Frequency string   `json:"frequency,omitempty"` // raw value, normalize before filtering

	Difficulty     Difficulty `json:"difficulty"`
	Interval       int        `json:"interval"` // days, 0 = never successfully reviewed
	EaseFactor     float64    `json:"ease_factor"`
	NextReviewDate int64      `json:"next_review_date"` // epoch ms

	CreatedAt int64 `json:"created_at"` // epoch ms
}

// IsDue reports whether the card should appear in the review queue.
func (c *Flashcard) IsDue(now time.Time) bool {
	return c.NextReviewDate <= now.UnixMilli()
}

// IsNew reports whether the card has never been successfully reviewed.
func (c *Flashcard) IsNew() bool {
	return c.Interval == 0
}

// InFolder reports membership, treating an empty list as the default folder.
func (c *Flashcard) InFolder(folderID string) bool {
	if len(c.FolderIDs) == 0 {
		return folderID == DefaultFolderID
	}
	for _, id := range c.FolderIDs {
		if id == folderID {
			return true
		}
	}
	return false
}

// Normalize ensures defaults & constraints before persistence.
func (c *Flashcard) Normalize(now time.Time) {
	if len(c.FolderIDs) == 0 {
		c.FolderIDs = []string{DefaultFolderID}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Examples == nil {
		c.Examples = []Example{}
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyNew
	}
	if c.EaseFactor < 1 {
		c.EaseFactor = DefaultEaseFactor
	}
	if c.NextReviewDate == 0 {
		c.NextReviewDate = now.UnixMilli()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = now.UnixMilli()
	}
}
