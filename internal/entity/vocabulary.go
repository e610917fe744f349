package entity

// VocabularyItem is the extraction-pipeline intermediate: one candidate
// word picked out of a text or image, not yet a full card.
type VocabularyItem struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Context     string `json:"context"` // why this word was picked
}

// Valid reports whether the item carries the fields a card requires.
func (v VocabularyItem) Valid() bool {
	return v.Word != "" && v.Translation != ""
}

// CardDetails is the structured output of the detail-synthesis
// collaborator for a single term.
type CardDetails struct {
	Definition   string       `json:"definition"`
	GrammarNotes string       `json:"grammar_notes"`
	VisualPrompt string       `json:"visual_prompt"`
	Frequency    string       `json:"frequency,omitempty"`
	Conjugation  *Conjugation `json:"conjugation,omitempty"`
	Examples     []Example    `json:"examples"`
}

// LevelPatterns carries pattern annotations for one example level, as
// returned by the grammar-analysis collaborator.
type LevelPatterns struct {
	Level    string    `json:"level"`
	Patterns []Pattern `json:"patterns"`
}

// WordConfidence is a per-word transcription confidence.
type WordConfidence struct {
	Word       string  `json:"word"`
	Confidence float64 `json:"confidence"`
}

// Transcription is the speech-to-text collaborator's result.
type Transcription struct {
	Transcript string           `json:"transcript"`
	Confidence float64          `json:"confidence"`
	Words      []WordConfidence `json:"words,omitempty"`
}

// PronunciationScore grades a heard phrase against the expected one.
type PronunciationScore struct {
	IsCorrect bool     `json:"is_correct"`
	Score     int      `json:"score"` // 0-100
	Expected  string   `json:"expected"`
	Heard     string   `json:"heard"`
	Feedback  string   `json:"feedback"`
	Missing   []string `json:"missing,omitempty"`
	Extra     []string `json:"extra,omitempty"`
	Matched   []string `json:"matched,omitempty"`
}
