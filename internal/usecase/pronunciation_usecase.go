package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lusolab/lusocards/internal/entity"
)

// minRecordingBytes rejects recordings too short to carry speech.
const minRecordingBytes = 1000

// PronunciationUsecase grades a learner's spoken attempt against the
// expected phrase.
type PronunciationUsecase interface {
	Score(expected, heard string) entity.PronunciationScore
	EvaluateRecording(ctx context.Context, expected string, audio []byte, lang entity.Language) (*entity.PronunciationScore, error)
}

// NewPronunciationUsecase wires the scorer with its transcriber.
func NewPronunciationUsecase(transcriber Transcriber) PronunciationUsecase {
	return &pronunciationUsecase{transcriber: transcriber}
}

type pronunciationUsecase struct {
	transcriber Transcriber
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases, strips diacritics and punctuation. Accents
// are dropped on purpose: the transcriber is unreliable about them and
// scoring should not punish the learner for its guesses.
func normalizeText(text string) string {
	lower := strings.ToLower(text)
	stripped, _, err := transform.String(stripDiacritics, lower)
	if err != nil {
		stripped = lower
	}
	var b strings.Builder
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// similarity scores two phrases 0-100 from their edit distance.
func similarity(expected, heard string) int {
	s1 := normalizeText(expected)
	s2 := normalizeText(heard)
	if s1 == s2 {
		return 100
	}
	if s1 == "" || s2 == "" {
		return 0
	}
	dist := levenshtein.Distance(s1, s2, nil)
	maxLen := len([]rune(s1))
	if l := len([]rune(s2)); l > maxLen {
		maxLen = l
	}
	return int(math.Round((1 - float64(dist)/float64(maxLen)) * 100))
}

// wordDiff splits both phrases into normalized words and reports which
// expected words were missed, which heard words were extra and which
// matched.
func wordDiff(expected, heard string) (missing, extra, matched []string) {
	expectedWords := strings.Fields(normalizeText(expected))
	heardWords := strings.Fields(normalizeText(heard))

	heardSet := make(map[string]bool, len(heardWords))
	for _, w := range heardWords {
		heardSet[w] = true
	}
	expectedSet := make(map[string]bool, len(expectedWords))
	for _, w := range expectedWords {
		expectedSet[w] = true
	}

	for _, w := range expectedWords {
		if heardSet[w] {
			matched = append(matched, w)
		} else {
			missing = append(missing, w)
		}
	}
	for _, w := range heardWords {
		if !expectedSet[w] {
			extra = append(extra, w)
		}
	}
	return missing, extra, matched
}

func quoteJoin(words []string) string {
	return strings.Join(words, "», «")
}

func (u *pronunciationUsecase) Score(expected, heard string) entity.PronunciationScore {
	score := similarity(expected, heard)
	missing, extra, matched := wordDiff(expected, heard)

	var feedback string
	var correct bool
	// Thresholds lean lenient: the goal is encouragement, not exams.
	switch {
	case score >= 85:
		correct = true
		feedback = "Превосходно! 🎉 Вы отлично справились!"
	case score >= 65:
		correct = true
		if len(missing) > 0 && len(missing) <= 2 {
			feedback = fmt.Sprintf("Хорошо! 👍 Проверьте слова: «%s»", quoteJoin(missing))
		} else {
			feedback = "Хорошо! 👍 Небольшие отличия, но вас понимают."
		}
	case score >= 45:
		switch {
		case len(missing) > 0:
			tips := missing
			if len(tips) > 3 {
				tips = tips[:3]
			}
			feedback = fmt.Sprintf("Почти! 🔄 Обратите внимание на: «%s»", quoteJoin(tips))
		case len(extra) > 0:
			feedback = "Почти! 🔄 Попробуйте говорить медленнее."
		default:
			feedback = "Почти! 🔄 Послушайте оригинал и повторите."
		}
	default:
		if len([]rune(heard)) < 3 {
			feedback = "Не расслышал 🎧 Говорите громче и чётче."
		} else {
			feedback = "Попробуйте ещё! 🎯 Послушайте оригинал внимательно."
		}
	}

	return entity.PronunciationScore{
		IsCorrect: correct,
		Score:     score,
		Expected:  expected,
		Heard:     heard,
		Feedback:  feedback,
		Missing:   missing,
		Extra:     extra,
		Matched:   matched,
	}
}

func (u *pronunciationUsecase) EvaluateRecording(ctx context.Context, expected string, audio []byte, lang entity.Language) (*entity.PronunciationScore, error) {
	if len(audio) < minRecordingBytes {
		return nil, entity.ErrRecordingTooShort
	}

	transcription, err := u.transcriber.Transcribe(ctx, audio, lang)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcription.Transcript) == "" {
		return nil, entity.ErrSpeechNotRecognized
	}

	score := u.Score(expected, transcription.Transcript)
	return &score, nil
}
