package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lusolab/lusocards/internal/entity"
)

type fakeTranscriber struct {
	result *entity.Transcription
	err    error
	calls  int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, lang entity.Language) (*entity.Transcription, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestNormalizeTextStripsDiacriticsAndPunctuation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Olá, tudo bem?", "ola tudo bem"},
		{"NÃO!", "nao"},
		{"  coração  ", "coracao"},
		{"está-se", "estase"},
	}
	for _, tc := range cases {
		if got := normalizeText(tc.in); got != tc.want {
			t.Errorf("normalizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScoreExactMatch(t *testing.T) {
	uc := &pronunciationUsecase{}
	score := uc.Score("Bom dia", "bom dia!")
	if score.Score != 100 {
		t.Errorf("expected 100, got %d", score.Score)
	}
	if !score.IsCorrect {
		t.Error("expected IsCorrect")
	}
	if !strings.HasPrefix(score.Feedback, "Превосходно") {
		t.Errorf("unexpected feedback %q", score.Feedback)
	}
}

func TestScoreAccentsDoNotLowerScore(t *testing.T) {
	uc := &pronunciationUsecase{}
	score := uc.Score("você está", "voce esta")
	if score.Score != 100 {
		t.Errorf("expected accents to be ignored, got %d", score.Score)
	}
}

func TestScoreGoodTierNamesMissingWords(t *testing.T) {
	uc := &pronunciationUsecase{}
	score := uc.Score("o gato come peixe", "o gato come")
	if score.Score < 65 || score.Score >= 85 {
		t.Fatalf("expected a score in the good tier, got %d", score.Score)
	}
	if !score.IsCorrect {
		t.Error("good tier is still counted correct")
	}
	if !strings.Contains(score.Feedback, "«peixe»") {
		t.Errorf("feedback should name the missing word, got %q", score.Feedback)
	}
	if len(score.Missing) != 1 || score.Missing[0] != "peixe" {
		t.Errorf("unexpected missing set %v", score.Missing)
	}
}

func TestScoreEmptyHeard(t *testing.T) {
	uc := &pronunciationUsecase{}
	score := uc.Score("bom dia", "")
	if score.Score != 0 {
		t.Errorf("expected 0, got %d", score.Score)
	}
	if score.IsCorrect {
		t.Error("empty attempt must not pass")
	}
	if !strings.Contains(score.Feedback, "Не расслышал") {
		t.Errorf("unexpected feedback %q", score.Feedback)
	}
}

func TestScoreLowTierWithLongAttempt(t *testing.T) {
	uc := &pronunciationUsecase{}
	score := uc.Score("bom dia", "completamente diferente frase aqui")
	if score.IsCorrect {
		t.Error("mismatch must not pass")
	}
	if !strings.HasPrefix(score.Feedback, "Попробуйте ещё") {
		t.Errorf("unexpected feedback %q", score.Feedback)
	}
}

func TestScoreSimilarityIsSymmetric(t *testing.T) {
	uc := &pronunciationUsecase{}
	pairs := [][2]string{
		{"bom dia", "bom di"},
		{"obrigado", "obrigada"},
		{"eu gosto de café", "eu gosto cafe"},
		{"falar", "calar"},
	}
	for _, p := range pairs {
		ab := uc.Score(p[0], p[1]).Score
		ba := uc.Score(p[1], p[0]).Score
		if ab != ba {
			t.Errorf("Score(%q, %q) = %d but Score(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestEvaluateRecordingTooShort(t *testing.T) {
	tr := &fakeTranscriber{}
	uc := NewPronunciationUsecase(tr)
	_, err := uc.EvaluateRecording(context.Background(), "bom dia", bytes.Repeat([]byte{1}, 500), entity.LanguagePortuguese)
	if err != entity.ErrRecordingTooShort {
		t.Fatalf("expected ErrRecordingTooShort, got %v", err)
	}
	if tr.calls != 0 {
		t.Error("short recordings must not reach the transcriber")
	}
}

func TestEvaluateRecordingEmptyTranscript(t *testing.T) {
	tr := &fakeTranscriber{result: &entity.Transcription{Transcript: "  "}}
	uc := NewPronunciationUsecase(tr)
	_, err := uc.EvaluateRecording(context.Background(), "bom dia", bytes.Repeat([]byte{1}, 2000), entity.LanguagePortuguese)
	if err != entity.ErrSpeechNotRecognized {
		t.Fatalf("expected ErrSpeechNotRecognized, got %v", err)
	}
}

func TestEvaluateRecordingScoresTranscript(t *testing.T) {
	tr := &fakeTranscriber{result: &entity.Transcription{Transcript: "bom dia", Confidence: 0.92}}
	uc := NewPronunciationUsecase(tr)
	score, err := uc.EvaluateRecording(context.Background(), "Bom dia", bytes.Repeat([]byte{1}, 2000), entity.LanguagePortuguese)
	if err != nil {
		t.Fatalf("EvaluateRecording failed: %v", err)
	}
	if score.Score != 100 || !score.IsCorrect {
		t.Errorf("unexpected score %+v", score)
	}
	if score.Heard != "bom dia" {
		t.Errorf("expected heard text carried through, got %q", score.Heard)
	}
}
