package entity

import (
	"testing"
	"time"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	card := Flashcard{ID: "c1", UserID: "u1", OriginalTerm: "a ponte"}
	card.Normalize(now)

	if len(card.FolderIDs) != 1 || card.FolderIDs[0] != DefaultFolderID {
		t.Fatalf("FolderIDs = %v, want [%s]", card.FolderIDs, DefaultFolderID)
	}
	if card.Difficulty != DifficultyNew {
		t.Fatalf("Difficulty = %q", card.Difficulty)
	}
	if card.EaseFactor != DefaultEaseFactor {
		t.Fatalf("EaseFactor = %v", card.EaseFactor)
	}
	if card.NextReviewDate != now.UnixMilli() {
		t.Fatalf("NextReviewDate = %d, want %d", card.NextReviewDate, now.UnixMilli())
	}
	if card.Tags == nil || card.Examples == nil {
		t.Fatal("Tags and Examples must be non-nil after Normalize")
	}
}

func TestNormalizeKeepsExistingValues(t *testing.T) {
	now := time.Now()
	card := Flashcard{
		FolderIDs:      []string{"f1"},
		Difficulty:     DifficultyEasy,
		EaseFactor:     2.1,
		NextReviewDate: 42,
		CreatedAt:      7,
	}
	card.Normalize(now)

	if card.FolderIDs[0] != "f1" || card.Difficulty != DifficultyEasy ||
		card.EaseFactor != 2.1 || card.NextReviewDate != 42 || card.CreatedAt != 7 {
		t.Fatalf("Normalize overwrote explicit values: %+v", card)
	}
}

func TestInFolderTreatsEmptyAsDefault(t *testing.T) {
	card := Flashcard{}
	if !card.InFolder(DefaultFolderID) {
		t.Fatal("empty folder list should count as default membership")
	}
	if card.InFolder("f1") {
		t.Fatal("empty folder list should not match a named folder")
	}

	card.FolderIDs = []string{"f1"}
	if card.InFolder(DefaultFolderID) {
		t.Fatal("explicit membership should exclude default")
	}
	if !card.InFolder("f1") {
		t.Fatal("explicit membership not found")
	}
}

func TestIsDueAndIsNew(t *testing.T) {
	now := time.Now()
	due := Flashcard{NextReviewDate: now.UnixMilli() - 1}
	if !due.IsDue(now) {
		t.Fatal("past review date should be due")
	}
	future := Flashcard{NextReviewDate: now.UnixMilli() + MillisPerDay}
	if future.IsDue(now) {
		t.Fatal("future review date should not be due")
	}

	if !(&Flashcard{}).IsNew() {
		t.Fatal("zero interval means new")
	}
	if (&Flashcard{Interval: 3}).IsNew() {
		t.Fatal("non-zero interval is not new")
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{1250, 3},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}
