// Package repository implements the persistence interfaces on gorm.
package repository

import (
	"github.com/lusolab/lusocards/internal/entity"
)

type flashcardModel struct {
	ID     string `gorm:"primaryKey;size:64"`
	UserID string `gorm:"index;size:64;not null"`

	OriginalTerm string              `gorm:"size:200;not null"`
	Translation  string              `gorm:"size:500"`
	Definition   string              `gorm:"type:text"`
	Examples     []entity.Example    `gorm:"type:json;serializer:json"`
	Conjugation  *entity.Conjugation `gorm:"type:json;serializer:json"`
	GrammarNotes string              `gorm:"type:text"`

	ImageURL    string `gorm:"size:1024"`
	ImagePrompt string `gorm:"type:text"`
	AudioSource string `gorm:"type:text"`

	FolderIDs []string `gorm:"type:json;serializer:json"`
	Tags      []string `gorm:"type:json;serializer:json"`
	Frequency string   `gorm:"size:32"`

	Difficulty     string  `gorm:"size:16"`
	Interval       int     `gorm:"default:0"`
	EaseFactor     float64 `gorm:"default:2.5"`
	NextReviewDate int64   `gorm:"index"`

	CreatedAt int64
}

func (flashcardModel) TableName() string { return "flashcards" }

func toFlashcardModel(c *entity.Flashcard) *flashcardModel {
	return &flashcardModel{
		ID:             c.ID,
		UserID:         c.UserID,
		OriginalTerm:   c.OriginalTerm,
		Translation:    c.Translation,
		Definition:     c.Definition,
		Examples:       c.Examples,
		Conjugation:    c.Conjugation,
		GrammarNotes:   c.GrammarNotes,
		ImageURL:       c.ImageURL,
		ImagePrompt:    c.ImagePrompt,
		AudioSource:    c.AudioSource,
		FolderIDs:      c.FolderIDs,
		Tags:           c.Tags,
		Frequency:      c.Frequency,
		Difficulty:     string(c.Difficulty),
		Interval:       c.Interval,
		EaseFactor:     c.EaseFactor,
		NextReviewDate: c.NextReviewDate,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *flashcardModel) toEntity() *entity.Flashcard {
	return &entity.Flashcard{
		ID:             m.ID,
		UserID:         m.UserID,
		OriginalTerm:   m.OriginalTerm,
		Translation:    m.Translation,
		Definition:     m.Definition,
		Examples:       m.Examples,
		Conjugation:    m.Conjugation,
		GrammarNotes:   m.GrammarNotes,
		ImageURL:       m.ImageURL,
		ImagePrompt:    m.ImagePrompt,
		AudioSource:    m.AudioSource,
		FolderIDs:      m.FolderIDs,
		Tags:           m.Tags,
		Frequency:      m.Frequency,
		Difficulty:     entity.Difficulty(m.Difficulty),
		Interval:       m.Interval,
		EaseFactor:     m.EaseFactor,
		NextReviewDate: m.NextReviewDate,
		CreatedAt:      m.CreatedAt,
	}
}

type folderModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"index;size:64;not null"`
	Name      string `gorm:"size:200;not null"`
	Icon      string `gorm:"size:16"`
	CreatedAt int64
}

func (folderModel) TableName() string { return "folders" }

func toFolderModel(f *entity.Folder) *folderModel {
	return &folderModel{ID: f.ID, UserID: f.UserID, Name: f.Name, Icon: f.Icon, CreatedAt: f.CreatedAt}
}

func (m *folderModel) toEntity() *entity.Folder {
	return &entity.Folder{ID: m.ID, UserID: m.UserID, Name: m.Name, Icon: m.Icon, CreatedAt: m.CreatedAt}
}

type storyModel struct {
	ID         string   `gorm:"primaryKey;size:64"`
	UserID     string   `gorm:"index;size:64;not null"`
	TargetText string   `gorm:"type:text;not null"`
	NativeText string   `gorm:"type:text"`
	AudioURL   string   `gorm:"size:1024"`
	WordsUsed  []string `gorm:"type:json;serializer:json"`
	CreatedAt  int64
}

func (storyModel) TableName() string { return "stories" }

func toStoryModel(s *entity.Story) *storyModel {
	return &storyModel{
		ID:         s.ID,
		UserID:     s.UserID,
		TargetText: s.TargetText,
		NativeText: s.NativeText,
		AudioURL:   s.AudioURL,
		WordsUsed:  s.WordsUsed,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *storyModel) toEntity() *entity.Story {
	return &entity.Story{
		ID:         m.ID,
		UserID:     m.UserID,
		TargetText: m.TargetText,
		NativeText: m.NativeText,
		AudioURL:   m.AudioURL,
		WordsUsed:  m.WordsUsed,
		CreatedAt:  m.CreatedAt,
	}
}

type profileModel struct {
	UserID          string         `gorm:"primaryKey;size:64"`
	XP              int            `gorm:"default:0"`
	Level           int            `gorm:"default:1"`
	Streak          int            `gorm:"default:0"`
	CardsLearned    int            `gorm:"default:0"`
	LearningHistory map[string]int `gorm:"type:json;serializer:json"`
	Quests          []entity.Quest `gorm:"type:json;serializer:json"`
	LastQuestDate   string         `gorm:"size:10"`
}

func (profileModel) TableName() string { return "profiles" }

func toProfileModel(p *entity.Profile) *profileModel {
	return &profileModel{
		UserID:          p.UserID,
		XP:              p.XP,
		Level:           p.Level,
		Streak:          p.Streak,
		CardsLearned:    p.CardsLearned,
		LearningHistory: p.LearningHistory,
		Quests:          p.Quests,
		LastQuestDate:   p.LastQuestDate,
	}
}

func (m *profileModel) toEntity() *entity.Profile {
	return &entity.Profile{
		UserID:          m.UserID,
		XP:              m.XP,
		Level:           m.Level,
		Streak:          m.Streak,
		CardsLearned:    m.CardsLearned,
		LearningHistory: m.LearningHistory,
		Quests:          m.Quests,
		LastQuestDate:   m.LastQuestDate,
	}
}

// globalAudioModel indexes the cross-user audio cache by normalized
// word. The first row per word stays canonical.
type globalAudioModel struct {
	Word      string `gorm:"primaryKey;size:200"`
	URL       string `gorm:"size:1024;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (globalAudioModel) TableName() string { return "global_audio" }

type globalImageModel struct {
	Word      string `gorm:"primaryKey;size:200"`
	URL       string `gorm:"size:1024;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}

func (globalImageModel) TableName() string { return "global_images" }

// mediaObjectModel stores raw media payloads addressed by path.
type mediaObjectModel struct {
	Path        string `gorm:"primaryKey;size:512"`
	ContentType string `gorm:"size:100;not null"`
	Data        []byte `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
}

func (mediaObjectModel) TableName() string { return "media_objects" }

// Models lists every persisted model for migration.
func Models() []any {
	return []any{
		&flashcardModel{},
		&folderModel{},
		&storyModel{},
		&profileModel{},
		&globalAudioModel{},
		&globalImageModel{},
		&mediaObjectModel{},
	}
}
