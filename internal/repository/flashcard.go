package repository

import (
	"context"

	"github.com/lusolab/lusocards/internal/entity"
)

// FlashcardRepository defines data access for study cards.
type FlashcardRepository interface {
	Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error)
	CreateBatch(ctx context.Context, cards []*entity.Flashcard) error
	GetByID(ctx context.Context, userID, id string) (*entity.Flashcard, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Flashcard, error)
	UpdateSRS(ctx context.Context, userID, id string, interval int, nextReviewDate int64, difficulty entity.Difficulty) error
	UpdateFolderIDs(ctx context.Context, userID, id string, folderIDs []string) error
	UpdateAudioSource(ctx context.Context, userID, id, source string) error
	UpdateExamples(ctx context.Context, userID, id string, examples []entity.Example) error
	Delete(ctx context.Context, userID string, ids []string) error
}
