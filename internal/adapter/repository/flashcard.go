package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

type flashcardRepository struct {
	db *gorm.DB
}

// NewFlashcardRepository builds the gorm-backed card store.
func NewFlashcardRepository(db *gorm.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	model := toFlashcardModel(card)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *flashcardRepository) CreateBatch(ctx context.Context, cards []*entity.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	models := make([]*flashcardModel, len(cards))
	for i, card := range cards {
		models[i] = toFlashcardModel(card)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *flashcardRepository) GetByID(ctx context.Context, userID, id string) (*entity.Flashcard, error) {
	var model flashcardModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *flashcardRepository) ListByUser(ctx context.Context, userID string) ([]entity.Flashcard, error) {
	var models []flashcardModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	cards := make([]entity.Flashcard, len(models))
	for i := range models {
		cards[i] = *models[i].toEntity()
	}
	return cards, nil
}

func (r *flashcardRepository) UpdateSRS(ctx context.Context, userID, id string, interval int, nextReviewDate int64, difficulty entity.Difficulty) error {
	return r.update(ctx, userID, id,
		[]string{"interval", "next_review_date", "difficulty"},
		&flashcardModel{Interval: interval, NextReviewDate: nextReviewDate, Difficulty: string(difficulty)})
}

func (r *flashcardRepository) UpdateFolderIDs(ctx context.Context, userID, id string, folderIDs []string) error {
	return r.update(ctx, userID, id, []string{"folder_ids"}, &flashcardModel{FolderIDs: folderIDs})
}

func (r *flashcardRepository) UpdateAudioSource(ctx context.Context, userID, id, source string) error {
	return r.update(ctx, userID, id, []string{"audio_source"}, &flashcardModel{AudioSource: source})
}

func (r *flashcardRepository) UpdateExamples(ctx context.Context, userID, id string, examples []entity.Example) error {
	return r.update(ctx, userID, id, []string{"examples"}, &flashcardModel{Examples: examples})
}

// update writes the selected columns through the model struct so
// serializer columns marshal properly; Select forces zero values.
func (r *flashcardRepository) update(ctx context.Context, userID, id string, columns []string, values *flashcardModel) error {
	res := r.db.WithContext(ctx).
		Model(&flashcardModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Select(columns).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrCardNotFound
	}
	return nil
}

func (r *flashcardRepository) Delete(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&flashcardModel{}).Error
}
