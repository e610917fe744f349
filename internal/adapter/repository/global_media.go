package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lusolab/lusocards/internal/repository"
)

type globalMediaRepository struct {
	db *gorm.DB
}

// NewGlobalMediaRepository builds the cross-user media index. Saves
// use insert-ignore so the first URL per word stays canonical under
// concurrent writers.
func NewGlobalMediaRepository(db *gorm.DB) repository.GlobalMediaRepository {
	return &globalMediaRepository{db: db}
}

func (r *globalMediaRepository) LookupAudio(ctx context.Context, word string) (string, error) {
	var model globalAudioModel
	err := r.db.WithContext(ctx).Where("word = ?", word).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return model.URL, nil
}

func (r *globalMediaRepository) SaveAudio(ctx context.Context, word, url string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "word"}},
			DoNothing: true,
		}).
		Create(&globalAudioModel{Word: word, URL: url}).Error
}

func (r *globalMediaRepository) LookupImage(ctx context.Context, word string) (string, error) {
	var model globalImageModel
	err := r.db.WithContext(ctx).Where("word = ?", word).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return model.URL, nil
}

func (r *globalMediaRepository) SaveImage(ctx context.Context, word, url string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "word"}},
			DoNothing: true,
		}).
		Create(&globalImageModel{Word: word, URL: url}).Error
}
