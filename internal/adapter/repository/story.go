package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository builds the gorm-backed story store.
func NewStoryRepository(db *gorm.DB) repository.StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *entity.Story) (*entity.Story, error) {
	model := toStoryModel(story)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *storyRepository) ListByUser(ctx context.Context, userID string) ([]entity.Story, error) {
	var models []storyModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	stories := make([]entity.Story, len(models))
	for i := range models {
		stories[i] = *models[i].toEntity()
	}
	return stories, nil
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds the gorm-backed profile store.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	var model profileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	model := toProfileModel(profile)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}
