package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository builds the gorm-backed folder store.
func NewFolderRepository(db *gorm.DB) repository.FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, folder *entity.Folder) (*entity.Folder, error) {
	model := toFolderModel(folder)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *folderRepository) GetByID(ctx context.Context, userID, id string) (*entity.Folder, error) {
	var model folderModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *folderRepository) FindByName(ctx context.Context, userID, name string) (*entity.Folder, error) {
	var model folderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *folderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Folder, error) {
	var models []folderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	folders := make([]entity.Folder, len(models))
	for i := range models {
		folders[i] = *models[i].toEntity()
	}
	return folders, nil
}

func (r *folderRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&folderModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrFolderNotFound
	}
	return nil
}
