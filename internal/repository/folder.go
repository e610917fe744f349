package repository

import (
	"context"

	"github.com/lusolab/lusocards/internal/entity"
)

// FolderRepository defines data access for card folders.
type FolderRepository interface {
	Create(ctx context.Context, folder *entity.Folder) (*entity.Folder, error)
	GetByID(ctx context.Context, userID, id string) (*entity.Folder, error)
	// FindByName matches case-insensitively; a miss returns (nil, nil).
	FindByName(ctx context.Context, userID, name string) (*entity.Folder, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}
