package repository

import (
	"context"

	"github.com/lusolab/lusocards/internal/entity"
)

// StoryRepository defines data access for saved stories.
type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) (*entity.Story, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Story, error)
}

// ProfileRepository defines data access for gamification profiles.
type ProfileRepository interface {
	// Get returns entity.ErrProfileNotFound when the user has no row yet.
	Get(ctx context.Context, userID string) (*entity.Profile, error)
	Upsert(ctx context.Context, profile *entity.Profile) error
}
