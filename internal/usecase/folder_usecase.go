package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

// FolderUsecase manages card folders and their deletion semantics.
type FolderUsecase interface {
	CreateFolder(ctx context.Context, userID, name, icon string) (*entity.Folder, error)
	ListFolders(ctx context.Context, userID string) ([]entity.Folder, error)
	// DeleteFolder removes a folder. With deleteContent the member
	// cards go with it; without, they only lose the folder tag.
	DeleteFolder(ctx context.Context, userID, folderID string, deleteContent bool) error
}

// NewFolderUsecase wires folder management with default id generation.
func NewFolderUsecase(folders repository.FolderRepository, cards repository.FlashcardRepository) FolderUsecase {
	return &folderUsecase{
		folders: folders,
		cards:   cards,
		idgen:   uuid.NewString,
		clock:   time.Now,
	}
}

type folderUsecase struct {
	folders repository.FolderRepository
	cards   repository.FlashcardRepository

	idgen func() string
	clock func() time.Time
}

func (u *folderUsecase) CreateFolder(ctx context.Context, userID, name, icon string) (*entity.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, entity.DefaultFolderID) {
		return nil, entity.ErrInvalidFolderName
	}

	existing, err := u.folders.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrDuplicateFolderName
	}

	folder := &entity.Folder{
		ID:     u.idgen(),
		UserID: userID,
		Name:   name,
		Icon:   icon,
	}
	folder.Normalize(u.clock())
	return u.folders.Create(ctx, folder)
}

func (u *folderUsecase) ListFolders(ctx context.Context, userID string) ([]entity.Folder, error) {
	return u.folders.ListByUser(ctx, userID)
}

func (u *folderUsecase) DeleteFolder(ctx context.Context, userID, folderID string, deleteContent bool) error {
	if folderID == entity.DefaultFolderID {
		return entity.ErrInvalidFolderName
	}
	if _, err := u.folders.GetByID(ctx, userID, folderID); err != nil {
		return err
	}

	cards, err := u.cards.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	members := lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
		return lo.Contains(c.FolderIDs, folderID)
	})

	if deleteContent {
		if len(members) > 0 {
			ids := lo.Map(members, func(c entity.Flashcard, _ int) string { return c.ID })
			if err := u.cards.Delete(ctx, userID, ids); err != nil {
				return err
			}
		}
	} else {
		for _, card := range members {
			remaining := lo.Filter(card.FolderIDs, func(id string, _ int) bool {
				return id != folderID
			})
			if len(remaining) == 0 {
				remaining = []string{entity.DefaultFolderID}
			}
			if err := u.cards.UpdateFolderIDs(ctx, userID, card.ID, remaining); err != nil {
				return err
			}
		}
	}

	return u.folders.Delete(ctx, userID, folderID)
}
