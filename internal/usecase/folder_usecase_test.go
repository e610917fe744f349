package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/lusolab/lusocards/internal/entity"
)

func newTestFolder(folders *fakeFolderRepo, cards *fakeCardRepo) *folderUsecase {
	return &folderUsecase{
		folders: folders,
		cards:   cards,
		idgen:   sequentialIDs(),
		clock:   func() time.Time { return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestCreateFolder(t *testing.T) {
	uc := newTestFolder(newFakeFolderRepo(), newFakeCardRepo())
	folder, err := uc.CreateFolder(context.Background(), "u1", "  Еда  ", "🍞")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if folder.Name != "Еда" {
		t.Errorf("expected trimmed name, got %q", folder.Name)
	}
	if folder.ID == "" || folder.CreatedAt == 0 {
		t.Errorf("folder not normalized: %+v", folder)
	}
}

func TestCreateFolderRejectsDuplicateName(t *testing.T) {
	folders := newFakeFolderRepo()
	uc := newTestFolder(folders, newFakeCardRepo())
	if _, err := uc.CreateFolder(context.Background(), "u1", "Еда", ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := uc.CreateFolder(context.Background(), "u1", "еда", ""); err != entity.ErrDuplicateFolderName {
		t.Fatalf("expected ErrDuplicateFolderName, got %v", err)
	}
}

func TestCreateFolderRejectsEmptyAndReservedNames(t *testing.T) {
	uc := newTestFolder(newFakeFolderRepo(), newFakeCardRepo())
	if _, err := uc.CreateFolder(context.Background(), "u1", "   ", ""); err != entity.ErrInvalidFolderName {
		t.Fatalf("expected ErrInvalidFolderName for blank, got %v", err)
	}
	if _, err := uc.CreateFolder(context.Background(), "u1", "Default", ""); err != entity.ErrInvalidFolderName {
		t.Fatalf("expected ErrInvalidFolderName for reserved, got %v", err)
	}
}

func TestDeleteFolderCascade(t *testing.T) {
	folders := newFakeFolderRepo()
	cards := newFakeCardRepo()
	_, _ = folders.Create(context.Background(), &entity.Folder{ID: "f1", UserID: "u1", Name: "Еда"})
	seedCard(t, cards, entity.Flashcard{ID: "c1", UserID: "u1", FolderIDs: []string{"f1"}})
	seedCard(t, cards, entity.Flashcard{ID: "c2", UserID: "u1", FolderIDs: []string{entity.DefaultFolderID}})

	uc := newTestFolder(folders, cards)
	if err := uc.DeleteFolder(context.Background(), "u1", "f1", true); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}

	if _, err := cards.GetByID(context.Background(), "u1", "c1"); err != entity.ErrCardNotFound {
		t.Error("member card should be deleted in cascade mode")
	}
	if _, err := cards.GetByID(context.Background(), "u1", "c2"); err != nil {
		t.Error("card outside the folder must survive")
	}
	if _, err := folders.GetByID(context.Background(), "u1", "f1"); err != entity.ErrFolderNotFound {
		t.Error("folder should be gone")
	}
}

func TestDeleteFolderStripKeepsCards(t *testing.T) {
	folders := newFakeFolderRepo()
	cards := newFakeCardRepo()
	_, _ = folders.Create(context.Background(), &entity.Folder{ID: "f1", UserID: "u1", Name: "Еда"})
	seedCard(t, cards, entity.Flashcard{ID: "c1", UserID: "u1", FolderIDs: []string{"f1"}})
	seedCard(t, cards, entity.Flashcard{ID: "c2", UserID: "u1", FolderIDs: []string{"f1", "f2"}})

	uc := newTestFolder(folders, cards)
	if err := uc.DeleteFolder(context.Background(), "u1", "f1", false); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}

	c1, err := cards.GetByID(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("card must survive strip mode: %v", err)
	}
	if len(c1.FolderIDs) != 1 || c1.FolderIDs[0] != entity.DefaultFolderID {
		t.Errorf("card with no remaining folders falls back to default, got %v", c1.FolderIDs)
	}

	c2, _ := cards.GetByID(context.Background(), "u1", "c2")
	if len(c2.FolderIDs) != 1 || c2.FolderIDs[0] != "f2" {
		t.Errorf("only the deleted folder id is stripped, got %v", c2.FolderIDs)
	}
}

func TestDeleteFolderUnknown(t *testing.T) {
	uc := newTestFolder(newFakeFolderRepo(), newFakeCardRepo())
	if err := uc.DeleteFolder(context.Background(), "u1", "ghost", false); err != entity.ErrFolderNotFound {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestDeleteDefaultFolderRefused(t *testing.T) {
	uc := newTestFolder(newFakeFolderRepo(), newFakeCardRepo())
	if err := uc.DeleteFolder(context.Background(), "u1", entity.DefaultFolderID, true); err != entity.ErrInvalidFolderName {
		t.Fatalf("expected ErrInvalidFolderName, got %v", err)
	}
}
