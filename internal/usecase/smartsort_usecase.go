package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

// newFolderSentinel is the classifier's placeholder target id for a
// folder that does not exist yet.
const newFolderSentinel = "NEW_FOLDER"

// fallbackFolderName names a created folder when the classifier gave
// no name.
const fallbackFolderName = "Новая папка"

// ApplyResult reports what an accepted sorting run changed.
type ApplyResult struct {
	MovedCards     int             `json:"moved_cards"`
	CreatedFolders []entity.Folder `json:"created_folders,omitempty"`
}

// SmartSortUsecase clusters uncategorized cards into folders using the
// classification collaborator and applies accepted suggestions.
type SmartSortUsecase interface {
	// Suggest proposes folder assignments for cards still sitting in
	// the default folder. No uncategorized cards means no suggestions
	// and no collaborator call.
	Suggest(ctx context.Context, userID string) ([]entity.SortSuggestion, error)
	// Apply executes suggestions, restricted to selectedCardIDs when
	// non-empty.
	Apply(ctx context.Context, userID string, suggestions []entity.SortSuggestion, selectedCardIDs []string) (*ApplyResult, error)
}

// NewSmartSortUsecase wires the sorter with default id generation.
func NewSmartSortUsecase(
	cards repository.FlashcardRepository,
	folders repository.FolderRepository,
	classifier CardClassifier,
) SmartSortUsecase {
	return &smartSortUsecase{
		cards:      cards,
		folders:    folders,
		classifier: classifier,
		idgen:      uuid.NewString,
		clock:      time.Now,
	}
}

type smartSortUsecase struct {
	cards      repository.FlashcardRepository
	folders    repository.FolderRepository
	classifier CardClassifier

	idgen func() string
	clock func() time.Time
}

func (u *smartSortUsecase) Suggest(ctx context.Context, userID string) ([]entity.SortSuggestion, error) {
	cards, err := u.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidates := lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
		return c.InFolder(entity.DefaultFolderID)
	})
	if len(candidates) == 0 {
		return nil, nil
	}

	folders, err := u.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cardSummaries := lo.Map(candidates, func(c entity.Flashcard, _ int) entity.CardSummary {
		return entity.CardSummary{ID: c.ID, Term: c.OriginalTerm}
	})
	folderSummaries := lo.FilterMap(folders, func(f entity.Folder, _ int) (entity.FolderSummary, bool) {
		if f.ID == entity.DefaultFolderID {
			return entity.FolderSummary{}, false
		}
		return entity.FolderSummary{ID: f.ID, Name: f.Name}, true
	})

	return u.classifier.SuggestFolders(ctx, cardSummaries, folderSummaries)
}

func (u *smartSortUsecase) Apply(ctx context.Context, userID string, suggestions []entity.SortSuggestion, selectedCardIDs []string) (*ApplyResult, error) {
	selected := make(map[string]bool, len(selectedCardIDs))
	for _, id := range selectedCardIDs {
		selected[id] = true
	}

	result := &ApplyResult{}
	for _, sugg := range suggestions {
		cardIDs := sugg.CardIDs
		if len(selected) > 0 {
			cardIDs = lo.Filter(cardIDs, func(id string, _ int) bool { return selected[id] })
		}
		if len(cardIDs) == 0 {
			continue
		}

		targetID := sugg.TargetFolderID
		if sugg.Action == entity.SortActionCreate || targetID == newFolderSentinel {
			folder, err := u.resolveNamedFolder(ctx, userID, sugg.SuggestedFolderName, result)
			if err != nil {
				return nil, err
			}
			targetID = folder.ID
		}

		for _, cardID := range cardIDs {
			card, err := u.cards.GetByID(ctx, userID, cardID)
			if err != nil {
				return nil, err
			}
			folderIDs := lo.Filter(card.FolderIDs, func(id string, _ int) bool {
				return id != entity.DefaultFolderID
			})
			if !lo.Contains(folderIDs, targetID) {
				folderIDs = append(folderIDs, targetID)
			}
			if err := u.cards.UpdateFolderIDs(ctx, userID, cardID, folderIDs); err != nil {
				return nil, err
			}
			result.MovedCards++
		}
	}
	return result, nil
}

// resolveNamedFolder reuses an existing folder with the suggested name
// (matched case-insensitively) or creates one.
func (u *smartSortUsecase) resolveNamedFolder(ctx context.Context, userID, name string, result *ApplyResult) (*entity.Folder, error) {
	if name == "" {
		name = fallbackFolderName
	}

	existing, err := u.folders.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	for i := range result.CreatedFolders {
		if result.CreatedFolders[i].NameEquals(name) {
			return &result.CreatedFolders[i], nil
		}
	}

	folder := &entity.Folder{
		ID:     u.idgen(),
		UserID: userID,
		Name:   name,
	}
	folder.Normalize(u.clock())
	created, err := u.folders.Create(ctx, folder)
	if err != nil {
		return nil, err
	}
	result.CreatedFolders = append(result.CreatedFolders, *created)
	return created, nil
}
