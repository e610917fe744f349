package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
	"github.com/lusolab/lusocards/internal/usecase/media"
)

// PoolSource names where a story's word pool is drawn from.
type PoolSource string

const (
	PoolFromFolder    PoolSource = "folder"
	PoolFromFrequency PoolSource = "frequency"
	PoolFromRecent    PoolSource = "recent"
)

// PoolFolderAll selects from every folder.
const PoolFolderAll = "all"

const defaultRecentDays = 7

// PoolPolicy configures word selection for a story.
type PoolPolicy struct {
	Source     PoolSource       `json:"source"`
	FolderID   string           `json:"folder_id,omitempty"`
	Frequency  entity.Frequency `json:"frequency,omitempty"`
	RecentDays int              `json:"recent_days,omitempty"`
	Count      int              `json:"count"`
}

// AssembledStory is a generated draft plus the words it was built from,
// before the user decides to save it.
type AssembledStory struct {
	Draft     entity.StoryDraft `json:"draft"`
	WordsUsed []string          `json:"words_used"`
}

// StoryUsecase assembles short narratives from a user's vocabulary and
// manages saved stories.
type StoryUsecase interface {
	SelectPool(ctx context.Context, userID string, policy PoolPolicy) ([]string, error)
	Assemble(ctx context.Context, userID string, policy PoolPolicy) (*AssembledStory, error)
	// SaveStory persists a story; an inline audio payload is offloaded
	// to the object store first.
	SaveStory(ctx context.Context, userID string, draft entity.StoryDraft, wordsUsed []string, audioSource string) (*entity.Story, error)
	ListStories(ctx context.Context, userID string) ([]entity.Story, error)
}

// NewStoryUsecase wires the assembler with default id generation and
// an unseeded sampling source.
func NewStoryUsecase(
	cards repository.FlashcardRepository,
	stories repository.StoryRepository,
	objects repository.ObjectStore,
	narrator NarrativeGenerator,
	profiles ProfileUsecase,
	logger *logrus.Logger,
) StoryUsecase {
	return &storyUsecase{
		cards:    cards,
		stories:  stories,
		objects:  objects,
		narrator: narrator,
		profiles: profiles,
		logger:   logger,
		idgen:    uuid.NewString,
		clock:    time.Now,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type storyUsecase struct {
	cards    repository.FlashcardRepository
	stories  repository.StoryRepository
	objects  repository.ObjectStore
	narrator NarrativeGenerator
	profiles ProfileUsecase
	logger   *logrus.Logger

	idgen func() string
	clock func() time.Time
	rand  *rand.Rand
}

func (u *storyUsecase) SelectPool(ctx context.Context, userID string, policy PoolPolicy) ([]string, error) {
	cards, err := u.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	pool := cards
	switch policy.Source {
	case PoolFromFolder:
		if policy.FolderID != "" && policy.FolderID != PoolFolderAll {
			pool = lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
				return c.InFolder(policy.FolderID)
			})
		}
	case PoolFromFrequency:
		pool = lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
			return entity.NormalizeFrequency(c.Frequency) == policy.Frequency
		})
	case PoolFromRecent:
		days := policy.RecentDays
		if days <= 0 {
			days = defaultRecentDays
		}
		cutoff := now.UnixMilli() - int64(days)*entity.MillisPerDay
		pool = lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
			return c.CreatedAt >= cutoff
		})
	}

	if len(pool) < policy.Count || policy.Count <= 0 {
		return nil, entity.ErrInsufficientWords
	}

	u.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return lo.Map(pool[:policy.Count], func(c entity.Flashcard, _ int) string {
		return c.OriginalTerm
	}), nil
}

func (u *storyUsecase) Assemble(ctx context.Context, userID string, policy PoolPolicy) (*AssembledStory, error) {
	words, err := u.SelectPool(ctx, userID, policy)
	if err != nil {
		return nil, err
	}

	draft, err := u.narrator.GenerateStory(ctx, words)
	if err != nil {
		return nil, err
	}
	return &AssembledStory{Draft: *draft, WordsUsed: words}, nil
}

func (u *storyUsecase) SaveStory(ctx context.Context, userID string, draft entity.StoryDraft, wordsUsed []string, audioSource string) (*entity.Story, error) {
	story := &entity.Story{
		ID:         u.idgen(),
		UserID:     userID,
		TargetText: draft.TargetText,
		NativeText: draft.NativeText,
		WordsUsed:  wordsUsed,
		CreatedAt:  u.clock().UnixMilli(),
	}

	// Saved stories keep a URL, never a multi-hundred-kilobyte inline
	// payload in the row.
	switch src := media.ClassifySource(audioSource); src.Kind {
	case media.SourceURL:
		story.AudioURL = audioSource
	case media.SourceInline:
		data, err := media.DecodeInline(audioSource)
		if err != nil {
			return nil, fmt.Errorf("decode story audio: %w", err)
		}
		path := fmt.Sprintf("audio/%s/stories/%s.mp3", userID, story.ID)
		url, err := u.objects.Upload(ctx, path, "audio/mpeg", data)
		if err != nil {
			return nil, err
		}
		story.AudioURL = url
	}

	saved, err := u.stories.Create(ctx, story)
	if err != nil {
		return nil, err
	}

	// Quest progress is best-effort once the story is saved.
	if u.profiles != nil {
		if _, err := u.profiles.AdvanceQuest(ctx, userID, entity.QuestCreateStory, 1); err != nil {
			u.logger.WithError(err).Warn("story quest update failed")
		}
	}
	return saved, nil
}

func (u *storyUsecase) ListStories(ctx context.Context, userID string) ([]entity.Story, error) {
	return u.stories.ListByUser(ctx, userID)
}
