package usecase

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

// newCardFallbackLimit caps how many unseen cards a review session
// offers when nothing is due yet.
const newCardFallbackLimit = 10

// SrsUsecase schedules reviews: grading outcomes and assembling the
// session queues.
type SrsUsecase interface {
	Review(ctx context.Context, userID, cardID string, success bool) (*entity.Flashcard, error)
	DueQueue(ctx context.Context, userID string) ([]entity.Flashcard, error)
	// FrequencyQueue keeps cards whose normalized bucket is a member of
	// the requested set.
	FrequencyQueue(ctx context.Context, userID string, buckets []entity.Frequency) ([]entity.Flashcard, error)
	SingleCardQueue(ctx context.Context, userID, cardID string) ([]entity.Flashcard, error)
}

// NewSrsUsecase wires the scheduler with the wall clock and an
// unseeded shuffle source.
func NewSrsUsecase(repo repository.FlashcardRepository, profiles ProfileUsecase, logger *logrus.Logger) SrsUsecase {
	return &srsUsecase{
		repo:     repo,
		profiles: profiles,
		logger:   logger,
		clock:    time.Now,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type srsUsecase struct {
	repo     repository.FlashcardRepository
	profiles ProfileUsecase
	logger   *logrus.Logger
	clock    func() time.Time
	rand     *rand.Rand
}

// nextState applies the grading rule to a card's scheduling fields.
// The ease factor is deliberately constant: only the interval and the
// coarse difficulty move.
func nextState(card *entity.Flashcard, success bool, now time.Time) (interval int, nextReview int64, difficulty entity.Difficulty) {
	if success {
		if card.Interval == 0 {
			interval = 1
		} else {
			interval = int(math.Round(float64(card.Interval) * card.EaseFactor))
		}
		difficulty = entity.DifficultyEasy
	} else {
		interval = 1
		difficulty = entity.DifficultyHard
	}
	nextReview = now.UnixMilli() + int64(interval)*entity.MillisPerDay
	return interval, nextReview, difficulty
}

func (u *srsUsecase) Review(ctx context.Context, userID, cardID string, success bool) (*entity.Flashcard, error) {
	card, err := u.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	interval, nextReview, difficulty := nextState(card, success, u.clock())
	if err := u.repo.UpdateSRS(ctx, userID, cardID, interval, nextReview, difficulty); err != nil {
		return nil, err
	}

	card.Interval = interval
	card.NextReviewDate = nextReview
	card.Difficulty = difficulty

	// Quest and history updates are best-effort: the graded card is
	// already persisted.
	if u.profiles != nil {
		if _, err := u.profiles.AdvanceQuest(ctx, userID, entity.QuestReviewCards, 1); err != nil {
			u.logger.WithError(err).Warn("review quest update failed")
		}
		if success {
			if _, err := u.profiles.RecordLearned(ctx, userID, 1); err != nil {
				u.logger.WithError(err).Warn("learning history update failed")
			}
		}
	}
	return card, nil
}

func (u *srsUsecase) DueQueue(ctx context.Context, userID string) ([]entity.Flashcard, error) {
	cards, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	due := lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
		return c.IsDue(now)
	})
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReviewDate < due[j].NextReviewDate
	})
	if len(due) > 0 {
		return due, nil
	}

	// Nothing due: offer a handful of unseen cards instead of an empty
	// session.
	fresh := lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
		return c.IsNew()
	})
	if len(fresh) > newCardFallbackLimit {
		fresh = fresh[:newCardFallbackLimit]
	}
	return fresh, nil
}

func (u *srsUsecase) FrequencyQueue(ctx context.Context, userID string, buckets []entity.Frequency) ([]entity.Flashcard, error) {
	if len(buckets) == 0 {
		return nil, nil
	}
	cards, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := lo.Filter(cards, func(c entity.Flashcard, _ int) bool {
		return lo.Contains(buckets, entity.NormalizeFrequency(c.Frequency))
	})
	u.rand.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})
	return matched, nil
}

func (u *srsUsecase) SingleCardQueue(ctx context.Context, userID, cardID string) ([]entity.Flashcard, error) {
	card, err := u.repo.GetByID(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	return []entity.Flashcard{*card}, nil
}
