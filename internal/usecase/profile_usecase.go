package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/repository"
)

// DailyQuests returns a fresh quest set for one day.
func DailyQuests() []entity.Quest {
	return []entity.Quest{
		{ID: "q1", Type: entity.QuestReviewCards, Description: "Повторить 10 слов", Target: 10, XPReward: 50},
		{ID: "q2", Type: entity.QuestAddCards, Description: "Добавить 5 новых слов", Target: 5, XPReward: 50},
		{ID: "q3", Type: entity.QuestCreateStory, Description: "Создать одну историю", Target: 1, XPReward: 100},
	}
}

// ProfileUsecase manages gamification state: XP, levels and daily
// quests.
type ProfileUsecase interface {
	// GetProfile loads the profile, creating it on first access and
	// regenerating quests when the day has rolled over.
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
	// AdvanceQuest adds progress to the quest of the given type,
	// awarding XP on completion.
	AdvanceQuest(ctx context.Context, userID string, questType entity.QuestType, amount int) (*entity.Profile, error)
	// RecordLearned bumps the learning history for today.
	RecordLearned(ctx context.Context, userID string, count int) (*entity.Profile, error)
}

// NewProfileUsecase wires the gamification engine with the wall clock.
func NewProfileUsecase(repo repository.ProfileRepository, logger *logrus.Logger) ProfileUsecase {
	return &profileUsecase{
		repo:   repo,
		logger: logger,
		clock:  time.Now,
	}
}

type profileUsecase struct {
	repo   repository.ProfileRepository
	logger *logrus.Logger
	clock  func() time.Time
}

func (u *profileUsecase) today() string {
	return u.clock().UTC().Format("2006-01-02")
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	today := u.today()

	profile, err := u.repo.Get(ctx, userID)
	if errors.Is(err, entity.ErrProfileNotFound) {
		profile = &entity.Profile{
			UserID:          userID,
			Level:           1,
			LearningHistory: map[string]int{},
			Quests:          DailyQuests(),
			LastQuestDate:   today,
		}
		if err := u.repo.Upsert(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	if profile.LastQuestDate != today {
		profile.Quests = DailyQuests()
		profile.LastQuestDate = today
		if err := u.repo.Upsert(ctx, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (u *profileUsecase) AdvanceQuest(ctx context.Context, userID string, questType entity.QuestType, amount int) (*entity.Profile, error) {
	profile, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range profile.Quests {
		q := &profile.Quests[i]
		if q.Type != questType || q.Completed {
			continue
		}
		q.Progress += amount
		changed = true
		if q.Progress >= q.Target {
			q.Completed = true
			profile.XP += q.XPReward
		}
	}
	if !changed {
		return profile, nil
	}

	if level := entity.LevelForXP(profile.XP); level > profile.Level {
		profile.Level = level
		u.logger.WithFields(logrus.Fields{"user_id": userID, "level": level}).Info("level up")
	}

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *profileUsecase) RecordLearned(ctx context.Context, userID string, count int) (*entity.Profile, error) {
	profile, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.LearningHistory == nil {
		profile.LearningHistory = map[string]int{}
	}
	profile.LearningHistory[u.today()] += count
	profile.CardsLearned += count

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
