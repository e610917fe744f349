package entity

// QuestType identifies a daily quest category.
type QuestType string

const (
	QuestReviewCards QuestType = "review_cards"
	QuestAddCards    QuestType = "add_cards"
	QuestCreateStory QuestType = "create_story"
)

// Quest is a daily gamification goal with an XP reward on completion.
type Quest struct {
	ID          string    `json:"id"`
	Type        QuestType `json:"type"`
	Description string    `json:"description"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	XPReward    int       `json:"xp_reward"`
}

// Profile carries a user's gamification state.
type Profile struct {
	UserID          string         `json:"user_id"`
	XP              int            `json:"xp"`
	Level           int            `json:"level"`
	Streak          int            `json:"streak"`
	CardsLearned    int            `json:"cards_learned"`
	LearningHistory map[string]int `json:"learning_history"` // YYYY-MM-DD -> cards passed
	Quests          []Quest        `json:"quests"`
	LastQuestDate   string         `json:"last_quest_date"` // YYYY-MM-DD
}

// XPPerLevel is the amount of XP required to advance one level.
const XPPerLevel = 500

// LevelForXP computes the level implied by a total XP amount.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}
