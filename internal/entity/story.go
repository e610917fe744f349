package entity

// StoryDraft is the narrative collaborator's output before it is saved.
type StoryDraft struct {
	TargetText string `json:"target_text"` // study-language narrative
	NativeText string `json:"native_text"` // reader's-language translation
}

// Story is a saved narrative assembled from a user's word pool.
type Story struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	TargetText string   `json:"target_text"`
	NativeText string   `json:"native_text"`
	AudioURL   string   `json:"audio_url,omitempty"`
	WordsUsed  []string `json:"words_used"`
	CreatedAt  int64    `json:"created_at"` // epoch ms
}
