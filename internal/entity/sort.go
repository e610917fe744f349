package entity

// SortAction says whether a suggestion targets an existing folder or a
// new one.
type SortAction string

const (
	SortActionMove   SortAction = "move"
	SortActionCreate SortAction = "create"
)

// SortSuggestion is one cluster proposed by the classification
// collaborator: a set of cards and the folder they should land in.
type SortSuggestion struct {
	Action              SortAction `json:"action"`
	TargetFolderID      string     `json:"target_folder_id"`
	SuggestedFolderName string     `json:"suggested_folder_name,omitempty"`
	CardIDs             []string   `json:"card_ids"`
}

// CardSummary is the simplified card payload sent to the classifier.
type CardSummary struct {
	ID   string `json:"id"`
	Term string `json:"term"`
}

// FolderSummary is the simplified folder payload sent to the classifier.
type FolderSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
