package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/lusolab/lusocards/internal/entity"
)

var sortSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"action":                {Type: genai.TypeString, Enum: []string{"move", "create"}},
			"target_folder_id":      {Type: genai.TypeString},
			"suggested_folder_name": {Type: genai.TypeString},
			"card_ids":              {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"action", "target_folder_id", "card_ids"},
	},
}

// SuggestFolders implements usecase.CardClassifier.
func (c *Client) SuggestFolders(ctx context.Context, cards []entity.CardSummary, folders []entity.FolderSummary) ([]entity.SortSuggestion, error) {
	cardsJSON, err := json.Marshal(cards)
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.sort", err)
	}
	foldersJSON, err := json.Marshal(folders)
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.sort", err)
	}

	prompt := fmt.Sprintf(`Sort these cards into folders. Create new folders (in Russian) if needed for clusters > 1 card.
Folders: %s
Cards: %s`, foldersJSON, cardsJSON)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	text, err := c.generateJSON(ctx, "sort", contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   sortSchema,
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.sort", err)
	}

	var suggestions []entity.SortSuggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, entity.NewCollaboratorError("gemini.sort", fmt.Errorf("parse response: %w", err))
	}
	return suggestions, nil
}
