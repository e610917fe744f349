package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/lusolab/lusocards/internal/entity"
)

var storySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"target_text": {Type: genai.TypeString},
		"native_text": {Type: genai.TypeString},
	},
	Required: []string{"target_text", "native_text"},
}

// GenerateStory implements usecase.NarrativeGenerator.
func (c *Client) GenerateStory(ctx context.Context, words []string) (*entity.StoryDraft, error) {
	prompt := fmt.Sprintf(`Create a simple European Portuguese story (A2-B1) using: %s.
1-3 sentences. Return the Portuguese text (target_text) and a Russian translation (native_text).`, strings.Join(words, ", "))
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	text, err := c.generateJSON(ctx, "story", contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   storySchema,
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.story", err)
	}

	var draft entity.StoryDraft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return nil, entity.NewCollaboratorError("gemini.story", fmt.Errorf("parse response: %w", err))
	}
	return &draft, nil
}
