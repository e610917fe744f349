package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/lusolab/lusocards/internal/entity"
)

var patternsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"level": {Type: genai.TypeString},
			"patterns": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"target":      {Type: genai.TypeString},
						"explanation": {Type: genai.TypeString},
					},
					Required: []string{"target", "explanation"},
				},
			},
		},
		Required: []string{"level", "patterns"},
	},
}

// EnrichPatterns implements usecase.CardSynthesizer.
func (c *Client) EnrichPatterns(ctx context.Context, word string, examples []entity.Example) ([]entity.LevelPatterns, error) {
	payload, err := json.Marshal(examples)
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.patterns", err)
	}

	prompt := fmt.Sprintf(`Проанализируй грамматические паттерны в этих предложениях для слова %q.
ВАЖНО: Объяснения (explanation) ОБЯЗАТЕЛЬНО на РУССКОМ языке.
target - это португальское слово/фраза из предложения.
explanation - объяснение грамматического правила НА РУССКОМ.
%s`, word, payload)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	text, err := c.generateJSON(ctx, "patterns", contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   patternsSchema,
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.patterns", err)
	}

	var levels []entity.LevelPatterns
	if err := json.Unmarshal([]byte(text), &levels); err != nil {
		return nil, entity.NewCollaboratorError("gemini.patterns", fmt.Errorf("parse response: %w", err))
	}
	return levels, nil
}
