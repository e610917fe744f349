package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/usecase"
)

// defaultExtractionCount is how many words one extraction run yields.
const defaultExtractionCount = 5

var extractionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"word":        {Type: genai.TypeString, Description: "The extracted Portuguese word (lemma/dictionary form). If Noun, include Article."},
			"translation": {Type: genai.TypeString, Description: "Russian translation."},
			"context":     {Type: genai.TypeString, Description: "Краткое объяснение на РУССКОМ языке, почему это слово выделено (контекст)."},
		},
		Required: []string{"word", "translation", "context"},
	},
}

func extractionPrompt(count int) string {
	return fmt.Sprintf(`Analyze the input. Identify exactly %d key words/phrases for learning European Portuguese.

RULES:
1. If NOUN, include definite article (o/a/os/as).
2. If VERB, provide infinitive.
3. Context in Russian.

Return JSON array.`, count)
}

// extractionCount clamps the requested item count to a sane positive
// value, defaulting when unset.
func extractionCount(requested int) int {
	if requested <= 0 {
		return defaultExtractionCount
	}
	return requested
}

// Extract implements usecase.VocabularyExtractor.
func (c *Client) Extract(ctx context.Context, input usecase.ExtractionInput) ([]entity.VocabularyItem, error) {
	prompt := extractionPrompt(extractionCount(input.Count))

	var parts []*genai.Part
	if input.Image != nil {
		parts = []*genai.Part{
			genai.NewPartFromBytes(input.Image.Data, input.Image.MIME),
			genai.NewPartFromText(prompt),
		}
	} else {
		parts = []*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("%s\n\nInput Text: %q", prompt, input.Text)),
		}
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	text, err := c.generateJSON(ctx, "extract", contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   extractionSchema,
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.extract", err)
	}

	var items []entity.VocabularyItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, entity.NewCollaboratorError("gemini.extract", fmt.Errorf("parse response: %w", err))
	}
	return items, nil
}
