package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/lusolab/lusocards/internal/entity"
)

var verbFormsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"eu":   {Type: genai.TypeString},
		"tu":   {Type: genai.TypeString},
		"ele":  {Type: genai.TypeString},
		"nos":  {Type: genai.TypeString},
		"eles": {Type: genai.TypeString},
	},
	Required: []string{"eu", "tu", "ele", "nos", "eles"},
}

var detailSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"definition":    {Type: genai.TypeString},
		"grammar_notes": {Type: genai.TypeString},
		"visual_prompt": {Type: genai.TypeString},
		"frequency": {
			Type: genai.TypeString,
			Enum: []string{"Top 500", "Top 1000", "Top 3000", "Top 5000", "10000+"},
		},
		"conjugation": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"is_verb": {Type: genai.TypeBoolean},
				"tenses": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"presente":   verbFormsSchema,
						"perfeito":   verbFormsSchema,
						"imperfeito": verbFormsSchema,
						"futuro":     verbFormsSchema,
					},
				},
			},
			Required: []string{"is_verb"},
		},
		"examples": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"level":       {Type: genai.TypeString, Enum: []string{"A1", "A2", "B1", "B2"}},
					"sentence":    {Type: genai.TypeString},
					"translation": {Type: genai.TypeString},
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
				Required: []string{"level", "sentence", "translation"},
			},
		},
	},
	Required: []string{"definition", "grammar_notes", "examples", "visual_prompt", "conjugation"},
}

func detailInstruction(word string) string {
	return fmt.Sprintf(`Create a study card for: %q.
Target: European Portuguese.
Output Language for explanations: Russian.

Requirements:
1. Definition in simple PT.
2. 4 Examples (A1-B2).
3. Visual prompt: Write a detailed prompt for generating a REALISTIC, life-like illustration of this word.
   The prompt should describe a concrete scene or object that represents the word's meaning.
   Style: Modern digital art, warm colors, soft lighting, educational flashcard style.
   Example for "o pão": "A freshly baked loaf of bread on a wooden cutting board, with steam rising, warm kitchen background"
4. Grammar notes in Russian.
5. Frequency rank estimate.
6. Conjugation if verb (Present, Perf, Imperf, Future).`, word)
}

// GenerateCardDetails implements usecase.CardSynthesizer.
func (c *Client) GenerateCardDetails(ctx context.Context, word, translation string) (*entity.CardDetails, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf("Generate details for %q (translation: %q)", word, translation), genai.RoleUser),
	}

	text, err := c.generateJSON(ctx, "details", contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(detailInstruction(word), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    detailSchema,
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.details", err)
	}

	var details entity.CardDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, entity.NewCollaboratorError("gemini.details", fmt.Errorf("parse response: %w", err))
	}
	return &details, nil
}
