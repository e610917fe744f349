package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/lusolab/lusocards/internal/entity"
)

// GenerateImage implements media.ImageGenerator. It returns raw image
// bytes from the image model's inline response.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var data []byte
	err := c.retry.Do(ctx, func() error {
		resp, err := c.genai.Models.GenerateContent(ctx, c.imageModel, contents, nil)
		if err != nil {
			return err
		}
		data = firstInlineImage(resp)
		return nil
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("gemini.image", err)
	}
	if len(data) == 0 {
		return nil, entity.ErrNoImageGenerated
	}
	return data, nil
}

func firstInlineImage(resp *genai.GenerateContentResponse) []byte {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
