package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/lusolab/lusocards/pkg/retry"
)

const (
	// DefaultTextModel handles extraction, details, stories and sorting.
	DefaultTextModel = "gemini-2.5-flash"
	// DefaultImageModel produces card illustrations.
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Config carries the Gemini connection settings.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// Client wraps the Gemini API behind the collaborator interfaces the
// core defines. All calls retry on rate limiting.
type Client struct {
	genai      *genai.Client
	textModel  string
	imageModel string
	retry      retry.Policy
	logger     *logrus.Logger
}

// NewClient connects to Gemini.
func NewClient(ctx context.Context, cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	textModel := cfg.TextModel
	if textModel == "" {
		textModel = DefaultTextModel
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	return &Client{
		genai:      client,
		textModel:  textModel,
		imageModel: imageModel,
		retry:      retry.NewPolicy(isRateLimit),
		logger:     logger,
	}, nil
}

// isRateLimit matches quota exhaustion in its various shapes.
func isRateLimit(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "exhausted")
}

// generateJSON runs a structured-output generation and returns the raw
// JSON text.
func (c *Client) generateJSON(ctx context.Context, op string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	var text string
	err := c.retry.Do(ctx, func() error {
		resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, contents, config)
		if err != nil {
			return err
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%s: empty model response", op)
	}
	return text, nil
}
