// Package elevenlabs synthesizes speech through the ElevenLabs REST
// API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
	"github.com/lusolab/lusocards/internal/usecase/media"
	"github.com/lusolab/lusocards/pkg/retry"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"

	// DefaultVoiceID is a multilingual voice that handles European
	// Portuguese well.
	DefaultVoiceID = "zKjRewuiqTkXNUVAMwat"

	modelID = "eleven_multilingual_v2"
)

// Config carries the ElevenLabs connection settings.
type Config struct {
	APIKey  string
	VoiceID string
	BaseURL string
}

// Client implements media.Synthesizer over the ElevenLabs API.
type Client struct {
	apiKey  string
	voiceID string
	baseURL string
	httpc   *http.Client
	retry   retry.Policy
	logger  *logrus.Logger
}

// NewClient builds a synthesizer client.
func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("elevenlabs: api key is required")
	}
	voiceID := cfg.VoiceID
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		voiceID: voiceID,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		retry:   retry.NewPolicy(isThrottled),
		logger:  logger,
	}, nil
}

func isThrottled(err error) bool {
	var serr *statusError
	return errors.As(err, &serr) && serr.code == http.StatusTooManyRequests
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("elevenlabs: status %d: %s", e.code, e.body)
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
	Speed           float64 `json:"speed"`
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// settingsFor tunes the voice per mode: card audio is slowed down for
// learners, story audio is more expressive at natural speed.
func settingsFor(mode media.Mode) voiceSettings {
	settings := voiceSettings{
		Stability:       0.75,
		SimilarityBoost: 0.75,
		UseSpeakerBoost: true,
		Speed:           0.9,
	}
	if mode == media.ModeStory {
		settings.Stability = 0.5
		settings.Speed = 1.0
	}
	return settings
}

// Synthesize implements media.Synthesizer. It returns MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, text string, mode media.Mode) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{
		Text:          text,
		ModelID:       modelID,
		VoiceSettings: settingsFor(mode),
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("elevenlabs.synthesize", err)
	}

	var audio []byte
	err = c.retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID), bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "audio/mpeg")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("xi-api-key", c.apiKey)

		resp, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return &statusError{code: resp.StatusCode, body: string(msg)}
		}
		audio, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("elevenlabs.synthesize", err)
	}
	if len(audio) == 0 {
		return nil, entity.ErrNoAudioGenerated
	}

	c.logger.WithFields(logrus.Fields{"bytes": len(audio), "mode": mode}).Debug("audio synthesized")
	return audio, nil
}
