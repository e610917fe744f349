// Package speech transcribes voice recordings through the Google
// Cloud Speech-to-Text REST API.
package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lusolab/lusocards/internal/entity"
)

const defaultBaseURL = "https://speech.googleapis.com"

// Recordings arrive as browser-captured WebM/Opus at 48kHz.
const (
	encoding   = "WEBM_OPUS"
	sampleRate = 48000
)

// Config carries the Speech-to-Text connection settings.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client implements usecase.Transcriber.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	logger  *logrus.Logger
}

// NewClient builds a transcription client.
func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("speech: api key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}, nil
}

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding             string `json:"encoding"`
	SampleRateHertz      int    `json:"sampleRateHertz"`
	LanguageCode         string `json:"languageCode"`
	EnableWordConfidence bool   `json:"enableWordConfidence"`
	Model                string `json:"model"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
			Words      []struct {
				Word       string  `json:"word"`
				Confidence float64 `json:"confidence"`
			} `json:"words"`
		} `json:"alternatives"`
	} `json:"results"`
}

// languageCode maps a study language to the regional STT code.
func languageCode(lang entity.Language) string {
	switch lang {
	case entity.LanguageRussian:
		return "ru-RU"
	case entity.LanguageEnglish:
		return "en-US"
	case entity.LanguageSpanish:
		return "es-ES"
	case entity.LanguageFrench:
		return "fr-FR"
	default:
		return "pt-PT"
	}
}

// Transcribe implements usecase.Transcriber.
func (c *Client) Transcribe(ctx context.Context, audio []byte, lang entity.Language) (*entity.Transcription, error) {
	body, err := json.Marshal(recognizeRequest{
		Config: recognizeConfig{
			Encoding:             encoding,
			SampleRateHertz:      sampleRate,
			LanguageCode:         languageCode(lang),
			EnableWordConfidence: true,
			Model:                "default",
		},
		Audio: recognizeAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	})
	if err != nil {
		return nil, entity.NewCollaboratorError("speech.transcribe", err)
	}

	url := fmt.Sprintf("%s/v1/speech:recognize?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, entity.NewCollaboratorError("speech.transcribe", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, entity.NewCollaboratorError("speech.transcribe", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, entity.NewCollaboratorError("speech.transcribe",
			fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	var parsed recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, entity.NewCollaboratorError("speech.transcribe", err)
	}

	// No results is a valid outcome: silence or noise.
	if len(parsed.Results) == 0 || len(parsed.Results[0].Alternatives) == 0 {
		return &entity.Transcription{}, nil
	}

	alt := parsed.Results[0].Alternatives[0]
	result := &entity.Transcription{
		Transcript: alt.Transcript,
		Confidence: alt.Confidence,
	}
	for _, w := range alt.Words {
		result.Words = append(result.Words, entity.WordConfidence{Word: w.Word, Confidence: w.Confidence})
	}

	c.logger.WithFields(logrus.Fields{
		"confidence": result.Confidence,
		"words":      len(result.Words),
	}).Debug("transcription complete")
	return result, nil
}
