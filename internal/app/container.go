package app

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lusolab/lusocards/internal/adapter/elevenlabs"
	"github.com/lusolab/lusocards/internal/adapter/gemini"
	adapterrepo "github.com/lusolab/lusocards/internal/adapter/repository"
	"github.com/lusolab/lusocards/internal/adapter/speech"
	"github.com/lusolab/lusocards/internal/infrastructure/config"
	"github.com/lusolab/lusocards/internal/infrastructure/server"
	"github.com/lusolab/lusocards/internal/repository"
	"github.com/lusolab/lusocards/internal/usecase/media"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
	Media  *media.Cache
}

func provideGeminiConfig(cfg *config.Config) gemini.Config {
	return gemini.Config{
		APIKey:     cfg.Providers.Gemini.APIKey,
		TextModel:  cfg.Providers.Gemini.TextModel,
		ImageModel: cfg.Providers.Gemini.ImageModel,
	}
}

func provideElevenLabsConfig(cfg *config.Config) elevenlabs.Config {
	return elevenlabs.Config{
		APIKey:  cfg.Providers.ElevenLabs.APIKey,
		VoiceID: cfg.Providers.ElevenLabs.VoiceID,
		BaseURL: cfg.Providers.ElevenLabs.BaseURL,
	}
}

func provideSpeechConfig(cfg *config.Config) speech.Config {
	return speech.Config{
		APIKey:  cfg.Providers.Speech.APIKey,
		BaseURL: cfg.Providers.Speech.BaseURL,
	}
}

func provideObjectStore(db *gorm.DB, cfg *config.Config) repository.ObjectStore {
	return adapterrepo.NewObjectStore(db, cfg.Media.PublicBaseURL)
}

func provideSpeaker(cfg *config.Config) media.Sink {
	return media.NewSpeaker(cfg.Media.SampleRate)
}
