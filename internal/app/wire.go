//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/lusolab/lusocards/internal/adapter/elevenlabs"
	"github.com/lusolab/lusocards/internal/adapter/gemini"
	"github.com/lusolab/lusocards/internal/adapter/httpapi"
	adapterrepo "github.com/lusolab/lusocards/internal/adapter/repository"
	"github.com/lusolab/lusocards/internal/adapter/speech"
	"github.com/lusolab/lusocards/internal/infrastructure/config"
	"github.com/lusolab/lusocards/internal/infrastructure/database"
	"github.com/lusolab/lusocards/internal/infrastructure/server"
	"github.com/lusolab/lusocards/internal/usecase"
	"github.com/lusolab/lusocards/internal/usecase/media"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	adapterrepo.NewFlashcardRepository,
	adapterrepo.NewFolderRepository,
	adapterrepo.NewStoryRepository,
	adapterrepo.NewProfileRepository,
	adapterrepo.NewGlobalMediaRepository,
	adapterrepo.NewMediaLibrary,
	provideObjectStore,
)

var collaboratorSet = wire.NewSet(
	provideGeminiConfig,
	gemini.NewClient,
	wire.Bind(new(usecase.VocabularyExtractor), new(*gemini.Client)),
	wire.Bind(new(usecase.CardSynthesizer), new(*gemini.Client)),
	wire.Bind(new(usecase.NarrativeGenerator), new(*gemini.Client)),
	wire.Bind(new(usecase.CardClassifier), new(*gemini.Client)),
	wire.Bind(new(media.ImageGenerator), new(*gemini.Client)),

	provideElevenLabsConfig,
	elevenlabs.NewClient,
	wire.Bind(new(media.Synthesizer), new(*elevenlabs.Client)),

	provideSpeechConfig,
	speech.NewClient,
	wire.Bind(new(usecase.Transcriber), new(*speech.Client)),
)

var mediaSet = wire.NewSet(
	provideSpeaker,
	media.NewCache,
	wire.Bind(new(usecase.MediaResolver), new(*media.Cache)),
)

var usecaseSet = wire.NewSet(
	usecase.NewGenerationUsecase,
	usecase.NewSrsUsecase,
	usecase.NewPronunciationUsecase,
	usecase.NewSmartSortUsecase,
	usecase.NewStoryUsecase,
	usecase.NewFolderUsecase,
	usecase.NewProfileUsecase,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	wire.Struct(new(httpapi.Deps), "*"),
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize(ctx context.Context) (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		collaboratorSet,
		mediaSet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server", "Media"),
	)
	return nil, nil, nil
}
