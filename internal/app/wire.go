//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"transcribe-translate/internal/app/audio"
	"transcribe-translate/internal/app/clock"
	"transcribe-translate/internal/app/pipeline"
	"transcribe-translate/internal/app/publish"
	"transcribe-translate/internal/app/speech"
	"transcribe-translate/internal/app/stager"
	"transcribe-translate/internal/app/storage"
	"transcribe-translate/internal/app/translate"
	"transcribe-translate/internal/config"
)

func provideSleeper() clock.Sleeper {
	return clock.Real{}
}

func provideStorage(cfg *config.Config) (storage.ObjectStorage, error) {
	return storage.NewMinioStorage(cfg.Storage)
}

func provideConverter() audio.Converter {
	return audio.NewFFmpegConverter()
}

func provideStager(cfg *config.Config, store storage.ObjectStorage, converter audio.Converter, logger *zap.Logger) pipeline.Stager {
	return stager.NewStager(store, converter, cfg.ScratchDir, logger)
}

func provideTranscriber(cfg *config.Config, sleeper clock.Sleeper, logger *zap.Logger) pipeline.Transcriber {
	return speech.NewDriver(cfg.Speech, sleeper, logger)
}

func provideTranslator(cfg *config.Config, logger *zap.Logger) (pipeline.Translator, error) {
	return translate.NewTranslator(cfg.Translator, logger)
}

func providePublisher(cfg *config.Config, store storage.ObjectStorage, sleeper clock.Sleeper, logger *zap.Logger) pipeline.Publisher {
	return publish.NewPublisher(store, cfg.Webhook, sleeper, logger)
}

// InitializePipeline wires a fully configured orchestrator from explicit
// configuration; no component reads ambient state
func InitializePipeline(cfg *config.Config, logger *zap.Logger) (*pipeline.Orchestrator, error) {
	wire.Build(
		provideSleeper,
		provideStorage,
		provideConverter,
		provideStager,
		provideTranscriber,
		provideTranslator,
		providePublisher,
		pipeline.New,
	)
	return &pipeline.Orchestrator{}, nil
}
