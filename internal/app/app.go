// Package app wires the configured components into the pipeline used by the
// server and the CLI.
package app

import (
	"github.com/sirupsen/logrus"

	"interviewanalyzer/config"
	"interviewanalyzer/internal/aiclient"
	"interviewanalyzer/internal/archive"
	"interviewanalyzer/internal/audio"
	"interviewanalyzer/internal/pipeline"
)

type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Pipeline *pipeline.Pipeline
	Archive  *archive.Store // nil when Supabase is not configured
}

func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	var store *archive.Store
	client, err := config.NewSupabaseClient(cfg)
	if err != nil {
		return nil, err
	}
	if client != nil {
		store = archive.NewStore(client, cfg.ReportsTable, logger)
	}

	httpClient := aiclient.NewHTTPClient()
	providers := func(apiKey string) pipeline.Provider {
		return aiclient.NewAIClient(aiclient.Options{
			BaseURL:            cfg.MistralBaseURL,
			APIKey:             apiKey,
			TranscriptionModel: cfg.TranscriptionModel,
			ChatModel:          cfg.ChatModel,
			HTTPClient:         httpClient,
			Logger:             logger,
		})
	}

	opts := pipeline.Options{
		Resolver:       audio.NewResolver(cfg.FetchTimeout, cfg.MaxUploadBytes, logger),
		Providers:      providers,
		DefaultAPIKey:  cfg.MistralAPIKey,
		FillerWords:    cfg.FillerWords,
		InsightWorkers: cfg.InsightWorkers,
		Logger:         logger,
	}
	if store != nil {
		opts.Archive = store
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Pipeline: pipeline.New(opts),
		Archive:  store,
	}, nil
}
