// @title Interview Analyzer API
// @version 1.0
// @description Transcribes interview recordings and produces speech metrics and AI feedback on the candidate.
// @BasePath /api/v1
package main

import (
	"fmt"
	"os"

	"interviewanalyzer/config"
	"interviewanalyzer/internal/app"
	"interviewanalyzer/internal/cli"
	"interviewanalyzer/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := config.InitLogger(cfg)

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	deps := &cli.Dependencies{
		App:    application,
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
