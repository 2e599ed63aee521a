package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"interviewanalyzer/internal/pipeline"
	"interviewanalyzer/models"
)

// Analyzer runs one interview analysis.
// The concrete implementation is provided by the pipeline package.
type Analyzer interface {
	Run(ctx context.Context, req pipeline.Request) (*models.Report, error)
	HasDefaultAPIKey() bool
}

// ReportStore reads archived reports.
type ReportStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context, limit int) ([]models.ReportSummary, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Analyzer       Analyzer
	Reports        ReportStore // nil when the archive is disabled
	Logger         *logrus.Logger
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(analyzer Analyzer, reports ReportStore, logger *logrus.Logger, requestTimeout time.Duration, maxUploadBytes int64) *ApplicationHandler {
	return &ApplicationHandler{
		Analyzer:       analyzer,
		Reports:        reports,
		Logger:         logger,
		RequestTimeout: requestTimeout,
		MaxUploadBytes: maxUploadBytes,
	}
}
