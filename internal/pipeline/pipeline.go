// Package pipeline runs one interview analysis: resolve the audio,
// transcribe it, then compute insights and metrics and assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"interviewanalyzer/internal/audio"
	"interviewanalyzer/internal/insights"
	"interviewanalyzer/internal/metrics"
	"interviewanalyzer/models"
	"interviewanalyzer/utils"
)

// Transcriber turns audio into a time-coded transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, a *audio.Audio) (*models.Transcript, error)
}

// Provider is a hosted AI backend offering transcription and chat completion.
type Provider interface {
	Transcriber
	insights.Completer
}

// ProviderFactory builds a Provider bound to an API key.
type ProviderFactory func(apiKey string) Provider

// AudioResolver materializes the audio of a request.
type AudioResolver interface {
	Resolve(ctx context.Context, upload *audio.Upload, rawURL string) (*audio.Audio, error)
}

// Archive stores finished reports.
type Archive interface {
	Save(ctx context.Context, report *models.Report) error
}

// Request is the input of one run.
type Request struct {
	Upload *audio.Upload
	URL    string
	APIKey string // overrides the configured key when set
}

// Options configures a Pipeline.
type Options struct {
	Resolver       AudioResolver
	Providers      ProviderFactory
	DefaultAPIKey  string
	FillerWords    []string
	InsightWorkers int
	Archive        Archive // optional
	Logger         *logrus.Logger
}

// Pipeline sequences the components of an analysis run. It holds no state
// between runs and is safe for concurrent use.
type Pipeline struct {
	opts Options
	now  func() time.Time
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.InsightWorkers < 1 {
		opts.InsightWorkers = 1
	}
	return &Pipeline{opts: opts, now: time.Now}
}

// HasDefaultAPIKey reports whether runs without a per-request key can proceed.
func (p *Pipeline) HasDefaultAPIKey() bool {
	return p.opts.DefaultAPIKey != ""
}

// Run executes one analysis. Input and auth errors are returned before any
// API call; transcription errors abort the run; insight failures only add
// warnings to the report.
func (p *Pipeline) Run(ctx context.Context, req Request) (*models.Report, error) {
	report := &models.Report{ID: uuid.New(), StartedAt: p.now().UTC()}
	log := p.opts.Logger.WithField("report_id", report.ID)

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = p.opts.DefaultAPIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: a Mistral API key is required; set MISTRAL_API_KEY or enter one in the form", utils.ErrAuth)
	}

	a, err := p.opts.Resolver.Resolve(ctx, req.Upload, req.URL)
	if err != nil {
		log.WithError(err).Warn("Audio input rejected")
		return nil, err
	}
	report.Audio = models.AudioInfo{
		Source:      a.Source,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		SizeBytes:   len(a.Data),
	}
	if a.Duration != nil {
		seconds := a.Duration.Seconds()
		report.Audio.Duration = &seconds
	}
	log = log.WithField("filename", a.Filename)
	log.Info("Step 1/2: transcribing audio")

	provider := p.opts.Providers(apiKey)
	transcript, err := provider.Transcribe(ctx, a)
	if err != nil {
		log.WithError(err).Error("Transcription failed")
		return nil, err
	}
	report.Transcript = *transcript

	log.WithField("segments", len(transcript.Segments)).Info("Step 2/2: analyzing interview content")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		report.Metrics = metrics.Calculate(transcript, p.opts.FillerWords)
	}()

	analyzer := insights.NewAnalyzer(provider, p.opts.InsightWorkers, p.opts.Logger)
	result, warnings := analyzer.Analyze(ctx, transcript)
	wg.Wait()

	report.Insights = result
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, w.Error())
	}
	report.CompletedAt = p.now().UTC()

	if p.opts.Archive != nil {
		if err := p.opts.Archive.Save(ctx, report); err != nil {
			log.WithError(err).Warn("Could not archive report")
			report.Warnings = append(report.Warnings, "archive: "+err.Error())
		} else {
			archivedAt := p.now().UTC()
			report.ArchivedAt = &archivedAt
		}
	}

	log.WithFields(logrus.Fields{
		"warnings":    len(report.Warnings),
		"duration_ms": report.CompletedAt.Sub(report.StartedAt).Milliseconds(),
	}).Info("Analysis completed")
	return report, nil
}
