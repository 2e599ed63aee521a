// Package insights asks a chat-completion model for the qualitative parts of
// an interview report and parses the answers with best-effort fallbacks.
package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"interviewanalyzer/internal/worker"
	"interviewanalyzer/models"
)

// Completer is the chat-completion capability the analyzer needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Placeholder texts shown when a section could not be produced.
const (
	StrengthsUnavailable    = "Could not analyze strengths."
	ImprovementsUnavailable = "Could not analyze areas for improvement."
	FollowUpUnavailable     = "Could not generate follow-up questions."
	ScoresUnavailable       = "No performance scores available."
)

// Analyzer produces the Insights of a transcript.
type Analyzer struct {
	completer Completer
	workers   int
	logger    *logrus.Logger
}

// NewAnalyzer creates an Analyzer that runs up to workers prompts at once.
func NewAnalyzer(completer Completer, workers int, logger *logrus.Logger) *Analyzer {
	return &Analyzer{completer: completer, workers: workers, logger: logger}
}

// promptJob is one chat-completion call.
type promptJob struct {
	name      string
	prompt    string
	completer Completer
	answer    string
	err       error
}

func (j *promptJob) ID() string { return j.name }

func (j *promptJob) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		j.err = err
		return err
	}
	j.answer, j.err = j.completer.Complete(ctx, j.prompt)
	return j.err
}

// Analyze issues the strengths, improvements, scoring, follow-up and stage
// prompts and parses their answers. It never fails as a whole: every section
// that could not be produced is marked unavailable and its cause is returned
// in the warnings slice.
func (a *Analyzer) Analyze(ctx context.Context, transcript *models.Transcript) (models.Insights, []error) {
	text := transcript.FullText()

	strengths := &promptJob{name: "strengths", prompt: strengthsPrompt(text), completer: a.completer}
	improvements := &promptJob{name: "improvements", prompt: improvementsPrompt(text), completer: a.completer}
	scoring := &promptJob{name: "scores", prompt: scoringPrompt(text), completer: a.completer}
	followUp := &promptJob{name: "follow_up", prompt: followUpPrompt(text), completer: a.completer}
	jobs := []worker.Job{strengths, improvements, scoring, followUp}

	var stages *promptJob
	if len(transcript.Segments) > 0 {
		stages = &promptJob{name: "stages", prompt: stagesPrompt(transcript.Segments), completer: a.completer}
		jobs = append(jobs, stages)
	}

	worker.RunAll(ctx, a.workers, a.logger.WithField("component", "insights"), jobs...)

	var warnings []error
	var out models.Insights

	out.Strengths, warnings = listSection(strengths, StrengthsUnavailable, warnings)
	out.Improvements, warnings = listSection(improvements, ImprovementsUnavailable, warnings)
	out.FollowUp, warnings = listSection(followUp, FollowUpUnavailable, warnings)

	if scoring.err != nil {
		warnings = append(warnings, fmt.Errorf("scores: %w", scoring.err))
		out.Scores = models.Scores{Error: ScoresUnavailable}
	} else if values, err := ParseScores(scoring.answer); err != nil {
		warnings = append(warnings, fmt.Errorf("scores: %w", err))
		out.Scores = models.Scores{Explanation: strings.TrimSpace(scoring.answer), Error: ScoresUnavailable}
	} else {
		out.Scores = models.Scores{Values: values, Explanation: strings.TrimSpace(scoring.answer), Available: true}
	}

	out.Stages = EstimateStages(transcript.Segments)
	if stages != nil {
		if stages.err != nil {
			warnings = append(warnings, fmt.Errorf("stages: %w", stages.err))
		} else if parsed, err := ParseStages(stages.answer, transcript.Segments); err != nil {
			warnings = append(warnings, fmt.Errorf("stages: %w", err))
		} else {
			out.Stages = parsed
		}
	}

	for _, w := range warnings {
		a.logger.WithError(w).Warn("Insight section degraded")
	}
	return out, warnings
}

func listSection(job *promptJob, placeholder string, warnings []error) (models.Insight, []error) {
	if job.err != nil {
		return models.Insight{Error: placeholder}, append(warnings, fmt.Errorf("%s: %w", job.name, job.err))
	}
	text := strings.TrimSpace(job.answer)
	return models.Insight{Text: text, Items: ParseList(text), Available: true}, warnings
}
