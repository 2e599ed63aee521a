package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrest "github.com/supabase-community/postgrest-go"

	"interviewanalyzer/config"
	"interviewanalyzer/internal/app"
	"interviewanalyzer/internal/archive"
	"interviewanalyzer/internal/audiotest"
	"interviewanalyzer/internal/mistraltest"
	"interviewanalyzer/internal/version"
	"interviewanalyzer/models"
)

func newDeps(t *testing.T, apiKey string) (*Dependencies, *mistraltest.Server) {
	t.Helper()
	srv := mistraltest.NewServer("good-key")
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.MistralBaseURL = srv.URL
	cfg.MistralAPIKey = apiKey

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	a, err := app.New(cfg, logger)
	require.NoError(t, err)
	return &Dependencies{App: a, Config: cfg}, srv
}

func execute(t *testing.T, deps *Dependencies, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(deps)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.wav")
	require.NoError(t, os.WriteFile(path, audiotest.WAV(2*time.Second, 8000), 0o644))
	return path
}

func TestAnalyzeJSON(t *testing.T) {
	deps, srv := newDeps(t, "good-key")

	stdout, stderr, err := execute(t, deps, "analyze", "--file", writeRecording(t), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Analyzing")

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "interview.wav", report.Audio.Filename)
	assert.Len(t, report.Transcript.Segments, 4)
	assert.True(t, report.Insights.Scores.Available)
	assert.Equal(t, 1, srv.TranscriptionCalls())
}

func TestAnalyzeText(t *testing.T) {
	deps, _ := newDeps(t, "")

	stdout, _, err := execute(t, deps, "analyze", "-f", writeRecording(t), "--api-key", "good-key")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Communication: 8/10")
	assert.Contains(t, stdout, "  - Clear communication")
}

func TestAnalyzeFlagErrors(t *testing.T) {
	deps, srv := newDeps(t, "good-key")

	_, _, err := execute(t, deps, "analyze")
	require.Error(t, err)

	_, _, err = execute(t, deps, "analyze", "--file", "a.wav", "--url", "https://example.com/a.wav")
	require.Error(t, err)

	_, _, err = execute(t, deps, "analyze", "--file", writeRecording(t), "--format", "xml")
	require.Error(t, err)

	assert.Zero(t, srv.TranscriptionCalls())
}

func TestAnalyzeWithoutKey(t *testing.T) {
	deps, srv := newDeps(t, "")
	_, _, err := execute(t, deps, "analyze", "--file", writeRecording(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
	assert.Zero(t, srv.TranscriptionCalls())
}

func TestDoctor(t *testing.T) {
	deps, _ := newDeps(t, "")
	stdout, _, err := execute(t, deps, "doctor")
	require.NoError(t, err)
	assert.Contains(t, stdout, "❌ Mistral API key")
	assert.Contains(t, stdout, "Report archive: disabled")
}

func TestReportsWithoutArchive(t *testing.T) {
	deps, _ := newDeps(t, "good-key")
	_, _, err := execute(t, deps, "reports")
	require.Error(t, err)
}

func withArchive(t *testing.T, deps *Dependencies, report models.Report) {
	t.Helper()
	payload, err := json.Marshal(report)
	require.NoError(t, err)
	row := models.ReportRecord{ID: report.ID, Source: report.Audio.Source, Report: payload, CreatedAt: report.CompletedAt}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if id := r.URL.Query().Get("id"); id != "" && id != "eq."+report.ID.String() {
			io.WriteString(w, "[]")
			return
		}
		json.NewEncoder(w).Encode([]models.ReportRecord{row})
	}))
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	deps.App.Archive = archive.NewStore(postgrest.NewClient(srv.URL, "", nil), "interview_reports", logger)
}

func TestReportsListAndShow(t *testing.T) {
	deps, _ := newDeps(t, "good-key")
	report := models.Report{
		ID:          uuid.New(),
		Audio:       models.AudioInfo{Source: "upload", Filename: "interview.wav"},
		CompletedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	withArchive(t, deps, report)

	stdout, _, err := execute(t, deps, "reports")
	require.NoError(t, err)
	assert.Contains(t, stdout, report.ID.String())

	stdout, _, err = execute(t, deps, "reports", "--format", "json")
	require.NoError(t, err)
	var listed []models.ReportSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, report.ID, listed[0].ID)

	stdout, _, err = execute(t, deps, "reports", report.ID.String(), "--format", "json")
	require.NoError(t, err)
	var decoded models.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, report.ID, decoded.ID)

	_, _, err = execute(t, deps, "reports", uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, _, err = execute(t, deps, "reports", "not-a-uuid")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	deps, _ := newDeps(t, "good-key")
	stdout, _, err := execute(t, deps, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version.Full())
}
