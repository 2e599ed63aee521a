package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewanalyzer/internal/insights"
	"interviewanalyzer/models"
)

func fullReport() *models.Report {
	segments := []models.TranscriptSegment{
		{Text: "Tell me about yourself.", StartTime: 0, EndTime: 3},
		{Text: "Um, I build <b>APIs</b> in Go.", StartTime: 3, EndTime: 9},
		{Text: "Any questions for us?", StartTime: 9, EndTime: 11},
		{Text: "Like, what is the team size?", StartTime: 11, EndTime: 14},
	}
	return &models.Report{
		ID:         uuid.New(),
		Audio:      models.AudioInfo{Source: "upload", Filename: "interview.wav"},
		Transcript: models.Transcript{Segments: segments},
		Metrics: models.Metrics{
			Duration: 14, WordCount: 20, FillerCount: 2, FillerFrequency: 0.1,
			FillerBreakdown: map[string]int{"um": 1, "like": 1, "uh": 0},
			TalkRatio:       0.64, SegmentCount: 4, WordsPerMinute: 85.7,
		},
		Insights: models.Insights{
			Strengths:    models.Insight{Items: []string{"Clear communication", "<script>alert(1)</script>"}, Available: true},
			Improvements: models.Insight{Items: []string{"Use the STAR method"}, Available: true},
			FollowUp:     models.Insight{Items: []string{"How do you test Go code?"}, Available: true},
			Scores: models.Scores{Available: true, Explanation: "Good overall.", Values: map[models.ScoreDimension]int{
				models.ScoreCommunication: 8, models.ScoreTechnicalSkill: 7, models.ScoreStarMethodUsage: 5,
			}},
			Stages: []models.Stage{
				{Name: models.StageIntroductions, FirstSegment: 0, LastSegment: 1, EndTime: 9, Source: models.StageSourceModel},
				{Name: models.StageBehavioralQuestions, FirstSegment: 1, LastSegment: 0, Source: models.StageSourceModel},
				{Name: models.StageCandidateQuestions, FirstSegment: 2, LastSegment: 3, StartTime: 9, EndTime: 14, Source: models.StageSourceModel},
			},
		},
	}
}

func degradedReport() *models.Report {
	r := fullReport()
	r.Insights = models.Insights{
		Strengths:    models.Insight{Error: insights.StrengthsUnavailable},
		Improvements: models.Insight{Error: insights.ImprovementsUnavailable},
		FollowUp:     models.Insight{Error: insights.FollowUpUnavailable},
		Scores:       models.Scores{Error: insights.ScoresUnavailable, Explanation: "The candidate was fine."},
	}
	r.Warnings = []string{"scores: insight parse error"}
	return r
}

func render(t *testing.T, page Page) string {
	t.Helper()
	engine, err := NewEngine()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, engine.Render(&buf, IndexView, page, LayoutView))
	return buf.String()
}

func TestBuildFullReport(t *testing.T) {
	v := Build(fullReport())

	require.Len(t, v.Segments, 4)
	assert.Equal(t, "Interviewer", v.Segments[0].Speaker)
	assert.Equal(t, "Candidate", v.Segments[1].Speaker)
	assert.Equal(t, "Introductions", v.Segments[1].Stage)
	assert.Equal(t, "Candidate Questions", v.Segments[3].Stage)
	assert.Equal(t, "00:09", v.Segments[2].Start)

	require.Len(t, v.Stages, 3)
	assert.True(t, v.Stages[1].Empty)
	assert.Equal(t, "00:09 - 00:14", v.Stages[2].Range)

	require.Len(t, v.Fillers, 2)
	assert.Equal(t, "like", v.Fillers[0].Word)
	assert.Equal(t, "14s", v.Duration)
	assert.NotEmpty(t, v.Timeline)

	assert.True(t, v.Scorecard.Available)
	require.Len(t, v.Scorecard.Cards, 3)
	assert.Equal(t, "Communication", v.Scorecard.Cards[0].Label)
	assert.Equal(t, 80, v.Scorecard.Cards[0].Percent)
	assert.Contains(t, string(v.Scorecard.Radar), "<polygon class=\"score\"")
}

func TestBuildUsesSpeakerLabels(t *testing.T) {
	r := fullReport()
	a, b := "speaker_1", "speaker_2"
	r.Transcript.Segments[0].Speaker = &a
	r.Transcript.Segments[1].Speaker = &a
	r.Transcript.Segments[2].Speaker = &b
	r.Transcript.Segments[3].Speaker = &b

	v := Build(r)
	assert.Equal(t, "Interviewer (speaker_1)", v.Segments[1].Speaker)
	assert.Equal(t, "Candidate (speaker_2)", v.Segments[2].Speaker)
}

func TestBuildDegradedReportUsesPlaceholders(t *testing.T) {
	v := Build(degradedReport())

	assert.Nil(t, v.Strengths.Items)
	assert.Equal(t, insights.StrengthsUnavailable, v.Strengths.Placeholder)
	assert.Equal(t, insights.FollowUpUnavailable, v.FollowUp.Placeholder)
	assert.False(t, v.Scorecard.Available)
	assert.Equal(t, insights.ScoresUnavailable, v.Scorecard.Placeholder)
	assert.Empty(t, v.Scorecard.Radar)
	assert.Equal(t, NoStages, v.StagesNote)

	// Transcript and metrics do not depend on the model answers.
	assert.Len(t, v.Segments, 4)
	assert.NotEmpty(t, v.Metrics)
}

func TestBuildEmptyReport(t *testing.T) {
	v := Build(&models.Report{})
	assert.True(t, v.TranscriptEmpty)
	assert.Empty(t, v.Timeline)
	assert.Equal(t, "0s", v.Duration)
	assert.NotEmpty(t, v.Strengths.Placeholder)
}

func TestRenderUploadPage(t *testing.T) {
	page := NewPage(false)
	page.Error = "file is not audio"
	page.ErrorKind = "invalid_input"

	out := render(t, page)
	assert.Contains(t, out, `action="/analyze"`)
	assert.Contains(t, out, "file is not audio")
	assert.Contains(t, out, "Required")
	assert.NotContains(t, out, `id="panel-transcript"`)
}

func TestRenderReportEscapesModelText(t *testing.T) {
	page := NewPage(true)
	page.Report = Build(fullReport())

	out := render(t, page)
	for _, tab := range Tabs {
		assert.Contains(t, out, `id="panel-`+tab.ID+`"`)
		assert.Contains(t, out, ">"+tab.Title+"</label>")
	}
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;b&gt;APIs&lt;/b&gt;")
	assert.Contains(t, out, "<svg class=\"radar\"")
	assert.Contains(t, out, "8/10")
}

func TestRenderDegradedReport(t *testing.T) {
	page := NewPage(true)
	page.Report = Build(degradedReport())

	out := render(t, page)
	assert.Contains(t, out, "Tell me about yourself.")
	assert.Contains(t, out, "Word Count")
	assert.Contains(t, out, insights.ScoresUnavailable)
	assert.Contains(t, out, "scores: insight parse error")
	assert.False(t, strings.Contains(out, `<svg class="radar"`))
}
