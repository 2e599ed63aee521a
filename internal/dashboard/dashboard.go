// Package dashboard turns a report into the view model rendered by the HTML
// views. Every optional part of a report that is missing becomes a
// placeholder, so a well-formed report always renders.
package dashboard

import (
	"fmt"
	"html/template"
	"sort"

	"interviewanalyzer/internal/metrics"
	"interviewanalyzer/models"
)

// NoStages replaces the stage table when no stages are known.
const NoStages = "Stage breakdown unavailable."

// Tab identifiers, in display order.
var Tabs = []Tab{
	{ID: "transcript", Title: "Transcript"},
	{ID: "overview", Title: "Overview"},
	{ID: "insights", Title: "Candidate Insights"},
	{ID: "scorecard", Title: "Performance Scorecard"},
	{ID: "followup", Title: "Follow-up Questions"},
}

// Tab is one dashboard tab.
type Tab struct {
	ID    string
	Title string
}

// Page is the data bound to the index view.
type Page struct {
	Title         string
	HasDefaultKey bool
	AudioURL      string
	Error         string
	ErrorKind     string
	Tabs          []Tab
	Report        *View
}

// NewPage returns the upload page without a report.
func NewPage(hasDefaultKey bool) Page {
	return Page{Title: "Interview Analyzer", HasDefaultKey: hasDefaultKey, Tabs: Tabs}
}

// View is the rendered form of a report.
type View struct {
	ID       string
	Filename string
	Source   string
	Duration string
	Warnings []string

	Segments        []SegmentRow
	TranscriptEmpty bool
	TranscriptText  string
	Stages          []StageRow
	StagesNote      string

	Metrics   []MetricCard
	Fillers   []FillerRow
	Timeline  template.HTML
	Speakers  []LegendEntry
	Strengths Section
	Improve   Section
	FollowUp  Section
	Scorecard Scorecard
}

// SegmentRow is one line of the transcript table.
type SegmentRow struct {
	Index   int
	Start   string
	End     string
	Speaker string
	Stage   string
	Text    string
}

// StageRow summarizes one conversation stage.
type StageRow struct {
	Title  string
	Range  string
	Source string
	Text   string
	Empty  bool
}

// MetricCard is one headline number of the overview tab.
type MetricCard struct {
	Label string
	Value string
	Hint  string
}

// FillerRow is the count of one filler word.
type FillerRow struct {
	Word  string
	Count int
}

// LegendEntry names a color of the timeline.
type LegendEntry struct {
	Label string
	Color string
}

// Section is a list-shaped insight.
type Section struct {
	Title       string
	Items       []string
	Placeholder string
}

// Scorecard is the performance scorecard tab.
type Scorecard struct {
	Available   bool
	Placeholder string
	Radar       template.HTML
	Cards       []ScoreCard
	Explanation string
}

// ScoreCard is one scored dimension.
type ScoreCard struct {
	Label   string
	Value   int
	Max     int
	Percent int
}

// Build converts a report into its view. It never fails.
func Build(r *models.Report) *View {
	v := &View{
		ID:       r.ID.String(),
		Filename: r.Audio.Filename,
		Source:   r.Audio.Source,
		Duration: formatDuration(r.Metrics.Duration),
		Warnings: r.Warnings,
	}

	buildTranscript(v, &r.Transcript, r.Insights.Stages)
	buildOverview(v, &r.Transcript, r.Metrics)

	v.Strengths = section("Key Strengths", r.Insights.Strengths)
	v.Improve = section("Areas for Improvement", r.Insights.Improvements)
	v.FollowUp = section("Suggested Follow-up Questions", r.Insights.FollowUp)
	v.Scorecard = scorecard(r.Insights.Scores)
	return v
}

func buildTranscript(v *View, t *models.Transcript, stages []models.Stage) {
	v.TranscriptText = t.FullText()
	if t.IsEmpty() {
		v.TranscriptEmpty = true
	}

	label, labeled := metrics.InterviewerLabel(t.Segments)
	for i, seg := range t.Segments {
		v.Segments = append(v.Segments, SegmentRow{
			Index:   i,
			Start:   formatTimestamp(seg.StartTime),
			End:     formatTimestamp(seg.EndTime),
			Speaker: speakerName(i, seg, labeled, label),
			Stage:   stageOf(i, stages),
			Text:    seg.Text,
		})
	}

	if len(stages) == 0 {
		v.StagesNote = NoStages
		return
	}
	for _, s := range stages {
		row := StageRow{Title: s.Name.Title(), Source: s.Source, Empty: s.Empty()}
		if !row.Empty {
			row.Range = fmt.Sprintf("%s - %s", formatTimestamp(s.StartTime), formatTimestamp(s.EndTime))
			row.Text = s.Text
		}
		v.Stages = append(v.Stages, row)
	}
	if stages[0].Source == models.StageSourceEstimated {
		v.StagesNote = "Stage boundaries are estimated from segment positions."
	}
}

func buildOverview(v *View, t *models.Transcript, m models.Metrics) {
	v.Metrics = []MetricCard{
		{Label: "Duration", Value: formatDuration(m.Duration)},
		{Label: "Word Count", Value: fmt.Sprintf("%d", m.WordCount)},
		{Label: "Speaking Pace", Value: fmt.Sprintf("%.0f wpm", m.WordsPerMinute)},
		{Label: "Filler Words", Value: fmt.Sprintf("%d", m.FillerCount), Hint: fmt.Sprintf("%.1f%% of words", m.FillerFrequency*100)},
		{Label: "Candidate Talk Ratio", Value: fmt.Sprintf("%.0f%%", m.TalkRatio*100), Hint: "share of speaking time"},
		{Label: "Segments", Value: fmt.Sprintf("%d", m.SegmentCount)},
	}

	for word, n := range m.FillerBreakdown {
		if n > 0 {
			v.Fillers = append(v.Fillers, FillerRow{Word: word, Count: n})
		}
	}
	sort.Slice(v.Fillers, func(i, j int) bool {
		if v.Fillers[i].Count != v.Fillers[j].Count {
			return v.Fillers[i].Count > v.Fillers[j].Count
		}
		return v.Fillers[i].Word < v.Fillers[j].Word
	})

	v.Timeline = Timeline(t.Segments)
	v.Speakers = []LegendEntry{
		{Label: "Interviewer", Color: interviewerColor},
		{Label: "Candidate", Color: candidateColor},
	}
}

func section(title string, in models.Insight) Section {
	s := Section{Title: title, Items: in.Items}
	if !in.Available || len(in.Items) == 0 {
		s.Items = nil
		s.Placeholder = in.Error
		if s.Placeholder == "" {
			s.Placeholder = "No " + title + " available."
		}
	}
	return s
}

func scorecard(in models.Scores) Scorecard {
	if !in.Available || len(in.Values) == 0 {
		placeholder := in.Error
		if placeholder == "" {
			placeholder = "No performance scores available."
		}
		return Scorecard{Placeholder: placeholder, Explanation: in.Explanation}
	}

	sc := Scorecard{Available: true, Explanation: in.Explanation, Radar: Radar(in.Values)}
	for _, d := range models.ScoreDimensions {
		value := in.Values[d]
		sc.Cards = append(sc.Cards, ScoreCard{
			Label:   d.Label(),
			Value:   value,
			Max:     models.MaxScore,
			Percent: value * 100 / models.MaxScore,
		})
	}
	return sc
}

func speakerName(i int, seg models.TranscriptSegment, labeled bool, label string) string {
	role := "Candidate"
	if metrics.IsInterviewer(i, seg, labeled, label) {
		role = "Interviewer"
	}
	if seg.Speaker != nil && *seg.Speaker != "" {
		return fmt.Sprintf("%s (%s)", role, *seg.Speaker)
	}
	return role
}

func stageOf(i int, stages []models.Stage) string {
	for _, s := range stages {
		if !s.Empty() && i >= s.FirstSegment && i <= s.LastSegment {
			return s.Name.Title()
		}
	}
	return ""
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}
