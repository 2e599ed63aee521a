package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"interviewanalyzer/models"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Analyzing(source string) {
	fmt.Fprintf(f.w, "🎙️  Analyzing %s...\n", source)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func (f *Formatter) ReportListHeader() {
	fmt.Fprintf(f.w, "📁 Archived reports:\n\n")
}

func (f *Formatter) ReportListItem(r models.ReportSummary) {
	fmt.Fprintf(f.w, "  %s  %s  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ID, r.Source)
}

// Report writes the report in the requested format.
func (f *Formatter) Report(r *models.Report, format string) error {
	return f.encode(r, format, func() { f.text(r) })
}

// ReportList writes archived report summaries in the requested format.
func (f *Formatter) ReportList(items []models.ReportSummary, format string) error {
	return f.encode(items, format, func() {
		if len(items) == 0 {
			f.Info("No reports found")
			return
		}
		f.ReportListHeader()
		for _, r := range items {
			f.ReportListItem(r)
		}
	})
}

func (f *Formatter) encode(v interface{}, format string, text func()) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(f.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		return f.yaml(v)
	case FormatText, "":
		text()
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// yaml goes through JSON so the keys match the API field names.
func (f *Formatter) yaml(v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(f.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (f *Formatter) text(r *models.Report) {
	m := r.Metrics
	fmt.Fprintf(f.w, "📝 %s (%s, %d segments)\n\n", r.Audio.Filename, formatDuration(m.Duration), m.SegmentCount)

	fmt.Fprintf(f.w, "Metrics\n")
	fmt.Fprintf(f.w, "  Words: %d   Pace: %.0f wpm\n", m.WordCount, m.WordsPerMinute)
	fmt.Fprintf(f.w, "  Filler words: %d (%.1f%%)\n", m.FillerCount, m.FillerFrequency*100)
	fmt.Fprintf(f.w, "  Candidate talk ratio: %.0f%%\n\n", m.TalkRatio*100)

	fmt.Fprintf(f.w, "Scores\n")
	if r.Insights.Scores.Available {
		for _, d := range models.ScoreDimensions {
			fmt.Fprintf(f.w, "  %s: %d/%d\n", d.Label(), r.Insights.Scores.Values[d], models.MaxScore)
		}
	} else {
		fmt.Fprintf(f.w, "  %s\n", placeholder(r.Insights.Scores.Error))
	}
	fmt.Fprintln(f.w)

	f.section("Key strengths", r.Insights.Strengths)
	f.section("Areas for improvement", r.Insights.Improvements)
	f.section("Follow-up questions", r.Insights.FollowUp)

	if len(r.Insights.Stages) > 0 {
		fmt.Fprintf(f.w, "Stages\n")
		for _, s := range r.Insights.Stages {
			if s.Empty() {
				fmt.Fprintf(f.w, "  %s: not present\n", s.Name.Title())
				continue
			}
			fmt.Fprintf(f.w, "  %s: %s-%s (%s)\n", s.Name.Title(), formatClock(s.StartTime), formatClock(s.EndTime), s.Source)
		}
		fmt.Fprintln(f.w)
	}

	for _, w := range r.Warnings {
		f.Warning(w)
	}
}

func (f *Formatter) section(title string, in models.Insight) {
	fmt.Fprintf(f.w, "%s\n", title)
	if !in.Available || len(in.Items) == 0 {
		fmt.Fprintf(f.w, "  %s\n\n", placeholder(in.Error))
		return
	}
	for _, item := range in.Items {
		fmt.Fprintf(f.w, "  - %s\n", strings.ReplaceAll(item, "\n", " "))
	}
	fmt.Fprintln(f.w)
}

func placeholder(msg string) string {
	if msg == "" {
		return "(not available)"
	}
	return msg
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
