package dashboard

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"interviewanalyzer/internal/metrics"
	"interviewanalyzer/models"
)

const (
	interviewerColor = "#4c78a8"
	candidateColor   = "#f58518"

	timelineWidth  = 800
	timelineHeight = 48

	radarWidth  = 440
	radarHeight = 320
	radarRadius = 110
)

// Timeline draws one bar per segment colored by speaker. It returns an empty
// string when there is nothing to draw.
func Timeline(segments []models.TranscriptSegment) template.HTML {
	var total float64
	for _, seg := range segments {
		total = math.Max(total, seg.EndTime)
	}
	if total <= 0 {
		return ""
	}

	label, labeled := metrics.InterviewerLabel(segments)
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="timeline" viewBox="0 0 %d %d" role="img" aria-label="Speaker timeline">`, timelineWidth, timelineHeight+16)
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="#eee"/>`, timelineWidth, timelineHeight)
	for i, seg := range segments {
		width := seg.Duration() / total * timelineWidth
		if width <= 0 {
			continue
		}
		color := candidateColor
		if metrics.IsInterviewer(i, seg, labeled, label) {
			color = interviewerColor
		}
		fmt.Fprintf(&sb, `<rect x="%.2f" y="0" width="%.2f" height="%d" fill="%s"><title>%s-%s %s</title></rect>`,
			seg.StartTime/total*timelineWidth, width, timelineHeight, color,
			formatTimestamp(seg.StartTime), formatTimestamp(seg.EndTime), template.HTMLEscapeString(seg.Text))
	}
	fmt.Fprintf(&sb, `<text x="0" y="%d" font-size="11">00:00</text>`, timelineHeight+13)
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="11" text-anchor="end">%s</text>`, timelineWidth, timelineHeight+13, formatTimestamp(total))
	sb.WriteString(`</svg>`)
	return template.HTML(sb.String())
}

// Radar draws the scorecard as a polygon over one axis per dimension, with
// grid rings every two points.
func Radar(values map[models.ScoreDimension]int) template.HTML {
	dims := models.ScoreDimensions
	cx, cy := float64(radarWidth)/2, float64(radarHeight)/2+10

	point := func(i int, fraction float64) (float64, float64) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(dims))
		return cx + fraction*radarRadius*math.Cos(angle), cy + fraction*radarRadius*math.Sin(angle)
	}
	polygon := func(fraction func(i int) float64) string {
		pts := make([]string, len(dims))
		for i := range dims {
			x, y := point(i, fraction(i))
			pts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		}
		return strings.Join(pts, " ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="radar" viewBox="0 0 %d %d" role="img" aria-label="Performance radar">`, radarWidth, radarHeight)
	for ring := 2; ring <= models.MaxScore; ring += 2 {
		f := float64(ring) / models.MaxScore
		fmt.Fprintf(&sb, `<polygon points="%s" fill="none" stroke="#ccc"/>`, polygon(func(int) float64 { return f }))
	}
	for i, d := range dims {
		x, y := point(i, 1)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ccc"/>`, cx, cy, x, y)
		lx, ly := point(i, 1.18)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%s (%d)</text>`,
			lx, ly, template.HTMLEscapeString(d.Label()), values[d])
	}
	fmt.Fprintf(&sb, `<polygon class="score" points="%s" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="2"/>`,
		polygon(func(i int) float64 { return clampScore(values[dims[i]]) }), interviewerColor, interviewerColor)
	sb.WriteString(`</svg>`)
	return template.HTML(sb.String())
}

func clampScore(v int) float64 {
	return math.Min(math.Max(float64(v), models.MinScore), models.MaxScore) / models.MaxScore
}
