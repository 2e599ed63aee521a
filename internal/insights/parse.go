package insights

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"interviewanalyzer/models"
	"interviewanalyzer/utils"
)

var scorePatterns = map[models.ScoreDimension]*regexp.Regexp{
	models.ScoreCommunication:   regexp.MustCompile(`(?i)communication(?:\s+skills?)?[\s*_]*[:\-–][\s*_]*(\d+(?:\.\d+)?)`),
	models.ScoreTechnicalSkill:  regexp.MustCompile(`(?i)technical\s+skills?[\s*_]*[:\-–][\s*_]*(\d+(?:\.\d+)?)`),
	models.ScoreStarMethodUsage: regexp.MustCompile(`(?i)star\s+method(?:\s+usage)?[\s*_]*[:\-–][\s*_]*(\d+(?:\.\d+)?)`),
}

// ParseScores extracts the three scorecard ratings from a free-text answer.
// Every dimension must be present; values are rounded and clamped to the
// score range.
func ParseScores(text string) (map[models.ScoreDimension]int, error) {
	scores := make(map[models.ScoreDimension]int, len(models.ScoreDimensions))
	var missing []string
	for _, d := range models.ScoreDimensions {
		m := scorePatterns[d].FindStringSubmatch(text)
		if m == nil {
			missing = append(missing, d.Label())
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			missing = append(missing, d.Label())
			continue
		}
		scores[d] = clampScore(int(math.Round(v)))
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no score for %s", utils.ErrInsightParse, strings.Join(missing, ", "))
	}
	return scores, nil
}

func clampScore(v int) int {
	if v < models.MinScore {
		return models.MinScore
	}
	if v > models.MaxScore {
		return models.MaxScore
	}
	return v
}

var (
	bulletRe   = regexp.MustCompile(`^(?:[-*•+]|\d+[.)])\s+(.+)$`)
	emphasisRe = regexp.MustCompile(`\*\*|__`)
)

// ParseList extracts bullet or numbered items. When the text has no list
// markers the whole trimmed text is returned as a single item.
func ParseList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		m := bulletRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if item := strings.TrimSpace(emphasisRe.ReplaceAllString(m[1], "")); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			items = []string{trimmed}
		}
	}
	return items
}

var (
	stageRangeRe = regexp.MustCompile(`(?i)^[\s*\-` + "`" + `]*([a-z][a-z _]*?)[\s*` + "`" + `]*:\s*(\d+)\s*[-–]\s*(\d+)`)
	stageNoneRe  = regexp.MustCompile(`(?i)^[\s*\-` + "`" + `]*([a-z][a-z _]*?)[\s*` + "`" + `]*:\s*none\b`)
)

// ParseStages reads `stage_name: first-last` lines produced by the stage
// prompt. Ranges must be in bounds and follow stage order without overlap.
func ParseStages(text string, segments []models.TranscriptSegment) ([]models.Stage, error) {
	type span struct{ first, last int }
	known := make(map[models.StageName]bool, len(models.StageOrder))
	for _, n := range models.StageOrder {
		known[n] = true
	}

	spans := make(map[models.StageName]span)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := stageRangeRe.FindStringSubmatch(line); m != nil {
			name := normalizeStageName(m[1])
			if !known[name] {
				continue
			}
			first, _ := strconv.Atoi(m[2])
			last, _ := strconv.Atoi(m[3])
			if first > last || last >= len(segments) {
				return nil, fmt.Errorf("%w: stage %s has invalid range %d-%d for %d segments", utils.ErrInsightParse, name, first, last, len(segments))
			}
			spans[name] = span{first, last}
		} else if m := stageNoneRe.FindStringSubmatch(line); m != nil {
			if name := normalizeStageName(m[1]); known[name] {
				spans[name] = span{1, 0}
			}
		}
	}

	if len(spans) == 0 {
		return nil, fmt.Errorf("%w: no stage ranges found", utils.ErrInsightParse)
	}

	stages := make([]models.Stage, 0, len(models.StageOrder))
	prevLast := -1
	for _, name := range models.StageOrder {
		s, ok := spans[name]
		if !ok || s.first > s.last {
			stages = append(stages, emptyStage(name, models.StageSourceModel))
			continue
		}
		if s.first <= prevLast {
			return nil, fmt.Errorf("%w: stage %s overlaps the previous stage", utils.ErrInsightParse, name)
		}
		prevLast = s.last
		stages = append(stages, buildStage(name, s.first, s.last, segments, models.StageSourceModel))
	}
	return stages, nil
}

func normalizeStageName(raw string) models.StageName {
	return models.StageName(strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(raw, "_", " "))), "_"))
}

// EstimateStages splits segments proportionally: the first 15% are
// introductions, up to 45% behavioral, up to 70% technical, up to 90%
// candidate questions and the rest wrap-up. Short transcripts fill the
// earliest stages first.
func EstimateStages(segments []models.TranscriptSegment) []models.Stage {
	n := len(segments)
	stages := make([]models.Stage, 0, len(models.StageOrder))
	if n == 0 {
		for _, name := range models.StageOrder {
			stages = append(stages, emptyStage(name, models.StageSourceEstimated))
		}
		return stages
	}

	cuts := []int{
		0,
		max(1, int(float64(n)*0.15)),
		max(2, int(float64(n)*0.45)),
		max(3, int(float64(n)*0.70)),
		max(4, int(float64(n)*0.90)),
		n,
	}
	for i := range cuts {
		cuts[i] = min(cuts[i], n)
	}

	for i, name := range models.StageOrder {
		start, end := cuts[i], cuts[i+1]
		if start >= end {
			stages = append(stages, emptyStage(name, models.StageSourceEstimated))
			continue
		}
		stages = append(stages, buildStage(name, start, end-1, segments, models.StageSourceEstimated))
	}
	return stages
}

func emptyStage(name models.StageName, source string) models.Stage {
	return models.Stage{Name: name, FirstSegment: 1, LastSegment: 0, Source: source}
}

func buildStage(name models.StageName, first, last int, segments []models.TranscriptSegment, source string) models.Stage {
	texts := make([]string, 0, last-first+1)
	for _, seg := range segments[first : last+1] {
		if seg.Text != "" {
			texts = append(texts, seg.Text)
		}
	}
	return models.Stage{
		Name:         name,
		FirstSegment: first,
		LastSegment:  last,
		StartTime:    segments[first].StartTime,
		EndTime:      segments[last].EndTime,
		Text:         strings.Join(texts, " "),
		Source:       source,
	}
}
