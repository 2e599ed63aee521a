// Package metrics computes speech statistics directly from a transcript.
package metrics

import (
	"strings"
	"unicode"

	"interviewanalyzer/models"
)

// Calculate returns the metrics of a transcript. It is deterministic and
// returns zeroed metrics for an empty transcript.
func Calculate(transcript *models.Transcript, fillers []string) models.Metrics {
	var m models.Metrics
	if transcript.IsEmpty() {
		return m
	}

	tokens := Tokenize(transcript.FullText())
	m.WordCount = len(tokens)
	m.SegmentCount = len(transcript.Segments)

	for _, seg := range transcript.Segments {
		if seg.EndTime > m.Duration {
			m.Duration = seg.EndTime
		}
	}

	m.FillerBreakdown = CountFillers(tokens, fillers)
	for _, n := range m.FillerBreakdown {
		m.FillerCount += n
	}
	m.FillerFrequency = float64(m.FillerCount) / float64(max(m.WordCount, 1))

	m.InterviewerSeconds, m.CandidateSeconds = SpeakingTime(transcript.Segments)
	m.TalkRatio = TalkRatio(m.InterviewerSeconds, m.CandidateSeconds)

	if m.Duration > 0 {
		m.WordsPerMinute = float64(m.WordCount) / (m.Duration / 60)
	}
	return m
}

// Tokenize lowercases text and splits it into words with surrounding
// punctuation removed. Inner apostrophes and hyphens are kept.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// CountFillers counts each filler, single word or phrase, as a whole token
// sequence. Matching is case-insensitive and a filler listed twice is counted
// once, so adding fillers never lowers the total.
func CountFillers(tokens []string, fillers []string) map[string]int {
	counts := make(map[string]int)
	for _, filler := range fillers {
		phrase := Tokenize(filler)
		if len(phrase) == 0 {
			continue
		}
		key := strings.Join(phrase, " ")
		if _, seen := counts[key]; seen {
			continue
		}
		counts[key] = countSequence(tokens, phrase)
	}
	return counts
}

func countSequence(tokens, phrase []string) int {
	n := 0
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}

// SpeakingTime attributes segment durations to the interviewer and the
// candidate. With speaker labels the first labeled speaker is the
// interviewer and everyone else the candidate; without labels speakers are
// assumed to alternate starting with the interviewer.
func SpeakingTime(segments []models.TranscriptSegment) (interviewer, candidate float64) {
	interviewerLabel, labeled := InterviewerLabel(segments)
	for i, seg := range segments {
		if IsInterviewer(i, seg, labeled, interviewerLabel) {
			interviewer += seg.Duration()
		} else {
			candidate += seg.Duration()
		}
	}
	return interviewer, candidate
}

// IsInterviewer applies the attribution rule of SpeakingTime to one segment.
func IsInterviewer(index int, seg models.TranscriptSegment, labeled bool, interviewerLabel string) bool {
	if labeled {
		return seg.Speaker != nil && *seg.Speaker == interviewerLabel
	}
	return index%2 == 0
}

// InterviewerLabel returns the label SpeakingTime treats as the interviewer
// and whether the segments carry labels at all.
func InterviewerLabel(segments []models.TranscriptSegment) (string, bool) {
	for _, seg := range segments {
		if seg.Speaker != nil && *seg.Speaker != "" {
			return *seg.Speaker, true
		}
	}
	return "", false
}

// TalkRatio is the candidate's share of the speaking time, in [0, 1].
func TalkRatio(interviewer, candidate float64) float64 {
	total := interviewer + candidate
	if total <= 0 {
		return 0
	}
	return candidate / total
}
