package models

// Metrics holds the locally computed statistics of one transcript.
type Metrics struct {
	Duration           float64        `json:"duration"`
	WordCount          int            `json:"word_count"`
	FillerCount        int            `json:"filler_count"`
	FillerFrequency    float64        `json:"filler_frequency"`
	FillerBreakdown    map[string]int `json:"filler_breakdown,omitempty"`
	TalkRatio          float64        `json:"talk_ratio"`
	InterviewerSeconds float64        `json:"interviewer_seconds"`
	CandidateSeconds   float64        `json:"candidate_seconds"`
	SegmentCount       int            `json:"segment_count"`
	WordsPerMinute     float64        `json:"words_per_minute"`
}
