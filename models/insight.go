package models

// Insight is one AI-produced section of free text. Items holds the extracted
// bullet points. When the call or parse failed, Available is false and Error
// carries the reason.
type Insight struct {
	Text      string   `json:"text,omitempty"`
	Items     []string `json:"items,omitempty"`
	Available bool     `json:"available"`
	Error     string   `json:"error,omitempty"`
}

// ScoreDimension names one axis of the scorecard.
type ScoreDimension string

const (
	ScoreCommunication   ScoreDimension = "communication"
	ScoreTechnicalSkill  ScoreDimension = "technical_skill"
	ScoreStarMethodUsage ScoreDimension = "star_method_usage"
)

// ScoreDimensions lists the scorecard axes in display order.
var ScoreDimensions = []ScoreDimension{
	ScoreCommunication,
	ScoreTechnicalSkill,
	ScoreStarMethodUsage,
}

// Label is the name used in prompts and on the dashboard.
func (d ScoreDimension) Label() string {
	switch d {
	case ScoreCommunication:
		return "Communication"
	case ScoreTechnicalSkill:
		return "Technical Skill"
	case ScoreStarMethodUsage:
		return "STAR Method Usage"
	default:
		return string(d)
	}
}

// Score bounds.
const (
	MinScore = 0
	MaxScore = 10
)

// Scores is the candidate scorecard.
type Scores struct {
	Values      map[ScoreDimension]int `json:"values,omitempty"`
	Explanation string                 `json:"explanation,omitempty"`
	Available   bool                   `json:"available"`
	Error       string                 `json:"error,omitempty"`
}

// Insights groups every AI-produced section of a report.
type Insights struct {
	Strengths    Insight `json:"strengths"`
	Improvements Insight `json:"improvements"`
	FollowUp     Insight `json:"follow_up"`
	Scores       Scores  `json:"scores"`
	Stages       []Stage `json:"stages"`
}
