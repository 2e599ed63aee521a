package models

// StageName identifies a conversation stage of an interview.
type StageName string

const (
	StageIntroductions       StageName = "introductions"
	StageBehavioralQuestions StageName = "behavioral_questions"
	StageTechnicalQuestions  StageName = "technical_questions"
	StageCandidateQuestions  StageName = "candidate_questions"
	StageWrapUp              StageName = "wrap_up"
)

// StageOrder lists the stages in the order they occur in an interview.
var StageOrder = []StageName{
	StageIntroductions,
	StageBehavioralQuestions,
	StageTechnicalQuestions,
	StageCandidateQuestions,
	StageWrapUp,
}

// Title is the display label for the stage.
func (n StageName) Title() string {
	switch n {
	case StageIntroductions:
		return "Introductions"
	case StageBehavioralQuestions:
		return "Behavioral Questions"
	case StageTechnicalQuestions:
		return "Technical Questions"
	case StageCandidateQuestions:
		return "Candidate Questions"
	case StageWrapUp:
		return "Wrap Up"
	default:
		return string(n)
	}
}

// Where a stage boundary came from.
const (
	StageSourceModel     = "model"
	StageSourceEstimated = "estimated"
)

// Stage is a labeled range of transcript segments. FirstSegment and
// LastSegment are inclusive indices; an empty stage has FirstSegment >
// LastSegment.
type Stage struct {
	Name         StageName `json:"name"`
	FirstSegment int       `json:"first_segment"`
	LastSegment  int       `json:"last_segment"`
	StartTime    float64   `json:"start_time"`
	EndTime      float64   `json:"end_time"`
	Text         string    `json:"text"`
	Source       string    `json:"source"`
}

// Empty reports whether the stage covers no segments.
func (s Stage) Empty() bool {
	return s.FirstSegment > s.LastSegment
}
