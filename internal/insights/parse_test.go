package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewanalyzer/models"
	"interviewanalyzer/utils"
)

func segments(n int) []models.TranscriptSegment {
	out := make([]models.TranscriptSegment, n)
	for i := range out {
		out[i] = models.TranscriptSegment{
			Text:      fmt.Sprintf("s%d", i),
			StartTime: float64(i * 10),
			EndTime:   float64(i*10 + 8),
		}
	}
	return out
}

func TestParseScores(t *testing.T) {
	scores, err := ParseScores(`**Communication:** 8/10
Technical Skill: 6.6 / 10
STAR Method Usage - 12/10

The candidate communicated clearly.`)
	require.NoError(t, err)
	assert.Equal(t, map[models.ScoreDimension]int{
		models.ScoreCommunication:   8,
		models.ScoreTechnicalSkill:  7,
		models.ScoreStarMethodUsage: 10,
	}, scores)
}

func TestParseScoresSkipsProseMentions(t *testing.T) {
	scores, err := ParseScores("Communication: the candidate was clear.\nCommunication: 9/10\nTechnical skills: 5\nSTAR method: 4")
	require.NoError(t, err)
	assert.Equal(t, 9, scores[models.ScoreCommunication])
	assert.Equal(t, 5, scores[models.ScoreTechnicalSkill])
	assert.Equal(t, 4, scores[models.ScoreStarMethodUsage])
}

func TestParseScoresMissingSection(t *testing.T) {
	_, err := ParseScores("Communication: 8/10\nOverall a solid interview.")
	require.ErrorIs(t, err, utils.ErrInsightParse)
	assert.Contains(t, err.Error(), "Technical Skill")
	assert.Contains(t, err.Error(), "STAR Method Usage")
}

func TestParseList(t *testing.T) {
	items := ParseList("Here are the strengths:\n- **Clear** answers\n* Good examples\n2) Calm\n• Curious\n")
	assert.Equal(t, []string{"Clear answers", "Good examples", "Calm", "Curious"}, items)

	assert.Equal(t, []string{"Just prose."}, ParseList("  Just prose.  "))
	assert.Nil(t, ParseList("   "))
}

func TestParseStages(t *testing.T) {
	segs := segments(10)
	stages, err := ParseStages("introductions: 0-1\n- **behavioral_questions**: 2-4\nTechnical Questions: 5 – 7\ncandidate_questions: none\nwrap_up: 8-9\n", segs)
	require.NoError(t, err)
	require.Len(t, stages, 5)

	assert.Equal(t, models.StageIntroductions, stages[0].Name)
	assert.Equal(t, 0, stages[0].FirstSegment)
	assert.Equal(t, 1, stages[0].LastSegment)
	assert.Equal(t, "s0 s1", stages[0].Text)
	assert.Equal(t, 18.0, stages[0].EndTime)

	assert.Equal(t, 50.0, stages[2].StartTime)
	assert.True(t, stages[3].Empty())
	assert.Equal(t, models.StageSourceModel, stages[4].Source)
}

func TestParseStagesRejectsBadRanges(t *testing.T) {
	segs := segments(5)
	for _, answer := range []string{
		"no stages here",
		"introductions: 0-9",
		"introductions: 3-1",
		"introductions: 0-2\nbehavioral_questions: 2-4",
	} {
		_, err := ParseStages(answer, segs)
		assert.ErrorIs(t, err, utils.ErrInsightParse, answer)
	}
}

func TestEstimateStages(t *testing.T) {
	stages := EstimateStages(segments(20))
	require.Len(t, stages, 5)
	bounds := [][2]int{{0, 2}, {3, 8}, {9, 13}, {14, 17}, {18, 19}}
	for i, b := range bounds {
		assert.Equal(t, b[0], stages[i].FirstSegment, stages[i].Name)
		assert.Equal(t, b[1], stages[i].LastSegment, stages[i].Name)
		assert.Equal(t, models.StageSourceEstimated, stages[i].Source)
	}

	short := EstimateStages(segments(2))
	assert.False(t, short[0].Empty())
	assert.False(t, short[1].Empty())
	assert.True(t, short[2].Empty())
	assert.True(t, short[4].Empty())

	for _, s := range EstimateStages(nil) {
		assert.True(t, s.Empty())
	}
}
