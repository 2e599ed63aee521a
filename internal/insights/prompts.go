package insights

import (
	"fmt"
	"strings"

	"interviewanalyzer/models"
)

func strengthsPrompt(transcript string) string {
	return "Analyze this interview transcript and identify the candidate's top 3 strengths, citing evidence from their answers. Format as bullet points.\n\nTranscript:\n" + transcript
}

func improvementsPrompt(transcript string) string {
	return "Identify 3 areas where the candidate could improve their responses or communication style. Be constructive and specific. Format as bullet points.\n\nTranscript:\n" + transcript
}

func followUpPrompt(transcript string) string {
	return "Based on the transcript, suggest 3 insightful follow-up questions for the next interview stage. Format as a numbered list.\n\nTranscript:\n" + transcript
}

func scoringPrompt(transcript string) string {
	var lines []string
	for _, d := range models.ScoreDimensions {
		lines = append(lines, fmt.Sprintf("%s: <score>/10", d.Label()))
	}
	return "Evaluate the candidate on Communication, Technical Skill, and STAR Method Usage for behavioral questions. " +
		"Give a score out of 10 for each and a brief explanation. " +
		"Start your answer with exactly these three lines:\n" + strings.Join(lines, "\n") +
		"\n\nTranscript:\n" + transcript
}

func stagesPrompt(segments []models.TranscriptSegment) string {
	var sb strings.Builder
	sb.WriteString("The numbered lines below are consecutive segments of a job interview. ")
	sb.WriteString("Split them into these stages, in order: ")
	names := make([]string, 0, len(models.StageOrder))
	for _, n := range models.StageOrder {
		names = append(names, string(n))
	}
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString(".\nAnswer with one line per stage in the form `stage_name: first-last` using the segment numbers, ")
	sb.WriteString("or `stage_name: none` when the stage does not occur. Do not add anything else.\n\nSegments:\n")
	for i, seg := range segments {
		fmt.Fprintf(&sb, "%d. [%.1fs-%.1fs] %s\n", i, seg.StartTime, seg.EndTime, seg.Text)
	}
	return sb.String()
}
