package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOrdersAndClipsSegments(t *testing.T) {
	tr := &Transcript{Segments: []TranscriptSegment{
		{Text: " second ", StartTime: 4, EndTime: 9},
		{Text: "first", StartTime: 0, EndTime: 5},
		{Text: "third", StartTime: 8, EndTime: 7},
	}}
	require.False(t, tr.SegmentsOrdered())

	tr.Normalize()

	require.True(t, tr.SegmentsOrdered())
	assert.Equal(t, "first", tr.Segments[0].Text)
	assert.Equal(t, "second", tr.Segments[1].Text)
	assert.Equal(t, 5.0, tr.Segments[1].StartTime)
	assert.Equal(t, 9.0, tr.Segments[2].StartTime)
	assert.Equal(t, 9.0, tr.Segments[2].EndTime)
}

func TestFullTextFallsBackToSegments(t *testing.T) {
	tr := &Transcript{Segments: []TranscriptSegment{{Text: "hello"}, {Text: " "}, {Text: "world"}}}
	assert.Equal(t, "hello world", tr.FullText())

	tr.Text = "given text"
	assert.Equal(t, "given text", tr.FullText())

	var empty *Transcript
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.FullText())
}
