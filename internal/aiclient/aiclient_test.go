package aiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewanalyzer/internal/audio"
	"interviewanalyzer/internal/audiotest"
	"interviewanalyzer/utils"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *AIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewAIClient(Options{
		BaseURL:            srv.URL + "/",
		APIKey:             apiKey,
		TranscriptionModel: "voxtral-test",
		ChatModel:          "chat-test",
		HTTPClient:         srv.Client(),
		Logger:             l,
	})
}

func testAudio() *audio.Audio {
	return &audio.Audio{
		Data:     audiotest.WAV(time.Second, 8000),
		Filename: "interview.wav",
		Format:   audio.FormatWAV,
	}
}

func TestTranscribe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "voxtral-test", r.FormValue("model"))
		assert.Equal(t, "segment", r.FormValue("timestamp_granularities"))
		_, fh, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "interview.wav", fh.Filename)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"model": "voxtral-test",
			"text": " Hello there. Hi, thanks. ",
			"language": "en",
			"segments": [
				{"text": "Hi, thanks.", "start": 2.0, "end": 3.5, "speaker_id": "speaker_2"},
				{"text": "Hello there.", "start": 0.0, "end": 2.5, "speaker": "speaker_1"}
			]
		}`)
	}, "secret")

	tr, err := c.Transcribe(context.Background(), testAudio())
	require.NoError(t, err)

	assert.Equal(t, "Hello there. Hi, thanks.", tr.Text)
	assert.Equal(t, "en", tr.Language)
	require.Len(t, tr.Segments, 2)
	assert.True(t, tr.SegmentsOrdered())
	assert.Equal(t, "Hello there.", tr.Segments[0].Text)
	require.NotNil(t, tr.Segments[1].Speaker)
	assert.Equal(t, "speaker_2", *tr.Segments[1].Speaker)
	assert.Equal(t, 2.5, tr.Segments[1].StartTime)
}

func TestTranscribeErrors(t *testing.T) {
	_, err := NewAIClient(Options{BaseURL: "http://unused"}).Transcribe(context.Background(), testAudio())
	require.ErrorIs(t, err, utils.ErrAuth)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	}, "bad")
	_, err = c.Transcribe(context.Background(), testAudio())
	require.ErrorIs(t, err, utils.ErrAuth)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported audio", http.StatusUnprocessableEntity)
	}, "key")
	_, err = c.Transcribe(context.Background(), testAudio())
	require.ErrorIs(t, err, utils.ErrTranscription)
	assert.Contains(t, err.Error(), "HTTP 422")

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"text": "", "segments": []}`)
	}, "key")
	_, err = c.Transcribe(context.Background(), testAudio())
	require.ErrorIs(t, err, utils.ErrTranscription)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}, "key")
	_, err = c.Transcribe(context.Background(), testAudio())
	require.ErrorIs(t, err, utils.ErrTranscription)
}

func TestTranscribeTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, "key")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Transcribe(ctx, testAudio())
	require.ErrorIs(t, err, utils.ErrTranscription)
}

func TestComplete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "chat-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "list strengths", req.Messages[0].Content)
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"- Clear"}}]}`)
	}, "key")

	out, err := c.Complete(context.Background(), "list strengths")
	require.NoError(t, err)
	assert.Equal(t, "- Clear", out)
}

func TestCompleteErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	}, "key")
	_, err := c.Complete(context.Background(), "x")
	require.ErrorIs(t, err, ErrEmptyCompletion)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, "key")
	_, err = c.Complete(context.Background(), "x")
	require.ErrorIs(t, err, utils.ErrAuth)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, "key")
	_, err = c.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrAuth)
	assert.Contains(t, err.Error(), "HTTP 429")
}
