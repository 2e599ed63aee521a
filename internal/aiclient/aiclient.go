// Package aiclient talks to the hosted Mistral transcription and
// chat-completion endpoints.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"interviewanalyzer/internal/audio"
	"interviewanalyzer/models"
	"interviewanalyzer/utils"
)

const maxErrorBody = 4096

// Options configures an AIClient.
type Options struct {
	BaseURL            string
	APIKey             string
	TranscriptionModel string
	ChatModel          string
	HTTPClient         *http.Client
	Logger             *logrus.Logger
}

// AIClient wraps the Mistral HTTPS API.
type AIClient struct {
	baseURL            string
	apiKey             string
	transcriptionModel string
	chatModel          string
	http               *http.Client
	logger             *logrus.Logger
}

// NewHTTPClient returns the transport shared by all AI clients of a process.
// Transcription of long recordings can take minutes, so the overall timeout
// is left to the caller's context.
func NewHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: time.Minute,
		}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       2 * time.Minute,
		TLSHandshakeTimeout:   30 * time.Second,
		ExpectContinueTimeout: time.Second,
		ResponseHeaderTimeout: 10 * time.Minute,
	}
	return &http.Client{Transport: tr}
}

// NewAIClient creates and returns a new AIClient.
func NewAIClient(opts Options) *AIClient {
	hc := opts.HTTPClient
	if hc == nil {
		hc = NewHTTPClient()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AIClient{
		baseURL:            strings.TrimRight(opts.BaseURL, "/"),
		apiKey:             opts.APIKey,
		transcriptionModel: opts.TranscriptionModel,
		chatModel:          opts.ChatModel,
		http:               hc,
		logger:             logger,
	}
}

type transcriptionAPIResponse struct {
	Model    string `json:"model"`
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Text      string  `json:"text"`
		Start     float64 `json:"start"`
		End       float64 `json:"end"`
		Speaker   string  `json:"speaker"`
		SpeakerID string  `json:"speaker_id"`
	} `json:"segments"`
}

// Transcribe sends the audio to the transcription endpoint with segment
// timestamps requested. Auth failures wrap utils.ErrAuth; every other failure
// wraps utils.ErrTranscription.
func (c *AIClient) Transcribe(ctx context.Context, a *audio.Audio) (*models.Transcript, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: Mistral API key is required", utils.ErrAuth)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("model", c.transcriptionModel); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTranscription, err)
	}
	if err := writer.WriteField("timestamp_granularities", "segment"); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTranscription, err)
	}
	part, err := writer.CreateFormFile("file", a.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTranscription, err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTranscription, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTranscription, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTranscription, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log := c.logger.WithFields(logrus.Fields{
		"filename": a.Filename,
		"bytes":    len(a.Data),
		"model":    c.transcriptionModel,
	})
	log.Info("Sending transcription request")
	started := time.Now()

	respBody, err := c.do(req)
	if err != nil {
		log.WithError(err).Error("Transcription request failed")
		return nil, classify(err, utils.ErrTranscription)
	}

	var apiResp transcriptionAPIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: parsing Mistral response: %v", utils.ErrTranscription, err)
	}

	transcript := &models.Transcript{
		Text:     strings.TrimSpace(apiResp.Text),
		Language: apiResp.Language,
		Segments: make([]models.TranscriptSegment, 0, len(apiResp.Segments)),
	}
	for _, seg := range apiResp.Segments {
		s := models.TranscriptSegment{
			Text:      seg.Text,
			StartTime: seg.Start,
			EndTime:   seg.End,
		}
		speaker := seg.Speaker
		if speaker == "" {
			speaker = seg.SpeakerID
		}
		if speaker != "" {
			s.Speaker = &speaker
		}
		transcript.Segments = append(transcript.Segments, s)
	}
	transcript.Normalize()

	if transcript.IsEmpty() {
		return nil, fmt.Errorf("%w: provider returned an empty transcript", utils.ErrTranscription)
	}

	log.WithFields(logrus.Fields{
		"segments":   len(transcript.Segments),
		"latency_ms": time.Since(started).Milliseconds(),
	}).Info("Received transcription response")
	return transcript, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ErrEmptyCompletion is returned when the chat endpoint answers without content.
var ErrEmptyCompletion = errors.New("empty completion")

// Complete sends a single user prompt to the chat-completion endpoint and
// returns the first choice's content.
func (c *AIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: Mistral API key is required", utils.ErrAuth)
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.chatModel,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("chat marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := c.do(req)
	if err != nil {
		return "", classify(err, nil)
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("chat decode: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}

// Close releases idle connections held by the client.
func (c *AIClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// statusError is a non-2xx response from the API.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("mistral API error (HTTP %d): %s", e.status, e.body)
}

func (c *AIClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Mistral API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(b))}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return respBody, nil
}

// classify wraps auth failures in utils.ErrAuth and everything else in
// fallback when it is non-nil.
func classify(err error, fallback error) error {
	var se *statusError
	if errors.As(err, &se) && (se.status == http.StatusUnauthorized || se.status == http.StatusForbidden) {
		return fmt.Errorf("%w: %v", utils.ErrAuth, err)
	}
	if fallback != nil {
		return fmt.Errorf("%w: %v", fallback, err)
	}
	return err
}
