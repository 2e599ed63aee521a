// Package mistraltest provides an in-process fake of the Mistral
// transcription and chat-completion endpoints for tests.
package mistraltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Segment is one transcription segment returned by the fake.
type Segment struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
}

// Server is a fake Mistral API. Chat answers are chosen by the first entry
// of Answers whose key is a prefix of the prompt.
type Server struct {
	*httptest.Server

	APIKey             string
	Text               string
	Segments           []Segment
	TranscriptionError int // HTTP status to fail transcription with, 0 for success
	Answers            map[string]string

	mu                 sync.Mutex
	transcriptionCalls int
	chatCalls          int
}

// Prompt prefixes used by the analyzer, for building Answers.
const (
	StrengthsPrompt    = "Analyze this interview"
	ImprovementsPrompt = "Identify 3 areas"
	ScoringPrompt      = "Evaluate the candidate"
	FollowUpPrompt     = "Based on the transcript"
	StagesPrompt       = "The numbered lines"
)

// NewServer starts a fake that accepts apiKey and answers every prompt with
// a well-formed response.
func NewServer(apiKey string) *Server {
	s := &Server{
		APIKey: apiKey,
		Text:   "Tell me about yourself. Um, I build APIs in Go. Any questions for us? Like, what is the team size?",
		Segments: []Segment{
			{Text: "Tell me about yourself.", Start: 0, End: 3},
			{Text: "Um, I build APIs in Go.", Start: 3, End: 9},
			{Text: "Any questions for us?", Start: 9, End: 11},
			{Text: "Like, what is the team size?", Start: 11, End: 14},
		},
		Answers: map[string]string{
			StrengthsPrompt:    "- Clear communication\n- Strong Go experience\n- Curious",
			ImprovementsPrompt: "- Use the STAR method\n- Fewer filler words",
			ScoringPrompt:      "Communication: 8/10\nTechnical Skill: 7/10\nSTAR Method Usage: 5/10\nGood overall.",
			FollowUpPrompt:     "1. Describe a production incident.\n2. How do you test Go code?\n3. Why this team?",
			StagesPrompt:       "introductions: 0-1\nbehavioral_questions: none\ntechnical_questions: none\ncandidate_questions: 2-3\nwrap_up: none",
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/audio/transcriptions", s.transcribe)
	mux.HandleFunc("/v1/chat/completions", s.chat)
	s.Server = httptest.NewServer(mux)
	return s
}

// TranscriptionCalls returns how many transcription requests were received.
func (s *Server) TranscriptionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcriptionCalls
}

// ChatCalls returns how many chat requests were received.
func (s *Server) ChatCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatCalls
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+s.APIKey {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
		return false
	}
	return true
}

func (s *Server) transcribe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.transcriptionCalls++
	s.mu.Unlock()

	if !s.authorized(w, r) {
		return
	}
	if s.TranscriptionError != 0 {
		http.Error(w, `{"message":"transcription failed"}`, s.TranscriptionError)
		return
	}
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, _, err := r.FormFile("file"); err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"model":    r.FormValue("model"),
		"text":     s.Text,
		"language": "en",
		"segments": s.Segments,
	})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.chatCalls++
	s.mu.Unlock()

	if !s.authorized(w, r) {
		return
	}
	var req struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prompt := req.Messages[0].Content

	s.mu.Lock()
	var answer string
	found := false
	for prefix, a := range s.Answers {
		if strings.HasPrefix(prompt, prefix) {
			answer, found = a, true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		http.Error(w, `{"message":"no answer configured"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": answer}},
		},
	})
}
