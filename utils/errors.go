package utils

import (
	"errors"
	"net/http"
)

// Error taxonomy for an analysis run. Callers wrap these with fmt.Errorf("%w")
// and classify with errors.Is.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrAuth          = errors.New("authentication failed")
	ErrTranscription = errors.New("transcription failed")
	ErrInsightParse  = errors.New("could not parse insight response")
)

// StatusForError maps a pipeline error to the HTTP status returned to clients.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTranscription):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a short machine-readable name for the error class.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrTranscription):
		return "transcription"
	case errors.Is(err, ErrInsightParse):
		return "insight_parse"
	default:
		return "internal"
	}
}
