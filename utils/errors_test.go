package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("bad url: %w", ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{fmt.Errorf("no key: %w", ErrAuth), http.StatusUnauthorized, "auth"},
		{fmt.Errorf("upstream 500: %w", ErrTranscription), http.StatusBadGateway, "transcription"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusForError(tc.err), tc.err.Error())
		assert.Equal(t, tc.kind, Kind(tc.err), tc.err.Error())
	}
	assert.Equal(t, http.StatusOK, StatusForError(nil))
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		URL string `validate:"required,url"`
	}
	err := validator.New().Struct(payload{URL: "nope"})
	msgs := FormatValidationErrors(err)
	assert.Equal(t, []string{"Field 'URL' failed on the 'url' tag"}, msgs)

	assert.Equal(t, []string{"plain"}, FormatValidationErrors(errors.New("plain")))
	assert.Nil(t, FormatValidationErrors(nil))
}
