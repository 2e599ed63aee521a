// Package audio turns an uploaded file or a URL into validated audio bytes.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"

	"interviewanalyzer/utils"
)

// Supported audio formats.
const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Audio is a resolved, validated recording ready to be transcribed.
type Audio struct {
	Data        []byte
	Filename    string
	ContentType string
	Format      string
	Source      string         // "upload" or the fetched URL
	Duration    *time.Duration // playback length when the decoder could read it
}

// Resolver validates uploads and fetches remote recordings.
type Resolver struct {
	client   *http.Client
	maxBytes int64
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewResolver creates a Resolver. fetchTimeout bounds URL downloads and
// maxBytes caps the accepted payload size.
func NewResolver(fetchTimeout time.Duration, maxBytes int64, logger *logrus.Logger) *Resolver {
	return &Resolver{
		client:   &http.Client{Timeout: fetchTimeout},
		maxBytes: maxBytes,
		validate: validator.New(),
		logger:   logger,
	}
}

// Resolve returns the audio for a run. An upload takes precedence over a URL.
func (r *Resolver) Resolve(ctx context.Context, upload *Upload, rawURL string) (*Audio, error) {
	rawURL = strings.TrimSpace(rawURL)
	switch {
	case upload != nil && len(upload.Data) > 0:
		return r.FromUpload(upload)
	case rawURL != "":
		return r.FromURL(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: upload an audio file or provide a URL", utils.ErrInvalidInput)
	}
}

// FromUpload validates an uploaded mp3 or wav file.
func (r *Resolver) FromUpload(upload *Upload) (*Audio, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if ext != ".mp3" && ext != ".wav" {
		return nil, fmt.Errorf("%w: %q is not an .mp3 or .wav file", utils.ErrInvalidInput, upload.Filename)
	}
	if int64(len(upload.Data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", utils.ErrInvalidInput, r.maxBytes)
	}

	format, contentType, err := sniff(upload.Data)
	if err != nil {
		return nil, err
	}

	a := &Audio{
		Data:        upload.Data,
		Filename:    filepath.Base(upload.Filename),
		ContentType: contentType,
		Format:      format,
		Source:      "upload",
	}
	r.probe(a)
	return a, nil
}

// FromURL downloads a recording and validates that the payload is audio.
func (r *Resolver) FromURL(ctx context.Context, rawURL string) (*Audio, error) {
	if err := r.validate.Var(rawURL, "required,url"); err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid URL", utils.ErrInvalidInput, rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: only http and https URLs are supported", utils.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	r.logger.WithField("url", u.Redacted()).Info("Fetching audio from URL")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", utils.ErrInvalidInput, u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetching %s returned HTTP %d", utils.ErrInvalidInput, u.Redacted(), resp.StatusCode)
	}

	declared := resp.Header.Get("Content-Type")
	if !acceptableDeclaredType(declared) {
		return nil, fmt.Errorf("%w: URL returned %q, not audio", utils.ErrInvalidInput, declared)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", utils.ErrInvalidInput, u.Redacted(), err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: remote file exceeds %d bytes", utils.ErrInvalidInput, r.maxBytes)
	}

	format, contentType, err := sniff(data)
	if err != nil {
		return nil, err
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = "audio"
	}
	if !strings.EqualFold(path.Ext(name), "."+format) {
		name = strings.TrimSuffix(name, path.Ext(name)) + "." + format
	}

	a := &Audio{
		Data:        data,
		Filename:    name,
		ContentType: contentType,
		Format:      format,
		Source:      u.Redacted(),
	}
	r.probe(a)
	return a, nil
}

// acceptableDeclaredType allows audio/* and the generic types servers use
// for binary downloads; the bytes are sniffed afterwards either way.
func acceptableDeclaredType(header string) bool {
	if header == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "audio/") ||
		mediaType == "application/octet-stream" ||
		mediaType == "binary/octet-stream"
}

func sniff(data []byte) (format, contentType string, err error) {
	detected := mimetype.Detect(data)
	switch {
	case detected.Is("audio/mpeg"):
		return FormatMP3, "audio/mpeg", nil
	case detected.Is("audio/wav"):
		return FormatWAV, "audio/wav", nil
	default:
		return "", "", fmt.Errorf("%w: content is %s, expected mp3 or wav audio", utils.ErrInvalidInput, detected.String())
	}
}

func (r *Resolver) probe(a *Audio) {
	d, err := ProbeDuration(a.Data, a.Format)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"filename": a.Filename,
			"format":   a.Format,
			"error":    err.Error(),
		}).Warn("Could not decode audio to probe its duration")
		return
	}
	a.Duration = &d
}

// seekNopCloser keeps Seek visible to the mp3 decoder, which only
// computes a stream length for seekable sources.
type seekNopCloser struct {
	*bytes.Reader
}

func (seekNopCloser) Close() error { return nil }

// ProbeDuration decodes the audio headers and returns the playback length.
func ProbeDuration(data []byte, format string) (time.Duration, error) {
	var (
		stream beep.StreamSeekCloser
		f      beep.Format
		err    error
	)
	switch format {
	case FormatMP3:
		stream, f, err = mp3.Decode(seekNopCloser{bytes.NewReader(data)})
	case FormatWAV:
		stream, f, err = wav.Decode(bytes.NewReader(data))
	default:
		return 0, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	return f.SampleRate.D(stream.Len()), nil
}
