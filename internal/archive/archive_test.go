package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrest "github.com/supabase-community/postgrest-go"

	"interviewanalyzer/models"
)

// fakePostgREST stores rows of a single table in memory.
type fakePostgREST struct {
	mu        sync.Mutex
	rows      []models.ReportRecord
	lastQuery map[string]string
	fail      bool
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.fail || r.URL.Path != "/interview_reports" {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"code":"42P01","message":"relation does not exist"}`)
		return
	}

	f.lastQuery = map[string]string{}
	for k, v := range r.URL.Query() {
		f.lastQuery[k] = v[0]
	}

	switch r.Method {
	case http.MethodPost:
		var rec models.ReportRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"code":"PGRST102","message":"bad body"}`)
			return
		}
		f.rows = append(f.rows, rec)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]models.ReportRecord{rec})
	case http.MethodGet:
		out := []models.ReportRecord{}
		want := strings.TrimPrefix(f.lastQuery["id"], "eq.")
		for i := len(f.rows) - 1; i >= 0; i-- {
			if want == "" || f.rows[i].ID.String() == want {
				out = append(out, f.rows[i])
			}
		}
		json.NewEncoder(w).Encode(out)
	}
}

func newTestStore(t *testing.T) (*Store, *fakePostgREST) {
	t.Helper()
	fake := &fakePostgREST{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := postgrest.NewClient(srv.URL, "", map[string]string{"apikey": "service-key"})
	return NewStore(client, "interview_reports", logger), fake
}

func sampleReport() *models.Report {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &models.Report{
		ID:          uuid.New(),
		Audio:       models.AudioInfo{Source: "upload", Filename: "interview.wav"},
		Transcript:  models.Transcript{Text: "Tell me about yourself."},
		Metrics:     models.Metrics{WordCount: 4},
		StartedAt:   now,
		CompletedAt: now.Add(time.Minute),
	}
}

func TestSaveAndGet(t *testing.T) {
	store, fake := newTestStore(t)
	report := sampleReport()

	require.NoError(t, store.Save(context.Background(), report))
	require.Len(t, fake.rows, 1)
	assert.Equal(t, report.ID, fake.rows[0].ID)
	assert.Equal(t, "upload", fake.rows[0].Source)

	got, err := store.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, "Tell me about yourself.", got.Transcript.Text)
	assert.Equal(t, 4, got.Metrics.WordCount)
	assert.Equal(t, "1", fake.lastQuery["limit"])
}

func TestGetUnknownID(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	store, fake := newTestStore(t)
	first, second := sampleReport(), sampleReport()
	require.NoError(t, store.Save(context.Background(), first))
	require.NoError(t, store.Save(context.Background(), second))

	rows, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, "created_at.desc.nullslast", fake.lastQuery["order"])
	assert.Equal(t, "20", fake.lastQuery["limit"])
}

func TestSaveSurfacesPostgRESTErrors(t *testing.T) {
	store, fake := newTestStore(t)
	fake.fail = true

	err := store.Save(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestCanceledContext(t *testing.T) {
	store, fake := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Save(ctx, sampleReport()), context.Canceled)
	assert.Empty(t, fake.rows)
}
