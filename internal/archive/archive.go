// Package archive persists finished reports in a Supabase (PostgREST) table.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"interviewanalyzer/models"
)

// ErrNotFound is returned by Get when no report has the requested id.
var ErrNotFound = errors.New("report not found")

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Querier is satisfied by both *supabase.Client and *postgrest.Client.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// Store reads and writes report rows.
type Store struct {
	db     Querier
	table  string
	logger *logrus.Logger
}

// NewStore creates a Store over table.
func NewStore(db Querier, table string, logger *logrus.Logger) *Store {
	return &Store{db: db, table: table, logger: logger}
}

// Save inserts the report as a JSONB row keyed by its id.
func (s *Store) Save(ctx context.Context, report *models.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	record := models.ReportRecord{
		ID:        report.ID,
		Source:    report.Audio.Source,
		Report:    payload,
		CreatedAt: report.CompletedAt,
	}

	var inserted []models.ReportSummary
	_, err = s.db.From(s.table).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&inserted)
	if err != nil {
		return fmt.Errorf("failed to insert report %s: %w", report.ID, err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("no record returned after insert, report id: %s", report.ID)
	}

	s.logger.WithFields(logrus.Fields{"report_id": report.ID, "table": s.table}).Info("Report archived")
	return nil
}

// Get loads one archived report.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []models.ReportRecord
	_, err := s.db.From(s.table).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var report models.Report
	if err := json.Unmarshal(rows[0].Report, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}

// List returns the newest reports first.
func (s *Store) List(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []models.ReportSummary
	_, err := s.db.From(s.table).
		Select("id,source,created_at", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if rows == nil {
		rows = []models.ReportSummary{}
	}
	return rows, nil
}
