package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nbsatlas/nbsharvest"
)

// Compile-time interface verification.
var _ nbsharvest.RecordService = (*RecordService)(nil)

// RecordService implements nbsharvest.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord persists a new record. The ID is assigned here; the caller
// owns all other fields. A duplicate source URL returns ECONFLICT unless
// the URL is the "unknown" sentinel.
func (s *RecordService) CreateRecord(ctx context.Context, rec *nbsharvest.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.ProcessedAt.IsZero() {
		rec.ProcessedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (
			id, title, summary, status, location_name, country, scale,
			solution_types, challenges_addressed, health_linkages_primary,
			impacts, governance, source_url, environmental_context,
			data_source, source_file, content_hash, processed_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Title, rec.Summary, string(rec.Status), rec.LocationName,
		rec.Country, string(rec.Scale), marshalList(rec.SolutionTypes),
		marshalList(rec.ChallengesAddressed), marshalList(rec.HealthLinkagesPrimary),
		marshalList(rec.Impacts), rec.Governance, rec.SourceURL,
		string(rec.EnvironmentalContext), rec.DataSource, rec.SourceFile,
		rec.ContentHash, rec.ProcessedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return nbsharvest.Errorf(nbsharvest.ECONFLICT, "record for %q already exists", rec.SourceURL)
	}
	return err
}

// FindRecords retrieves records matching the filter, oldest first so
// dataset exports keep arrival order.
func (s *RecordService) FindRecords(ctx context.Context, filter nbsharvest.RecordFilter) ([]*nbsharvest.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, title, summary, status, location_name, country, scale,
		solution_types, challenges_addressed, health_linkages_primary,
		impacts, governance, source_url, environmental_context,
		data_source, source_file, content_hash, processed_at
		FROM records WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.DataSource != nil {
		query.WriteString(" AND data_source = ?")
		args = append(args, *filter.DataSource)
	}

	query.WriteString(" ORDER BY processed_at ASC, rowid ASC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*nbsharvest.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SourceURLs returns the set of source URLs already recorded, excluding
// the "unknown" sentinel.
func (s *RecordService) SourceURLs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT source_url FROM records WHERE source_url != ?", nbsharvest.Unknown)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make(map[string]bool)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls[u] = true
	}

	return urls, rows.Err()
}

func scanRecord(rows *sql.Rows) (*nbsharvest.Record, error) {
	var rec nbsharvest.Record
	var status, scale, envContext string
	var solutionTypes, challenges, healthLinkages, impacts string
	var processedAt string

	if err := rows.Scan(&rec.ID, &rec.Title, &rec.Summary, &status,
		&rec.LocationName, &rec.Country, &scale, &solutionTypes, &challenges,
		&healthLinkages, &impacts, &rec.Governance, &rec.SourceURL,
		&envContext, &rec.DataSource, &rec.SourceFile, &rec.ContentHash,
		&processedAt); err != nil {
		return nil, err
	}

	rec.Status = nbsharvest.Status(status)
	rec.Scale = nbsharvest.Scale(scale)
	rec.EnvironmentalContext = nbsharvest.EnvContext(envContext)

	var err error
	if rec.SolutionTypes, err = unmarshalList(solutionTypes, "solution_types"); err != nil {
		return nil, err
	}
	if rec.ChallengesAddressed, err = unmarshalList(challenges, "challenges_addressed"); err != nil {
		return nil, err
	}
	if rec.HealthLinkagesPrimary, err = unmarshalList(healthLinkages, "health_linkages_primary"); err != nil {
		return nil, err
	}
	if rec.Impacts, err = unmarshalList(impacts, "impacts"); err != nil {
		return nil, err
	}
	if rec.ProcessedAt, err = parseTime(processedAt); err != nil {
		return nil, err
	}

	return &rec, nil
}

// parseTime parses the RFC3339 processed_at column.
func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse processed_at: %w", err)
	}
	return t, nil
}

// marshalList stores a list field as a JSON array. Nil and empty lists
// both store as "[]" so no column is ever NULL.
func marshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(value, fieldName string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
