package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"historian/internal/statistics/domain"
)

const defaultListLimit = 100

var tables = map[domain.Kind]string{
	domain.KindRaw:       "statistics_raw",
	domain.KindPerSecond: "statistics_per_second",
	domain.KindWindow:    "statistics_window",
}

// SQLiteStore implements domain.Store with one table per record kind
type SQLiteStore struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// NewSQLiteStore creates a store on already migrated databases. readDB and
// writeDB may be the same handle.
func NewSQLiteStore(readDB, writeDB *sql.DB) *SQLiteStore {
	return &SQLiteStore{readDB: readDB, writeDB: writeDB}
}

func table(kind domain.Kind) (string, error) {
	name, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
	return name, nil
}

func nodeFilter(nodeID string) sql.NullString {
	return sql.NullString{String: nodeID, Valid: nodeID != ""}
}

// Append inserts a record
func (s *SQLiteStore) Append(ctx context.Context, record domain.Record) error {
	name, err := table(record.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`insert into %s (id, ts, node_id, doc) values (?1, ?2, ?3, ?4)`, name)
	if _, err := s.writeDB.ExecContext(ctx, query, record.ID, record.Time, record.NodeID, []byte(record.Body)); err != nil {
		return fmt.Errorf("failed to insert %s record: %w", record.Kind, err)
	}
	return nil
}

// MostRecent returns the newest record with ts >= since
func (s *SQLiteStore) MostRecent(ctx context.Context, kind domain.Kind, since float64, nodeID string) (domain.Record, error) {
	name, err := table(kind)
	if err != nil {
		return domain.Record{}, err
	}

	query := fmt.Sprintf(`select id, ts, node_id, doc
from %s
where ts >= ?1
  and (node_id = ?2 or ?2 is null)
order by ts desc
limit 1`, name)

	record := domain.Record{Kind: kind}
	var doc []byte
	err = s.readDB.QueryRowContext(ctx, query, since, nodeFilter(nodeID)).Scan(&record.ID, &record.Time, &record.NodeID, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Record{}, fmt.Errorf("failed to query latest %s record: %w", kind, err)
	}
	record.Body = doc

	return record, nil
}

// Since returns every record with ts >= since, oldest first
func (s *SQLiteStore) Since(ctx context.Context, kind domain.Kind, since float64, nodeID string) ([]domain.Record, error) {
	name, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`select id, ts, node_id, doc
from %s
where ts >= ?1
  and (node_id = ?2 or ?2 is null)
order by ts asc`, name)

	rows, err := s.readDB.QueryContext(ctx, query, since, nodeFilter(nodeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", kind, err)
	}
	defer rows.Close()

	return scanRecords(rows, kind)
}

// List returns records newest first with optional filters
func (s *SQLiteStore) List(ctx context.Context, kind domain.Kind, filters domain.RecordFilters) ([]domain.Record, error) {
	name, err := table(kind)
	if err != nil {
		return nil, err
	}

	limit := int64(defaultListLimit)
	if filters.Limit > 0 {
		limit = int64(filters.Limit)
	}
	offset := int64(filters.Offset)

	var from sql.NullFloat64
	if filters.From != nil {
		from.Float64 = *filters.From
		from.Valid = true
	}

	var to sql.NullFloat64
	if filters.To != nil {
		to.Float64 = *filters.To
		to.Valid = true
	}

	query := fmt.Sprintf(`select id, ts, node_id, doc
from %s
where (node_id = ?1 or ?1 is null)
  and (ts >= ?2 or ?2 is null)
  and (ts <= ?3 or ?3 is null)
order by ts desc
limit ?4 offset ?5`, name)

	rows, err := s.readDB.QueryContext(ctx, query, nodeFilter(filters.NodeID), from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	defer rows.Close()

	return scanRecords(rows, kind)
}

func scanRecords(rows *sql.Rows, kind domain.Kind) ([]domain.Record, error) {
	var records []domain.Record
	for rows.Next() {
		record := domain.Record{Kind: kind}
		var doc []byte
		if err := rows.Scan(&record.ID, &record.Time, &record.NodeID, &doc); err != nil {
			return nil, err
		}
		record.Body = doc
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
