package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// auditStore implements driven.AuditSink.
type auditStore struct {
	store *Store
}

var _ driven.AuditSink = (*auditStore)(nil)

// Write stores one audit entry.
func (s *auditStore) Write(ctx context.Context, entry domain.AuditEntry) (string, error) {
	result := entry.Result
	if result == nil {
		result = map[string]any{}
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshalling result: %w", err)
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	id := uuid.New().String()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, request_id, user_id, query, result, processing_time, error, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, entry.RequestID, entry.UserID, nullString(entry.Query), string(resultJSON),
		nullFloat(entry.ProcessingTime), nullString(entry.Error), entry.Status(), ts.UTC().UnixNano())
	if err != nil {
		return "", fmt.Errorf("saving audit entry: %w", err)
	}
	return id, nil
}

// List returns records newest first.
func (s *auditStore) List(ctx context.Context, query domain.AuditQuery) ([]domain.AuditRecord, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, request_id, user_id, query, result, processing_time, error, status, created_at
		FROM audit_log
		WHERE (? = '' OR user_id = ?)
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, query.UserID, query.UserID, limit, max(query.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit log: %w", err)
	}
	return records, nil
}

// Stats aggregates records, optionally restricted to one user.
// The average ignores records without a processing time.
func (s *auditStore) Stats(ctx context.Context, userID string) (domain.AuditStats, error) {
	var stats domain.AuditStats
	var avg sql.NullFloat64

	err := s.store.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0),
			AVG(processing_time),
			COALESCE(SUM(processing_time), 0)
		FROM audit_log
		WHERE (? = '' OR user_id = ?)
	`, userID, userID).Scan(
		&stats.TotalRequests,
		&stats.SuccessfulRequests,
		&stats.FailedRequests,
		&avg,
		&stats.TotalProcessingTime,
	)
	if err != nil {
		return domain.AuditStats{}, fmt.Errorf("computing audit stats: %w", err)
	}
	if avg.Valid {
		stats.AvgProcessingTime = avg.Float64
	}
	return stats, nil
}

// Healthy reports whether the database answers a ping.
func (s *auditStore) Healthy(ctx context.Context) bool {
	return s.store.db.PingContext(ctx) == nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.AuditRecord, error) {
	var (
		rec        domain.AuditRecord
		query      sql.NullString
		resultJSON string
		procTime   sql.NullFloat64
		errText    sql.NullString
		createdAt  int64
	)

	if err := row.Scan(&rec.ID, &rec.RequestID, &rec.UserID, &query, &resultJSON,
		&procTime, &errText, &rec.Status, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning audit record: %w", err)
	}

	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("unmarshalling result: %w", err)
	}
	if query.Valid {
		rec.Query = &query.String
	}
	if procTime.Valid {
		rec.ProcessingTime = &procTime.Float64
	}
	if errText.Valid {
		rec.Error = &errText.String
	}
	rec.Timestamp = time.Unix(0, createdAt).UTC()
	return &rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
