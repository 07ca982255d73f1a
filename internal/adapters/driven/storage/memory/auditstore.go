package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure AuditStore implements the interface.
var _ driven.AuditSink = (*AuditStore)(nil)

// AuditStore is an in-memory implementation of driven.AuditSink.
type AuditStore struct {
	mu      sync.RWMutex
	records []domain.AuditRecord
}

// NewAuditStore creates a new in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Write stores one audit entry.
func (s *AuditStore) Write(ctx context.Context, entry domain.AuditEntry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Result == nil {
		entry.Result = map[string]any{}
	}

	rec := domain.AuditRecord{
		ID:         uuid.New().String(),
		AuditEntry: entry,
		Status:     entry.Status(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec.ID, nil
}

// List returns records newest first.
func (s *AuditStore) List(_ context.Context, query domain.AuditQuery) ([]domain.AuditRecord, error) {
	matching := s.matching(query.UserID)

	// Newest first; later writes win ties.
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Timestamp.After(matching[j].Timestamp)
	})

	start := min(max(query.Offset, 0), len(matching))
	end := len(matching)
	if query.Limit > 0 {
		end = min(start+query.Limit, end)
	}
	return matching[start:end], nil
}

// Stats aggregates records, optionally restricted to one user.
func (s *AuditStore) Stats(_ context.Context, userID string) (domain.AuditStats, error) {
	var stats domain.AuditStats
	timed := 0
	for _, rec := range s.matching(userID) {
		stats.TotalRequests++
		if rec.Status == domain.AuditStatusSuccess {
			stats.SuccessfulRequests++
		} else {
			stats.FailedRequests++
		}
		if rec.ProcessingTime != nil {
			stats.TotalProcessingTime += *rec.ProcessingTime
			timed++
		}
	}
	if timed > 0 {
		stats.AvgProcessingTime = stats.TotalProcessingTime / float64(timed)
	}
	return stats, nil
}

// Healthy always reports true.
func (s *AuditStore) Healthy(_ context.Context) bool {
	return true
}

// matching returns a copy of the records for userID (all when empty),
// most recently written first.
func (s *AuditStore) matching(userID string) []domain.AuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AuditRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		if userID == "" || s.records[i].UserID == userID {
			out = append(out, s.records[i])
		}
	}
	return out
}
