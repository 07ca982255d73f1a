package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/logger"
)

const defaultAuditWriteTimeout = 5 * time.Second

// auditor hands entries to the audit sink in the background. A slow or
// failing sink is logged and never reaches the caller.
type auditor struct {
	sink    driven.AuditSink
	timeout time.Duration
	wg      sync.WaitGroup
}

func newAuditor(sink driven.AuditSink, timeout time.Duration) *auditor {
	if timeout <= 0 {
		timeout = defaultAuditWriteTimeout
	}
	return &auditor{sink: sink, timeout: timeout}
}

// record schedules a write of entry. The write outlives ctx cancellation
// but is bounded by the auditor's timeout.
func (a *auditor) record(ctx context.Context, entry domain.AuditEntry) {
	if a == nil || a.sink == nil {
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("Audit write for request %s panicked: %v", entry.RequestID, r)
			}
		}()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		id, err := a.sink.Write(writeCtx, entry)
		if err != nil {
			logger.Warn("Audit write for request %s failed: %v", entry.RequestID, err)
			return
		}
		logger.Debug("Audit record %s written for request %s", id, entry.RequestID)
	}()
}

// wait blocks until every scheduled write has finished.
func (a *auditor) wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}
