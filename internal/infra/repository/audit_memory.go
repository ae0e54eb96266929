package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type AuditMemoryRepository struct {
	mu      sync.RWMutex
	entries []models.AuditLog
}

func NewAuditMemoryRepository() *AuditMemoryRepository {
	return &AuditMemoryRepository{}
}

func (r *AuditMemoryRepository) WriteAuditLog(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.NewString()
	r.entries = append(r.entries, *entry)
	return nil
}

// ListAuditLogs returns matching entries newest first.
func (r *AuditMemoryRepository) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		if q.Entity != "" && e.Entity != q.Entity {
			continue
		}
		if !q.From.IsZero() && e.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !e.CreatedAt.Before(q.To) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := len(matched)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return matched[q.Offset:end], total, nil
}

var _ audit.Store = (*AuditMemoryRepository)(nil)
