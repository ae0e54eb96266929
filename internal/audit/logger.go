package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Query filters audit entries. Zero values leave a dimension unconstrained.
type Query struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// Store persists audit entries. Implementations assign the identifier.
type Store interface {
	WriteAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

// Logger records events inline. A failed write is logged and never fails
// the operation being audited.
type Logger struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func New(store Store, log zerolog.Logger) *Logger {
	return &Logger{store: store, log: log, now: time.Now}
}

func (l *Logger) Record(ctx context.Context, ev Event) {
	if l == nil || l.store == nil {
		return
	}

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: l.now().UTC(),
	}

	if err := l.store.WriteAuditLog(ctx, &entry); err != nil {
		l.log.Error().
			Err(err).
			Str("action", ev.Action).
			Str("entity_id", ev.EntityID).
			Msg("audit write failed")
	}
}
