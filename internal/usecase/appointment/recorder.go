package appointment

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
)

const entity = "appointment"

type Recorder interface {
	Record(ctx context.Context, ev audit.Event)
}

// readScope restricts a lookup to the principal's own records.
func readScope(p identity.Principal, id string) domain.Filter {
	return domain.Filter{ID: id, CreatedBy: p.ID}
}

// writeScope is readScope, except that admins may modify any record.
func writeScope(p identity.Principal, id string) domain.Filter {
	if p.IsAdmin() {
		return domain.Filter{ID: id}
	}
	return readScope(p, id)
}
