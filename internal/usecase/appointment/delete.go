package appointment

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit Recorder
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit Recorder,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the record physically. Deleting a missing or foreign id
// succeeds without effect, so repeated deletes look the same.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	principal identity.Principal,
	appointmentID string,
) error {

	if !principal.Authenticated() {
		return identity.ErrUnauthenticated
	}

	if appointmentID == "" {
		return nil
	}

	deleted, err := uc.repo.Delete(ctx, writeScope(principal, appointmentID))
	if err != nil {
		return err
	}

	if deleted {
		uc.audit.Record(ctx, audit.Event{
			ActorID:  principal.ID,
			Action:   "appointment_deleted",
			Entity:   entity,
			EntityID: appointmentID,
		})
	}

	return nil
}
