package appointment

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit Recorder
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	principal identity.Principal,
	appointmentID string,
	patch domain.Patch,
) (*models.Appointment, error) {

	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	if appointmentID == "" {
		return nil, domain.ErrNotFound
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	scope := writeScope(principal, appointmentID)

	// nothing to merge: still answer NotFound for missing records
	if patch.IsEmpty() {
		return uc.repo.FindOne(ctx, scope)
	}

	ap, err := uc.repo.Update(ctx, scope, patch)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(patch.Fields()))
	for _, f := range patch.Fields() {
		fields = append(fields, string(f))
	}

	uc.audit.Record(ctx, audit.Event{
		ActorID:  principal.ID,
		Action:   "appointment_updated",
		Entity:   entity,
		EntityID: ap.ID,
		Metadata: map[string]any{"fields": fields},
	})

	return ap, nil
}
