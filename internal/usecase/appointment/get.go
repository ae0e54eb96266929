package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(
	repo domain.Repository,
) *GetAppointment {
	return &GetAppointment{
		repo: repo,
	}
}

// Execute answers ErrNotFound both for unknown ids and for records owned by
// someone else.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	principal identity.Principal,
	appointmentID string,
) (*models.Appointment, error) {

	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	if appointmentID == "" {
		return nil, domain.ErrNotFound
	}

	return uc.repo.FindOne(ctx, readScope(principal, appointmentID))
}
