package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute returns the principal's appointments in store order. It never
// returns a nil slice on success.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	principal identity.Principal,
) ([]models.Appointment, error) {

	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	appointments, err := uc.repo.FindMany(ctx, domain.Filter{CreatedBy: principal.ID})
	if err != nil {
		return nil, err
	}

	if appointments == nil {
		appointments = []models.Appointment{}
	}

	return appointments, nil
}
