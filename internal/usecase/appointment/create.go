package appointment

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

// CreateAppointmentInput carries only caller-controlled fields. Ownership and
// the patient name come from the principal.
type CreateAppointmentInput struct {
	Doctor          string
	AppointmentType string
	PhoneNumber     string
	Email           string
	Date            string
	Time            string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit Recorder
}

func NewCreateAppointment(
	repo domain.Repository,
	audit Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	principal identity.Principal,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	if ok, reason := validators.ValidateEmail(in.Email); !ok {
		return nil, httperr.ErrInput(string(domain.FieldEmail), reason)
	}

	if ok, reason := validators.ValidatePhone(in.PhoneNumber); !ok {
		return nil, httperr.ErrInput(string(domain.FieldPhoneNumber), reason)
	}

	ap := &models.Appointment{
		Doctor:          in.Doctor,
		PatientName:     principal.FullName,
		PhoneNumber:     in.PhoneNumber,
		Email:           in.Email,
		CreatedBy:       principal.ID,
		AppointmentType: in.AppointmentType,
		Date:            in.Date,
		Time:            in.Time,
	}

	if err := uc.repo.Insert(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		ActorID:  principal.ID,
		Action:   "appointment_created",
		Entity:   entity,
		EntityID: ap.ID,
	})

	return ap, nil
}
