package appointment_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	uc "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (f *fakeRecorder) Record(_ context.Context, ev audit.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeRecorder) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Action)
	}
	return out
}

type service struct {
	repo   *repository.AppointmentMemoryRepository
	rec    *fakeRecorder
	create *uc.CreateAppointment
	list   *uc.ListAppointments
	get    *uc.GetAppointment
	update *uc.UpdateAppointment
	delete *uc.DeleteAppointment
}

func newService() *service {
	repo := repository.NewAppointmentMemoryRepository()
	rec := &fakeRecorder{}
	return &service{
		repo:   repo,
		rec:    rec,
		create: uc.NewCreateAppointment(repo, rec),
		list:   uc.NewListAppointments(repo),
		get:    uc.NewGetAppointment(repo),
		update: uc.NewUpdateAppointment(repo, rec),
		delete: uc.NewDeleteAppointment(repo, rec),
	}
}

var (
	alice = identity.Principal{ID: "u-alice", FullName: "Alice", Role: identity.RolePatient}
	bob   = identity.Principal{ID: "u-bob", FullName: "Bob", Role: identity.RolePatient}
	admin = identity.Principal{ID: "u-admin", FullName: "Root", Role: identity.RoleAdmin}
)

func validInput() uc.CreateAppointmentInput {
	return uc.CreateAppointmentInput{
		Doctor:          "Dr. X",
		AppointmentType: "checkup",
		PhoneNumber:     "5551234567",
		Email:           "a@b.co",
		Date:            "2024-05-01",
		Time:            "10:00",
	}
}

func kindOf(t *testing.T, err error) httperr.Kind {
	t.Helper()
	require.Error(t, err)
	return httperr.KindOf(err)
}

func TestAliceScenario(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.PatientName)
	assert.Equal(t, "u-alice", created.CreatedBy)

	list, err := s.list.Execute(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	patch := domain.NewPatch().Set(domain.FieldTime, "11:00")
	updated, err := s.update.Execute(ctx, alice, created.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "11:00", updated.Time)
	assert.Equal(t, "Dr. X", updated.Doctor)
	assert.Equal(t, "u-alice", updated.CreatedBy)
	assert.Equal(t, "Alice", updated.PatientName)

	require.NoError(t, s.delete.Execute(ctx, alice, created.ID))

	list, err = s.list.Execute(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	assert.Equal(t,
		[]string{"appointment_created", "appointment_updated", "appointment_deleted"},
		s.rec.actions(),
	)
}

func TestCreateDerivesOwnershipFromPrincipal(t *testing.T) {
	s := newService()

	// the input type has no owner fields; only the principal decides
	created, err := s.create.Execute(context.Background(), bob, validInput())
	require.NoError(t, err)

	assert.Equal(t, bob.ID, created.CreatedBy)
	assert.Equal(t, bob.FullName, created.PatientName)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateRejectsInvalidContact(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *uc.CreateAppointmentInput)
		wantField string
	}{
		{"email without at", func(in *uc.CreateAppointmentInput) { in.Email = "bad" }, "email"},
		{"email with space", func(in *uc.CreateAppointmentInput) { in.Email = "a b@c.de" }, "email"},
		{"email with no-break space", func(in *uc.CreateAppointmentInput) { in.Email = "a\u00a0b@c.com" }, "email"},
		{"email with vertical tab", func(in *uc.CreateAppointmentInput) { in.Email = "a\vb@c.com" }, "email"},
		{"email with em space", func(in *uc.CreateAppointmentInput) { in.Email = "a@b\u2003c.com" }, "email"},
		{"short phone", func(in *uc.CreateAppointmentInput) { in.PhoneNumber = "12345" }, "phoneNumber"},
		{"formatted phone", func(in *uc.CreateAppointmentInput) { in.PhoneNumber = "555-123-4567" }, "phoneNumber"},
		{"eleven digits", func(in *uc.CreateAppointmentInput) { in.PhoneNumber = "55512345678" }, "phoneNumber"},
		{"both invalid reports email", func(in *uc.CreateAppointmentInput) {
			in.Email = "bad"
			in.PhoneNumber = "1"
		}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService()
			in := validInput()
			tt.mutate(&in)

			ap, err := s.create.Execute(context.Background(), alice, in)
			assert.Nil(t, ap)
			assert.Equal(t, httperr.KindInput, kindOf(t, err))

			var he *httperr.Error
			require.True(t, errors.As(err, &he))
			assert.Equal(t, tt.wantField, he.Field)

			all, err := s.repo.FindMany(context.Background(), domain.Filter{})
			require.NoError(t, err)
			assert.Empty(t, all)
			assert.Empty(t, s.rec.actions())
		})
	}
}

func TestCrossPrincipalIsolation(t *testing.T) {
	s := newService()
	ctx := context.Background()

	mine, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)
	_, err = s.create.Execute(ctx, bob, validInput())
	require.NoError(t, err)

	list, err := s.list.Execute(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bob.ID, list[0].CreatedBy)

	_, err = s.get.Execute(ctx, bob, mine.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.get.Execute(ctx, alice, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.get.Execute(ctx, alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)
}

func TestGetAndListAreOwnerScopedForAdmins(t *testing.T) {
	s := newService()
	ctx := context.Background()

	mine, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	_, err = s.get.Execute(ctx, admin, mine.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := s.list.Execute(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	require.NoError(t, s.delete.Execute(ctx, alice, created.ID))
	require.NoError(t, s.delete.Execute(ctx, alice, created.ID))
	require.NoError(t, s.delete.Execute(ctx, alice, "never-existed"))

	_, err = s.get.Execute(ctx, alice, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// only the first delete removed something
	assert.Equal(t, []string{"appointment_created", "appointment_deleted"}, s.rec.actions())
}

func TestDeleteByNonOwnerLeavesRecord(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	require.NoError(t, s.delete.Execute(ctx, bob, created.ID))

	_, err = s.get.Execute(ctx, alice, created.ID)
	require.NoError(t, err)
}

func TestAdminMayDeleteAnyRecord(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	require.NoError(t, s.delete.Execute(ctx, admin, created.ID))

	_, err = s.get.Execute(ctx, alice, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMissingRecord(t *testing.T) {
	s := newService()
	ctx := context.Background()

	patch := domain.NewPatch().Set(domain.FieldDoctor, "Dr. Y")
	_, err := s.update.Execute(ctx, alice, "nonexistent-id", patch)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.update.Execute(ctx, alice, "", patch)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.update.Execute(ctx, alice, "nonexistent-id", domain.NewPatch())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, s.rec.actions())
}

func TestUpdateByNonOwnerIsNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	_, err = s.update.Execute(ctx, bob, created.ID, domain.NewPatch().Set(domain.FieldDoctor, "Dr. Evil"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.get.Execute(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. X", got.Doctor)
}

func TestAdminMayUpdateAnyRecord(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	updated, err := s.update.Execute(ctx, admin, created.ID, domain.NewPatch().Set(domain.FieldDate, "2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", updated.Date)
	assert.Equal(t, alice.ID, updated.CreatedBy)
}

func TestUpdateRevalidatesContact(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	_, err = s.update.Execute(ctx, alice, created.ID, domain.NewPatch().Set(domain.FieldPhoneNumber, "abc"))
	assert.Equal(t, httperr.KindInput, kindOf(t, err))

	_, err = s.update.Execute(ctx, alice, created.ID, domain.NewPatch().Set(domain.FieldEmail, "nope"))
	assert.Equal(t, httperr.KindInput, kindOf(t, err))

	got, err := s.get.Execute(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "5551234567", got.PhoneNumber)
	assert.Equal(t, "a@b.co", got.Email)
}

func TestEmptyPatchReturnsCurrentRecord(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.create.Execute(ctx, alice, validInput())
	require.NoError(t, err)

	got, err := s.update.Execute(ctx, alice, created.ID, domain.NewPatch())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"appointment_created"}, s.rec.actions())
}

func TestUnauthenticatedPrincipalIsRejected(t *testing.T) {
	s := newService()
	ctx := context.Background()
	var nobody identity.Principal

	_, err := s.create.Execute(ctx, nobody, validInput())
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	_, err = s.list.Execute(ctx, nobody)
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	_, err = s.get.Execute(ctx, nobody, "x")
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	_, err = s.update.Execute(ctx, nobody, "x", domain.NewPatch())
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)

	assert.ErrorIs(t, s.delete.Execute(ctx, nobody, "x"), identity.ErrUnauthenticated)
}

type failingRepo struct {
	domain.Repository
	err error
}

func (f failingRepo) Insert(context.Context, *models.Appointment) error { return f.err }

func TestCreatePropagatesStoreError(t *testing.T) {
	storeErr := httperr.ErrStore("insert appointment", errors.New("connection reset"))
	rec := &fakeRecorder{}
	create := uc.NewCreateAppointment(failingRepo{err: storeErr}, rec)

	_, err := create.Execute(context.Background(), alice, validInput())
	assert.Equal(t, httperr.KindStore, kindOf(t, err))
	assert.Empty(t, rec.actions())
}
