package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// testAppointmentRepository checks behaviour every appointment store shares.
// repo must start empty.
func testAppointmentRepository(t *testing.T, repo domain.Repository) {
	ctx := context.Background()

	first := &models.Appointment{Doctor: "Dr. X", CreatedBy: "u-1", Time: "10:00", PhoneNumber: "5551234567"}
	second := &models.Appointment{Doctor: "Dr. Y", CreatedBy: "u-1", Time: "12:00"}
	other := &models.Appointment{Doctor: "Dr. Z", CreatedBy: "u-2"}

	for _, ap := range []*models.Appointment{first, second, other} {
		require.NoError(t, repo.Insert(ctx, ap))
		require.NotEmpty(t, ap.ID)
	}
	assert.NotEqual(t, first.ID, second.ID)

	t.Run("find many by owner", func(t *testing.T) {
		apps, err := repo.FindMany(ctx, domain.Filter{CreatedBy: "u-1"})
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, first.ID, apps[0].ID)
		assert.Equal(t, second.ID, apps[1].ID)
	})

	t.Run("find many for unknown owner is empty", func(t *testing.T) {
		apps, err := repo.FindMany(ctx, domain.Filter{CreatedBy: "u-404"})
		require.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})

	t.Run("find one respects owner", func(t *testing.T) {
		got, err := repo.FindOne(ctx, domain.Filter{ID: first.ID, CreatedBy: "u-1"})
		require.NoError(t, err)
		assert.Equal(t, "Dr. X", got.Doctor)

		_, err = repo.FindOne(ctx, domain.Filter{ID: first.ID, CreatedBy: "u-2"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update merges patch", func(t *testing.T) {
		patch := domain.NewPatch().Set(domain.FieldTime, "11:00")

		got, err := repo.Update(ctx, domain.Filter{ID: first.ID, CreatedBy: "u-1"}, patch)
		require.NoError(t, err)
		assert.Equal(t, "11:00", got.Time)
		assert.Equal(t, "Dr. X", got.Doctor)
		assert.Equal(t, "5551234567", got.PhoneNumber)
		assert.Equal(t, "u-1", got.CreatedBy)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("update of foreign record is not found", func(t *testing.T) {
		patch := domain.NewPatch().Set(domain.FieldDoctor, "Dr. Evil")

		_, err := repo.Update(ctx, domain.Filter{ID: other.ID, CreatedBy: "u-1"}, patch)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		got, err := repo.FindOne(ctx, domain.Filter{ID: other.ID})
		require.NoError(t, err)
		assert.Equal(t, "Dr. Z", got.Doctor)
	})

	t.Run("delete reports removal once", func(t *testing.T) {
		filter := domain.Filter{ID: second.ID, CreatedBy: "u-1"}

		deleted, err := repo.Delete(ctx, filter)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, filter)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.FindOne(ctx, filter)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func testUserRepository(t *testing.T, repo user.Repository) {
	ctx := context.Background()

	u := &models.User{FullName: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: "patient"}
	require.NoError(t, repo.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	dup := &models.User{FullName: "Eve", Email: "alice@example.com", PasswordHash: "y", Role: "patient"}
	assert.ErrorIs(t, repo.CreateUser(ctx, dup), user.ErrEmailTaken)

	got, err := repo.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FullName)

	_, err = repo.FindUserByID(ctx, "nobody")
	assert.ErrorIs(t, err, user.ErrNotFound)

	bob := &models.User{FullName: "Bob", Email: "bob@example.com", PasswordHash: "z", Role: "doctor"}
	require.NoError(t, repo.CreateUser(ctx, bob))
	ann := &models.User{FullName: "Ann", Email: "ann@example.com", PasswordHash: "z", Role: "doctor"}
	require.NoError(t, repo.CreateUser(ctx, ann))

	t.Run("update applies patch and keeps role", func(t *testing.T) {
		patch := user.NewPatch().
			Set(user.FieldFullName, "Alice Smith").
			Set(user.FieldEmail, "alice.smith@example.com").
			Set(user.FieldPasswordHash, "new-hash")

		got, err := repo.UpdateUser(ctx, u.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "Alice Smith", got.FullName)
		assert.Equal(t, "alice.smith@example.com", got.Email)
		assert.Equal(t, "new-hash", got.PasswordHash)
		assert.Equal(t, "patient", got.Role)

		byEmail, err := repo.FindUserByEmail(ctx, "alice.smith@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		_, err = repo.FindUserByEmail(ctx, "alice@example.com")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("update to a taken email fails", func(t *testing.T) {
		_, err := repo.UpdateUser(ctx, u.ID, user.NewPatch().Set(user.FieldEmail, "bob@example.com"))
		assert.ErrorIs(t, err, user.ErrEmailTaken)

		got, err := repo.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice.smith@example.com", got.Email)
	})

	t.Run("empty patch returns current user", func(t *testing.T) {
		got, err := repo.UpdateUser(ctx, bob.ID, user.NewPatch())
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.FullName)
	})

	t.Run("update of unknown user is not found", func(t *testing.T) {
		_, err := repo.UpdateUser(ctx, "nobody", user.NewPatch().Set(user.FieldFullName, "X"))
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("list by role", func(t *testing.T) {
		doctors, err := repo.ListUsersByRole(ctx, "doctor")
		require.NoError(t, err)
		require.Len(t, doctors, 2)
		assert.Equal(t, "Ann", doctors[0].FullName)
		assert.Equal(t, "Bob", doctors[1].FullName)

		admins, err := repo.ListUsersByRole(ctx, "admin")
		require.NoError(t, err)
		assert.NotNil(t, admins)
		assert.Empty(t, admins)
	})
}

func testAuditStore(t *testing.T, store audit.Store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, action := range []string{"appointment_created", "appointment_updated", "appointment_created"} {
		entry := &models.AuditLog{
			ActorID:   "u-1",
			Action:    action,
			Entity:    "appointment",
			EntityID:  "a-1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.WriteAuditLog(ctx, entry))
		require.NotEmpty(t, entry.ID)
	}

	logs, total, err := store.ListAuditLogs(ctx, audit.Query{Action: "appointment_created"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt), "newest first")

	logs, total, err = store.ListAuditLogs(ctx, audit.Query{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_updated", logs[0].Action)

	logs, _, err = store.ListAuditLogs(ctx, audit.Query{From: base.Add(90 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
