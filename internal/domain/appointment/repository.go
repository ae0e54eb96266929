package appointment

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// Filter selects appointments. An empty CreatedBy leaves the owner
// unconstrained; an empty ID matches every record.
type Filter struct {
	ID        string
	CreatedBy string
}

// Repository is the document store behind the appointment use cases. Every
// method touches at most one record except FindMany.
type Repository interface {
	// Insert assigns the identifier and timestamps, then persists ap.
	Insert(
		ctx context.Context,
		ap *models.Appointment,
	) error

	FindMany(
		ctx context.Context,
		filter Filter,
	) ([]models.Appointment, error)

	// FindOne returns ErrNotFound when nothing matches.
	FindOne(
		ctx context.Context,
		filter Filter,
	) (*models.Appointment, error)

	// Update merges patch into the matching record and returns the stored
	// result, or ErrNotFound.
	Update(
		ctx context.Context,
		filter Filter,
		patch Patch,
	) (*models.Appointment, error)

	// Delete reports whether a record was removed.
	Delete(
		ctx context.Context,
		filter Filter,
	) (bool, error)
}
