package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// scoped narrows a query on model to the records selected by filter.
func (r *AppointmentGormRepository) scoped(
	ctx context.Context,
	model any,
	filter domain.Filter,
) *gorm.DB {

	q := r.db.WithContext(ctx).Model(model)
	if filter.ID != "" {
		q = q.Where("id = ?", filter.ID)
	}
	if filter.CreatedBy != "" {
		q = q.Where("created_by = ?", filter.CreatedBy)
	}
	return q
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *AppointmentGormRepository) Insert(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return httperr.ErrStore("insert appointment", err)
	}
	return nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) FindMany(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	apps := make([]models.Appointment, 0)
	if err := r.scoped(ctx, &models.Appointment{}, filter).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.ErrStore("list appointments", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) FindOne(
	ctx context.Context,
	filter domain.Filter,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.scoped(ctx, &ap, filter).Take(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, httperr.ErrStore("find appointment", err)
	}

	return &ap, nil
}

// --------------------------------------------------
// Update / Delete
// --------------------------------------------------

// Update runs a single UPDATE ... RETURNING so the merge and the read of the
// stored result are one statement.
func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	filter domain.Filter,
	patch domain.Patch,
) (*models.Appointment, error) {

	cols := patch.Columns()
	cols["updated_at"] = time.Now().UTC()

	var updated []models.Appointment
	res := r.scoped(ctx, &updated, filter).
		Clauses(clause.Returning{}).
		Updates(cols)

	if res.Error != nil {
		return nil, httperr.ErrStore("update appointment", res.Error)
	}
	if len(updated) == 0 {
		return nil, domain.ErrNotFound
	}

	return &updated[0], nil
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	filter domain.Filter,
) (bool, error) {

	res := r.scoped(ctx, &models.Appointment{}, filter).Delete(&models.Appointment{})
	if res.Error != nil {
		return false, httperr.ErrStore("delete appointment", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
