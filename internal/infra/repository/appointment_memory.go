package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// AppointmentMemoryRepository keeps appointments in process memory, in
// insertion order. It backs STORE_DRIVER=memory and tests.
type AppointmentMemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Appointment
	now   func() time.Time
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		byID: make(map[string]models.Appointment),
		now:  time.Now,
	}
}

func matches(ap models.Appointment, f domain.Filter) bool {
	if f.ID != "" && ap.ID != f.ID {
		return false
	}
	if f.CreatedBy != "" && ap.CreatedBy != f.CreatedBy {
		return false
	}
	return true
}

func (r *AppointmentMemoryRepository) Insert(
	_ context.Context,
	ap *models.Appointment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	ap.ID = uuid.NewString()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	r.byID[ap.ID] = *ap
	r.order = append(r.order, ap.ID)
	return nil
}

func (r *AppointmentMemoryRepository) FindMany(
	_ context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, id := range r.order {
		if ap := r.byID[id]; matches(ap, filter) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *AppointmentMemoryRepository) FindOne(
	_ context.Context,
	filter domain.Filter,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if ap := r.byID[id]; matches(ap, filter) {
			return &ap, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AppointmentMemoryRepository) Update(
	_ context.Context,
	filter domain.Filter,
	patch domain.Patch,
) (*models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		ap := r.byID[id]
		if !matches(ap, filter) {
			continue
		}
		patch.Apply(&ap)
		ap.UpdatedAt = r.now().UTC()
		r.byID[id] = ap
		return &ap, nil
	}
	return nil, domain.ErrNotFound
}

func (r *AppointmentMemoryRepository) Delete(
	_ context.Context,
	filter domain.Filter,
) (bool, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, id := range r.order {
		if !matches(r.byID[id], filter) {
			continue
		}
		delete(r.byID, id)
		r.order = append(r.order[:i:i], r.order[i+1:]...)
		return true, nil
	}
	return false, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
