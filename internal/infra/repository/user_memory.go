package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type UserMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserMemoryRepository) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return user.ErrEmailTaken
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = *u
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserMemoryRepository) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserMemoryRepository) FindUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r *UserMemoryRepository) UpdateUser(_ context.Context, id string, patch user.Patch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	if patch.IsEmpty() {
		return &u, nil
	}

	oldKey := strings.ToLower(u.Email)
	if email, ok := patch.Get(user.FieldEmail); ok {
		if owner, taken := r.byEmail[strings.ToLower(email)]; taken && owner != id {
			return nil, user.ErrEmailTaken
		}
	}

	patch.Apply(&u)
	u.UpdatedAt = time.Now().UTC()

	delete(r.byEmail, oldKey)
	r.byEmail[strings.ToLower(u.Email)] = id
	r.byID[id] = u
	return &u, nil
}

func (r *UserMemoryRepository) ListUsersByRole(_ context.Context, role string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0)
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

var _ user.Repository = (*UserMemoryRepository)(nil)
