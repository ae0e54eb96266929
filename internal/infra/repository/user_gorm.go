package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// CreateUser relies on the unique email index; the connection must be opened
// with TranslateError so the violation surfaces as gorm.ErrDuplicatedKey.
func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()

	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrEmailTaken
	}
	if err != nil {
		return httperr.ErrStore("create user", err)
	}
	return nil
}

func (r *UserGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserGormRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserGormRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(query, arg).Take(&u).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, httperr.ErrStore("find user", err)
	}
	return &u, nil
}

// UpdateUser uses UPDATE ... RETURNING, like the appointment store.
func (r *UserGormRepository) UpdateUser(ctx context.Context, id string, patch user.Patch) (*models.User, error) {
	if patch.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	cols := patch.Columns()
	cols["updated_at"] = time.Now().UTC()

	var updated []models.User
	res := r.db.WithContext(ctx).
		Model(&updated).
		Where("id = ?", id).
		Clauses(clause.Returning{}).
		Updates(cols)

	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return nil, user.ErrEmailTaken
	}
	if res.Error != nil {
		return nil, httperr.ErrStore("update user", res.Error)
	}
	if len(updated) == 0 {
		return nil, user.ErrNotFound
	}
	return &updated[0], nil
}

func (r *UserGormRepository) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("full_name ASC").
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, httperr.ErrStore("list users", err)
	}
	return users, nil
}

var _ user.Repository = (*UserGormRepository)(nil)
