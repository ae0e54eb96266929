package user

import (
	"context"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

var (
	ErrNotFound   = httperr.ErrNotFound("user_not_found", "User not found.")
	ErrEmailTaken = httperr.ErrInput("email", "An account with this email already exists.")
)

type Repository interface {
	// CreateUser assigns the identifier and returns ErrEmailTaken on a
	// duplicate email.
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUser applies patch and returns the stored result. It returns
	// ErrNotFound when id is unknown and ErrEmailTaken when the new email
	// belongs to another account.
	UpdateUser(ctx context.Context, id string, patch Patch) (*models.User, error)

	// ListUsersByRole returns the users holding role, ordered by full name.
	ListUsersByRole(ctx context.Context, role string) ([]models.User, error)
}
