package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/care-scheduler/internal/auth"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

var ErrUnauthenticated = httperr.ErrAuth("unauthorized", "Unauthorized - no valid session.")

type Verifier interface {
	Verify(raw string) (*auth.Claims, error)
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Resolver turns a session token into a Principal. It fails closed: every
// problem, including a failed lookup, is reported as ErrUnauthenticated with
// the cause attached.
type Resolver struct {
	verifier Verifier
	users    UserFinder
	revoked  RevocationChecker
}

// NewResolver builds a resolver. revoked may be nil when no revocation store
// is configured.
func NewResolver(v Verifier, users UserFinder, revoked RevocationChecker) *Resolver {
	return &Resolver{verifier: v, users: users, revoked: revoked}
}

func (r *Resolver) Authenticate(ctx context.Context, raw string) (Principal, error) {
	if raw == "" {
		return Principal{}, ErrUnauthenticated.WithCause(errors.New("missing credential"))
	}

	claims, err := r.verifier.Verify(raw)
	if err != nil {
		return Principal{}, ErrUnauthenticated.WithCause(err)
	}

	if r.revoked != nil {
		revoked, err := r.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Principal{}, ErrUnauthenticated.WithCause(fmt.Errorf("revocation check: %w", err))
		}
		if revoked {
			return Principal{}, ErrUnauthenticated.WithCause(errors.New("token revoked"))
		}
	}

	u, err := r.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return Principal{}, ErrUnauthenticated.WithCause(fmt.Errorf("user lookup: %w", err))
	}

	role, ok := ParseRole(u.Role)
	if !ok {
		return Principal{}, ErrUnauthenticated.WithCause(fmt.Errorf("unknown role %q for user %s", u.Role, u.ID))
	}

	return Principal{
		ID:       u.ID,
		FullName: u.FullName,
		Role:     role,
	}, nil
}
