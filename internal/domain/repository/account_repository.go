package repository

import (
	"context"
	"errors"

	"github.com/accountkit/account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no account matches the given key.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when a write violates the unique
	// email constraint. The storage layer is the authority for this
	// error; callers translate it into a conflict regardless of
	// whether their own pre-check raced and passed.
	ErrDuplicateEmail = errors.New("email already in use")
)

// AccountRepository defines the interface for account persistence.
// Implementations must enforce email uniqueness and bound every call
// with a timeout.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
	Delete(ctx context.Context, id string) error
}
