package application_test

import (
	"context"
	"time"

	"github.com/accountkit/account-service/internal/domain/entity"
	"github.com/accountkit/account-service/internal/domain/repository"
)

// memAccountRepo is an in-memory AccountRepository that enforces the
// same email uniqueness the Postgres implementation does.
type memAccountRepo struct {
	accounts map[string]*entity.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*entity.Account{}}
}

func (r *memAccountRepo) Create(_ context.Context, a *entity.Account) error {
	for _, e := range r.accounts {
		if e.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAccountRepo) Update(_ context.Context, a *entity.Account) error {
	if _, ok := r.accounts[a.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, e := range r.accounts {
		if id != a.ID && e.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	a.UpdatedAt = time.Now()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *memAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

var _ repository.AccountRepository = (*memAccountRepo)(nil)

// erringAccountRepo overrides selected calls with fixed errors and
// delegates the rest, for exercising storage-failure paths.
type erringAccountRepo struct {
	*memAccountRepo
	getByEmailErr error
	createErr     error
}

func (r *erringAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if r.getByEmailErr != nil {
		return nil, r.getByEmailErr
	}
	return r.memAccountRepo.GetByEmail(ctx, email)
}

func (r *erringAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.memAccountRepo.Create(ctx, a)
}

var _ repository.AccountRepository = (*erringAccountRepo)(nil)
