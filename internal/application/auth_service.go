package application

import (
	"context"
	"errors"
	"time"

	"github.com/accountkit/account-service/internal/domain/entity"
	repo "github.com/accountkit/account-service/internal/domain/repository"
	"github.com/accountkit/account-service/pkg/helpers"
)

// TokenResult is the wrapper returned to a successful login.
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"-"`
}

// Authenticate validates email/password and returns the account
// without issuing a token. Unknown email and wrong password collapse
// into the same ErrInvalidCredentials so callers cannot enumerate
// accounts. Any other repository error is an infrastructure failure,
// not a credential problem, and propagates as-is.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// Login runs the two-step flow: lookup, then verify, then issue. No
// intermediate state is persisted; the token alone carries the
// session.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	a, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.Issue(a.ID, a.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("token issue failed")
		}
		return nil, err
	}
	return &TokenResult{AccessToken: token, ExpiresAt: exp}, nil
}
