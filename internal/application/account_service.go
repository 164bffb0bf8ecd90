package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/accountkit/account-service/internal/domain/entity"
	repo "github.com/accountkit/account-service/internal/domain/repository"
	"github.com/accountkit/account-service/pkg/helpers"
	"github.com/accountkit/account-service/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already exists")
)

// Service orchestrates account CRUD and login. It enforces the email
// uniqueness and existence invariants before delegating to the
// repository, which remains the authority for uniqueness under
// concurrent writers.
type Service struct {
	Repo            repo.AccountRepository
	JWT             *helpers.JWTManager
	Logger          *logrus.Logger
	Pub             *helpers.RabbitPublisher
	MailSendEnabled bool
	ES              *elasticsearch.Client
	ESAccountsIndex string
}

func NewService(repo repo.AccountRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool, es *elasticsearch.Client, esAccountsIndex string) *Service {
	return &Service{
		Repo:            repo,
		JWT:             jwt,
		Logger:          logger,
		Pub:             pub,
		MailSendEnabled: mailEnabled,
		ES:              es,
		ESAccountsIndex: esAccountsIndex,
	}
}

// Register creates a new account. The email must not be in use; the
// password is hashed before the record is first persisted. The
// repository's unique constraint backs up the pre-check, so a
// concurrent create racing past GetByEmail still comes back as
// ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, password string) (*entity.Account, error) {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &entity.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.publishWelcomeEmail(ctx, a)
	s.indexAccount(ctx, a)
	return a, nil
}

// GetProfile looks up an account by id.
func (s *Service) GetProfile(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// GetByEmail returns the account for the given email, or
// ErrAccountNotFound when no account matches. Absence is an expected
// outcome here, used by the uniqueness check and by login.
func (s *Service) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// UpdateInput is a partial patch: nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Update applies a partial patch to an account.
//
// Submitting the account's current email is rejected as a conflict,
// same as a taken one. That matches the shipped behavior and callers
// depend on it; leave it alone.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if in.Email != nil {
		if *in.Email == a.Email {
			return nil, ErrEmailTaken
		}
		if _, err := s.Repo.GetByEmail(ctx, *in.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		a.Email = *in.Email
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, a); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	s.indexAccount(ctx, a)
	return a, nil
}

// Remove hard-deletes an account. A second Remove for the same id
// fails with ErrAccountNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	s.deleteAccountDoc(ctx, id)
	return nil
}

func (s *Service) publishWelcomeEmail(ctx context.Context, a *entity.Account) {
	if s.Pub == nil || !s.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       a.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": a.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("welcome email publish failed")
	}
}

// indexAccount mirrors the account into Elasticsearch. Best effort:
// the index is a read replica, not the system of record.
func (s *Service) indexAccount(ctx context.Context, a *entity.Account) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
	}
}

func (s *Service) deleteAccountDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESAccountsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
