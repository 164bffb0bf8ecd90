package handlers_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/accountkit/account-service/internal/application"
	"github.com/accountkit/account-service/internal/domain/entity"
	"github.com/accountkit/account-service/internal/domain/repository"
	handlers "github.com/accountkit/account-service/internal/interface/http"
	"github.com/accountkit/account-service/internal/interface/middleware"
	"github.com/accountkit/account-service/pkg/helpers"
	"github.com/accountkit/account-service/pkg/validation"
)

var initValidation sync.Once

// memAccountRepo mirrors the Postgres repository contract in memory,
// unique email constraint included.
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

// downRepo fails every email lookup the way a lost database
// connection would.
type downRepo struct {
	*memAccountRepo
}

func (r *downRepo) GetByEmail(context.Context, string) (*entity.Account, error) {
	return nil, errors.New("connection refused")
}

// newTestRouter wires handlers and the bearer gate exactly like the
// route modules do, minus redis rate limiting.
func newTestRouter() (*gin.Engine, *application.Service) {
	return newTestRouterWith(newMemAccountRepo())
}

func newTestRouterWith(repo repository.AccountRepository) (*gin.Engine, *application.Service) {
	gin.SetMode(gin.TestMode)
	initValidation.Do(validation.Init)

	jm := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewService(repo, jm, nil, nil, false, nil, "")

	authHandler := handlers.NewAuthHandler(svc, nil)
	accountHandler := handlers.NewAccountHandler(svc, nil)

	r := gin.New()
	r.POST("/auth/login", authHandler.Login)
	r.POST("/user/create", accountHandler.Create)

	auth := r.Group("/user")
	auth.Use(middleware.BearerAuth(jm))
	auth.GET("/profile/:id", accountHandler.GetProfile)
	auth.PUT("/:id", accountHandler.Update)
	auth.DELETE("/:id", accountHandler.Remove)

	return r, svc
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
