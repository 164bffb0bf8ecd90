package router

import (
	"github.com/accountkit/account-service/internal/application"
	"github.com/accountkit/account-service/internal/container"
	pginfra "github.com/accountkit/account-service/internal/infrastructure/postgres"
	handlers "github.com/accountkit/account-service/internal/interface/http"
	"github.com/accountkit/account-service/internal/router/modules"
)

// InitModules builds the account service dependency chain and registers
// all feature modules. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewAccountRepository(container.GetPGPool())

	svc := application.NewService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetES(),
		cfg.ESAccountsIndex,
	)

	authHandler := handlers.NewAuthHandler(svc, container.GetLogger())
	accountHandler := handlers.NewAccountHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewAccountModule(accountHandler, container.GetJWT()))
}
