package router

import (
	"github.com/oksasatya/netmovie-accounts/internal/application"
	"github.com/oksasatya/netmovie-accounts/internal/container"
	pginfra "github.com/oksasatya/netmovie-accounts/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/netmovie-accounts/internal/interface/http"
	"github.com/oksasatya/netmovie-accounts/internal/router/modules"
)

type AccountModuleDeps struct {
	Service *application.Service
	Handler *handlers.AccountHandler
}

func buildAccountDeps(c *container.Container) AccountModuleDeps {
	users := pginfra.NewUserRepository(c.Pool)

	service := application.NewService(
		users,
		c.Sessions,
		c.JWT,
		c.Logger,
		c.Config.SessionTTL,
		c.Config.BcryptCost,
		c.Config.LoginRedirectURL,
	)

	return AccountModuleDeps{
		Service: service,
		Handler: handlers.NewAccountHandler(service, c.Logger, c.Cookies),
	}
}

// InitModules builds every module from c and adds it to the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	account := buildAccountDeps(c)
	r.Add(modules.NewAccountModule(account.Handler, account.Service, c.Cookies))

	health := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": handlers.PingFunc(c.PingDB),
		"sessions": c.Sessions,
	})
	r.Add(modules.NewHealthModule(health))
}
