package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/netmovie-accounts/internal/application"
	handlers "github.com/oksasatya/netmovie-accounts/internal/interface/http"
	"github.com/oksasatya/netmovie-accounts/internal/interface/middleware"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
)

// AccountModule wires the account handlers into routes.
// Public: POST /api/register, POST /api/login, POST /api/logout
// Session: GET /api/session
type AccountModule struct {
	Handler *handlers.AccountHandler
	Svc     *application.Service
	Cookies *helpers.Manager
}

func NewAccountModule(h *handlers.AccountHandler, svc *application.Service, cookies *helpers.Manager) *AccountModule {
	return &AccountModule{Handler: h, Svc: svc, Cookies: cookies}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
	// logout needs no session: it is a no-op without one
	rg.POST("/logout", m.Handler.Logout)

	rg.GET("/session", middleware.RequireSession(m.Svc, m.Cookies), m.Handler.Session)
}
