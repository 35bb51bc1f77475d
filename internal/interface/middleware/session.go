package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/netmovie-accounts/internal/application"
	repo "github.com/oksasatya/netmovie-accounts/internal/domain/repository"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
	"github.com/oksasatya/netmovie-accounts/pkg/response"
)

// CtxSessionKey holds the *entity.Session of an authenticated request.
const CtxSessionKey = "session"

// RequireSession resolves the session cookie to a live server-side session
// and aborts with 401 when there is none.
func RequireSession(svc *application.Service, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Session(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "Not logged in.", "no_session")
			c.Abort()
			return
		}
		sess, err := svc.CurrentSession(c.Request.Context(), token)
		if errors.Is(err, repo.ErrSessionNotFound) {
			cookies.Clear(c)
			response.Error[any](c, http.StatusUnauthorized, "Session expired. Please login again.", "no_session")
			c.Abort()
			return
		}
		if err != nil {
			helpers.LogError(svc.Logger, "session lookup failed", err, nil)
			response.Error[any](c, http.StatusInternalServerError, application.MsgServerError, "internal")
			c.Abort()
			return
		}
		c.Set(CtxSessionKey, sess)
		c.Next()
	}
}
