package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/netmovie-accounts/internal/application"
	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
	"github.com/oksasatya/netmovie-accounts/internal/interface/middleware"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
	"github.com/oksasatya/netmovie-accounts/pkg/response"
	"github.com/oksasatya/netmovie-accounts/pkg/validation"
)

const (
	msgRegistered   = "Registration successful! Redirecting to login..."
	msgLoggedOut    = "Logged out successfully."
	msgNoSession    = "Not logged in."
	msgSession      = "session"
	msgInvalidInput = "Invalid request body."
)

type AccountHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger, cookies *helpers.Manager) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

// Bodies arrive either as JSON or as an url-encoded form.
type registerRequest struct {
	UserID   string `json:"user_id" form:"user_id"`
	UserName string `json:"user_name" form:"user_name"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
}

type loginRequest struct {
	UserName   string `json:"user_name" form:"user_name"`
	LoginInput string `json:"login_input" form:"login_input"`
	Identifier string `json:"identifier" form:"identifier"`
	Password   string `json:"password" form:"password"`
}

// identifier picks the first non-empty alias the client sent.
func (r loginRequest) identifier() string {
	for _, v := range []string{r.UserName, r.LoginInput, r.Identifier} {
		if v != "" {
			return v
		}
	}
	return ""
}

type sessionView struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	LoggedIn  bool      `json:"logged_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		response.Error[any](c, http.StatusBadRequest, msgInvalidInput, validation.ToDetails(err))
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		UserID:   req.UserID,
		UserName: req.UserName,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, msgRegistered, nil)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		response.Error[any](c, http.StatusBadRequest, msgInvalidInput, validation.ToDetails(err))
		return
	}

	ctx := c.Request.Context()
	previous := h.Cookies.Session(c)

	res, err := h.Svc.Login(ctx, req.identifier(), req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	// the new session replaces whatever the cookie pointed at before
	if previous != "" {
		if err := h.Svc.Logout(ctx, previous); err != nil {
			helpers.LogWarn(h.Logger, "previous session not destroyed", err, h.fields(c))
		}
	}

	h.Cookies.SetSession(c, res.Token, res.Session.ExpiresAt)
	response.Redirect(c, http.StatusOK, res.Greeting, res.Redirect)
}

// Logout always succeeds for the client; store failures are only logged.
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), h.Cookies.Session(c)); err != nil {
		helpers.LogError(h.Logger, "logout error", err, h.fields(c))
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, msgLoggedOut, nil)
}

// Session reports the session resolved by the session middleware.
func (h *AccountHandler) Session(c *gin.Context) {
	v, ok := c.Get(middleware.CtxSessionKey)
	sess, _ := v.(*entity.Session)
	if !ok || sess == nil {
		response.Error[any](c, http.StatusUnauthorized, msgNoSession, "no_session")
		return
	}
	response.Success(c, http.StatusOK, sessionView{
		UserID:    sess.UserID,
		UserName:  sess.UserName,
		LoggedIn:  sess.LoggedIn,
		ExpiresAt: sess.ExpiresAt,
	}, msgSession, nil)
}

// bind reads a JSON or form body. An empty body binds to zero values so the
// service reports the missing fields.
func bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *AccountHandler) fail(c *gin.Context, err error) {
	var appErr *application.Error
	if !errors.As(err, &appErr) {
		appErr = &application.Error{Kind: application.KindInternal, Code: "internal", Message: application.MsgServerError, Err: err}
	}
	if appErr.Kind == application.KindInternal {
		helpers.LogError(h.Logger, "request failed", err, h.fields(c))
	}
	response.Error[any](c, StatusFor(appErr.Kind), appErr.Message, appErr.Code)
}

func (h *AccountHandler) fields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString("request_id"),
		"ip":         c.GetString("real_ip"),
		"path":       c.FullPath(),
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(k application.Kind) int {
	switch k {
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindConflict:
		return http.StatusConflict
	case application.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
