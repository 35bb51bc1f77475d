package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
	repo "github.com/oksasatya/netmovie-accounts/internal/domain/repository"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
	"github.com/oksasatya/netmovie-accounts/pkg/validation"
)

// Column widths of the users table.
const (
	maxUserIDLen   = 50
	maxUserNameLen = 100
	maxEmailLen    = 150
	maxPhoneLen    = 20
)

type Service struct {
	Users      repo.UserRepository
	Sessions   repo.SessionStore
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	SessionTTL time.Duration
	HashCost   int
	// RedirectURL is handed to clients after a successful login.
	RedirectURL string

	now func() time.Time
}

func NewService(users repo.UserRepository, sessions repo.SessionStore, jwt *helpers.JWTManager, logger *logrus.Logger, sessionTTL time.Duration, hashCost int, redirectURL string) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Service{
		Users:       users,
		Sessions:    sessions,
		JWT:         jwt,
		Logger:      logger,
		SessionTTL:  sessionTTL,
		HashCost:    hashCost,
		RedirectURL: redirectURL,
		now:         time.Now,
	}
}

type RegisterInput struct {
	UserID   string
	UserName string
	Password string
	Email    string
	Phone    string
}

func (in RegisterInput) validate() *Error {
	if in.UserID == "" || in.UserName == "" || in.Password == "" || in.Email == "" || in.Phone == "" {
		return ErrMissingFields
	}
	if !validation.IsEmail(in.Email) {
		return ErrInvalidEmail
	}
	if !validation.IsPhone(in.Phone) {
		return ErrInvalidPhone
	}
	if !validation.MaxLen(in.UserID, maxUserIDLen) ||
		!validation.MaxLen(in.UserName, maxUserNameLen) ||
		!validation.MaxLen(in.Email, maxEmailLen) ||
		!validation.MaxLen(in.Phone, maxPhoneLen) {
		return ErrFieldTooLong
	}
	// bcrypt refuses longer input
	if len(in.Password) > helpers.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Register validates the input, hashes the password and stores a new user.
// It does not log the user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password, s.HashCost)
	if err != nil {
		helpers.LogError(s.Logger, "password hashing failed", err, logrus.Fields{"user_id": in.UserID})
		return nil, internal(err)
	}

	u := &entity.User{
		UserID:   in.UserID,
		UserName: in.UserName,
		Password: hash,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrUserIDTaken):
			return nil, ErrUserIDExists
		case errors.Is(err, repo.ErrEmailTaken):
			return nil, ErrEmailExists
		}
		helpers.LogError(s.Logger, "registration error", err, logrus.Fields{"user_id": in.UserID})
		return nil, internal(err)
	}

	helpers.LogInfo(s.Logger, "new user registered", logrus.Fields{"user_id": u.UserID, "user_name": u.UserName})
	return u, nil
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	User     *entity.User
	Session  *entity.Session
	Token    string
	Greeting string
	Redirect string
}

// Login checks identifier (a user_id or a user_name) and password and opens
// a new session. Unknown identifiers and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	log := s.Logger.WithField("identifier", identifier)

	if identifier == "" || password == "" {
		log.Debug("login rejected: missing fields")
		return nil, ErrLoginMissingFields
	}

	u, err := s.Users.FindByIdentifier(ctx, identifier)
	if errors.Is(err, repo.ErrNotFound) {
		log.Info("login failed: unknown identifier")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.WithError(err).Error("login error")
		return nil, internal(err)
	}

	if !helpers.CompareHashAndPassword(u.Password, password) {
		log.WithField("user_id", u.UserID).Info("login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	sess, token, err := s.openSession(ctx, u)
	if err != nil {
		log.WithError(err).WithField("user_id", u.UserID).Error("session creation failed")
		return nil, internal(err)
	}

	log.WithField("user_id", u.UserID).Info("login success")
	return &LoginResult{
		User:     u,
		Session:  sess,
		Token:    token,
		Greeting: "Welcome back, " + u.UserName + "!",
		Redirect: s.RedirectURL,
	}, nil
}

func (s *Service) openSession(ctx context.Context, u *entity.User) (*entity.Session, string, error) {
	now := s.now()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    u.UserID,
		UserName:  u.UserName,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.SessionTTL),
	}
	token, err := s.JWT.GenerateSessionToken(sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, "", err
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// CurrentSession resolves a cookie token to its live session.
func (s *Service) CurrentSession(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, repo.ErrSessionNotFound
	}
	sid, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil, repo.ErrSessionNotFound
	}
	sess, err := s.Sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout destroys the session behind token. Missing, invalid or expired
// tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sid); err != nil {
		helpers.LogWarn(s.Logger, "session delete failed", err, logrus.Fields{"sid": sid})
		return internal(err)
	}
	s.Logger.WithField("sid", sid).Debug("session destroyed")
	return nil
}
