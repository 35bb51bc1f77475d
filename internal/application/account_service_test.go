package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
	repo "github.com/oksasatya/netmovie-accounts/internal/domain/repository"
	"github.com/oksasatya/netmovie-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
)

// --- fakes ---

type fakeUsersRepo struct {
	mu        sync.Mutex
	users     []entity.User
	findErr   error
	createErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.UserID == u.UserID {
			return repo.ErrUserIDTaken
		}
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now()
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUsersRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.UserID == identifier {
			out := u
			return &out, nil
		}
	}
	for _, u := range f.users {
		if u.UserName == identifier {
			out := u
			return &out, nil
		}
	}
	return nil, repo.ErrNotFound
}

type failingSessions struct {
	*memory.SessionStore
	saveErr   error
	deleteErr error
}

func (f *failingSessions) Save(ctx context.Context, s *entity.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.SessionStore.Save(ctx, s)
}

func (f *failingSessions) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.SessionStore.Delete(ctx, id)
}

// --- helpers ---

const redirectURL = "https://movie-eight-mauve.vercel.app/"

func newTestService(users repo.UserRepository, sessions repo.SessionStore) *Service {
	if users == nil {
		users = &fakeUsersRepo{}
	}
	if sessions == nil {
		sessions = memory.NewSessionStore()
	}
	return NewService(users, sessions, helpers.NewJWTManager("test-secret"), nil, 24*time.Hour, helpers.PasswordCost, redirectURL)
}

func validInput() RegisterInput {
	return RegisterInput{
		UserID:   "netm01",
		UserName: "Omkar",
		Password: "Secret123",
		Email:    "omkar@example.com",
		Phone:    "9876543210",
	}
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var appErr *Error
	require.True(t, errors.As(err, &appErr), "expected *Error, got %T", err)
	require.Equal(t, kind, appErr.Kind)
	return appErr
}

// --- tests ---

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	users := &fakeUsersRepo{}
	svc := newTestService(users, nil)

	u, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "netm01", u.UserID)

	require.Len(t, users.users, 1)
	stored := users.users[0].Password
	assert.NotEqual(t, "Secret123", stored)
	assert.True(t, helpers.CompareHashAndPassword(stored, "Secret123"))

	for _, identifier := range []string{"netm01", "Omkar", "  netm01  "} {
		res, err := svc.Login(ctx, identifier, "Secret123")
		require.NoError(t, err, identifier)
		assert.Equal(t, "Welcome back, Omkar!", res.Greeting)
		assert.Equal(t, redirectURL, res.Redirect)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "netm01", res.Session.UserID)
		assert.Equal(t, "Omkar", res.Session.UserName)
		assert.True(t, res.Session.LoggedIn)
		assert.Equal(t, 24*time.Hour, res.Session.ExpiresAt.Sub(res.Session.CreatedAt))
	}
}

func TestRegister_ValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		edit func(*RegisterInput)
		want *Error
	}{
		{"missing user_id", func(in *RegisterInput) { in.UserID = "" }, ErrMissingFields},
		{"missing user_name", func(in *RegisterInput) { in.UserName = "" }, ErrMissingFields},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, ErrMissingFields},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, ErrMissingFields},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }, ErrMissingFields},
		{"missing beats bad email", func(in *RegisterInput) { in.Phone = ""; in.Email = "x" }, ErrMissingFields},
		{"not an email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"no tld", func(in *RegisterInput) { in.Email = "a@b" }, ErrInvalidEmail},
		{"trailing space", func(in *RegisterInput) { in.Email = "a@b.c " }, ErrInvalidEmail},
		{"bad email beats bad phone", func(in *RegisterInput) { in.Email = "a@b"; in.Phone = "1" }, ErrInvalidEmail},
		{"short phone", func(in *RegisterInput) { in.Phone = "12345" }, ErrInvalidPhone},
		{"long phone", func(in *RegisterInput) { in.Phone = "12345678901" }, ErrInvalidPhone},
		{"letters in phone", func(in *RegisterInput) { in.Phone = "12345abcde" }, ErrInvalidPhone},
		{"user_id too long", func(in *RegisterInput) { in.UserID = strings.Repeat("x", 51) }, ErrFieldTooLong},
		{"user_name too long", func(in *RegisterInput) { in.UserName = strings.Repeat("x", 101) }, ErrFieldTooLong},
		{"vertical tab in email", func(in *RegisterInput) { in.Email = "a\v@b.com" }, ErrInvalidEmail},
		{"nbsp in email", func(in *RegisterInput) { in.Email = "a@b.com\u00a0" }, ErrInvalidEmail},
		{"line separator in email", func(in *RegisterInput) { in.Email = "a@b.c\u2028" }, ErrInvalidEmail},
		{"ideographic space in email", func(in *RegisterInput) { in.Email = "a\u3000b@example.com" }, ErrInvalidEmail},
		{"password over 72 bytes", func(in *RegisterInput) { in.Password = strings.Repeat("p", 73) }, ErrPasswordTooLong},
		{"multibyte password over 72 bytes", func(in *RegisterInput) { in.Password = strings.Repeat("é", 37) }, ErrPasswordTooLong},
		{"field length beats password length", func(in *RegisterInput) {
			in.UserID = strings.Repeat("x", 51)
			in.Password = strings.Repeat("p", 73)
		}, ErrFieldTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsersRepo{}
			svc := newTestService(users, nil)
			in := validInput()
			tt.edit(&in)

			_, err := svc.Register(context.Background(), in)
			appErr := requireKind(t, err, KindValidation)
			assert.Equal(t, tt.want.Code, appErr.Code)
			assert.Equal(t, tt.want.Message, appErr.Message)
			assert.Empty(t, users.users)
		})
	}
}

func TestRegister_PasswordAtLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, nil)
	in := validInput()
	in.Password = strings.Repeat("p", 72)

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "netm01", in.Password)
	assert.NoError(t, err)
}

func TestRegister_Duplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, nil)

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	sameID := validInput()
	sameID.Email = "other@example.com"
	_, err = svc.Register(ctx, sameID)
	appErr := requireKind(t, err, KindConflict)
	assert.Equal(t, MsgUserIDExists, appErr.Message)

	sameEmail := validInput()
	sameEmail.UserID = "netm02"
	_, err = svc.Register(ctx, sameEmail)
	appErr = requireKind(t, err, KindConflict)
	assert.Equal(t, MsgEmailExists, appErr.Message)
}

func TestRegister_StorageFailure(t *testing.T) {
	svc := newTestService(&fakeUsersRepo{createErr: errors.New("db down")}, nil)

	_, err := svc.Register(context.Background(), validInput())
	appErr := requireKind(t, err, KindInternal)
	assert.Equal(t, MsgServerError, appErr.Message)
	assert.ErrorContains(t, err, "db down")
}

func TestLogin_NoEnumeration(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, nil)
	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "netm01", "wrong")
	_, unknownUser := svc.Login(ctx, "ghost", "Secret123")

	a := requireKind(t, wrongPassword, KindAuth)
	b := requireKind(t, unknownUser, KindAuth)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, MsgInvalidCredentials, a.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestService(nil, nil)
	for _, tc := range []struct{ id, pw string }{{"", "x"}, {"   ", "x"}, {"netm01", ""}} {
		_, err := svc.Login(context.Background(), tc.id, tc.pw)
		appErr := requireKind(t, err, KindValidation)
		assert.Equal(t, MsgLoginMissingFields, appErr.Message)
	}
}

func TestLogin_LookupFailure(t *testing.T) {
	svc := newTestService(&fakeUsersRepo{findErr: errors.New("connection refused")}, nil)

	_, err := svc.Login(context.Background(), "netm01", "Secret123")
	appErr := requireKind(t, err, KindInternal)
	assert.Equal(t, MsgServerError, appErr.Message)
}

func TestLogin_SessionSaveFailure(t *testing.T) {
	ctx := context.Background()
	sessions := &failingSessions{SessionStore: memory.NewSessionStore(), saveErr: errors.New("store down")}
	svc := newTestService(nil, sessions)
	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "netm01", "Secret123")
	requireKind(t, err, KindInternal)
}

func TestCurrentSessionAndLogout(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionStore()
	svc := newTestService(nil, sessions)
	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	res, err := svc.Login(ctx, "Omkar", "Secret123")
	require.NoError(t, err)

	sess, err := svc.CurrentSession(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, sess.ID)

	require.NoError(t, svc.Logout(ctx, res.Token))
	_, err = svc.CurrentSession(ctx, res.Token)
	assert.ErrorIs(t, err, repo.ErrSessionNotFound)
	assert.Equal(t, 0, sessions.Len())

	// logging out again, without a token or with junk is still fine
	assert.NoError(t, svc.Logout(ctx, res.Token))
	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "junk"))
}

func TestCurrentSession_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, nil)

	_, err := svc.CurrentSession(ctx, "")
	assert.ErrorIs(t, err, repo.ErrSessionNotFound)

	_, err = svc.CurrentSession(ctx, "junk")
	assert.ErrorIs(t, err, repo.ErrSessionNotFound)

	// validly signed but unknown to the store
	tok, err := svc.JWT.GenerateSessionToken("nope", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.CurrentSession(ctx, tok)
	assert.ErrorIs(t, err, repo.ErrSessionNotFound)
}

func TestLogout_StoreFailure(t *testing.T) {
	ctx := context.Background()
	sessions := &failingSessions{SessionStore: memory.NewSessionStore(), deleteErr: errors.New("store down")}
	svc := newTestService(nil, sessions)

	tok, err := svc.JWT.GenerateSessionToken("sid", time.Now().Add(time.Hour))
	require.NoError(t, err)
	requireKind(t, svc.Logout(ctx, tok), KindInternal)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(ErrEmailExists))
	assert.Equal(t, KindInternal, KindOf(errors.New("x")))
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "validation: missing_fields", ErrMissingFields.Error())
}
