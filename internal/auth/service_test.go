package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/stockledger-backend/internal/users"
	pkgAuth "github.com/angelmondragon/stockledger-backend/pkg/auth"
	"github.com/angelmondragon/stockledger-backend/pkg/auth/session"
	"github.com/angelmondragon/stockledger-backend/pkg/config"
	"github.com/angelmondragon/stockledger-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]session.Grant
	counter  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]session.Grant{}}
}

func (f *fakeSessions) Start(_ context.Context, userID uuid.UUID) (session.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueLocked(userID), nil
}

func (f *fakeSessions) Rotate(_ context.Context, oldAccessID, provided string) (session.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.sessions[oldAccessID]
	delete(f.sessions, oldAccessID)
	if !ok || current.RefreshToken != provided {
		return session.Grant{}, session.ErrInvalidRefreshToken
	}
	return f.issueLocked(current.UserID), nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accessID)
	return nil
}

func (f *fakeSessions) live(accessID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[accessID]
	return ok
}

func (f *fakeSessions) issueLocked(userID uuid.UUID) session.Grant {
	f.counter++
	g := session.Grant{
		AccessID:     uuid.NewString(),
		RefreshToken: "refresh-" + uuid.NewString(),
		UserID:       userID,
	}
	f.sessions[g.AccessID] = g
	return g
}

var testJWT = config.JWTConfig{
	Secret:                 "secret",
	Issuer:                 "stockledger",
	ExpirationMinutes:      15,
	RefreshTokenTTLMinutes: 60,
}

var testPasswords = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type fixture struct {
	svc      Service
	users    *users.Repository
	sessions *fakeSessions
}

func newFixture(t *testing.T, clock func() time.Time) *fixture {
	t.Helper()
	repo := users.NewRepository(dbtest.Open(t))
	sessions := newFakeSessions()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWT,
		PasswordConfig: testPasswords,
		Clock:          clock,
	})
	require.NoError(t, err)
	return &fixture{svc: svc, users: repo, sessions: sessions}
}

func register(t *testing.T, f *fixture) *users.UserDTO {
	t.Helper()
	user, err := f.svc.Register(context.Background(), RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterCreatesUser(t *testing.T) {
	f := newFixture(t, nil)
	user := register(t, f)

	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)

	stored, err := f.users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f)

	_, err := f.svc.Register(context.Background(), RegisterRequest{
		Name:     "Other",
		Email:    "ADA@example.com",
		Password: "another-password",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestLoginIssuesTokens(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	f := newFixture(t, func() time.Time { return now })
	user := register(t, f)

	resp, err := f.svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.True(t, resp.User.LastLoginAt.Equal(now))

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, f.sessions.live(claims.ID))
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f)

	for _, req := range []LoginRequest{
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "correct-horse"},
		{Email: "   ", Password: "correct-horse"},
	} {
		_, err := f.svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
		assert.Equal(t, invalidCredentialsMessage, pkgerrors.As(err).Message())
	}
}

func TestLoginUpgradesOutdatedHash(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	register(t, f)

	before, err := f.users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	stronger := testPasswords
	stronger.ArgonTime = 2
	svc, err := NewService(ServiceParams{
		UserRepo:       f.users,
		SessionManager: f.sessions,
		JWTConfig:      testJWT,
		PasswordConfig: stronger,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	after, err := f.users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
	assert.Contains(t, after.PasswordHash, ",t=2,")
}

func TestRefreshRotatesSession(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	clock := issued
	f := newFixture(t, func() time.Time { return clock })
	register(t, f)

	login, err := f.svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	oldClaims, err := pkgAuth.ParseAccessTokenAllowExpired(testJWT, login.AccessToken)
	require.NoError(t, err)

	// The access token has expired by now; refresh must still accept it.
	clock = time.Now()
	pair, err := f.svc.Refresh(context.Background(), login.AccessToken, login.RefreshToken)
	require.NoError(t, err)

	newClaims, err := pkgAuth.ParseAccessToken(testJWT, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, oldClaims.UserID, newClaims.UserID)
	assert.NotEqual(t, oldClaims.ID, newClaims.ID)
	assert.False(t, f.sessions.live(oldClaims.ID))
	assert.True(t, f.sessions.live(newClaims.ID))

	_, err = f.svc.Refresh(context.Background(), login.AccessToken, login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Refresh(context.Background(), "not-a-jwt", "whatever")
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = f.svc.Refresh(context.Background(), "", "whatever")
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t, nil)
	register(t, f)

	login, err := f.svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	claims, err := pkgAuth.ParseAccessToken(testJWT, login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), login.AccessToken))
	assert.False(t, f.sessions.live(claims.ID))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{SessionManager: newFakeSessions()})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{UserRepo: users.NewRepository(dbtest.Open(t))})
	assert.Error(t, err)
}
