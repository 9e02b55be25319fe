package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/session"
	"github.com/amparo-app/amparo-cli/internal/common"

	_ "modernc.org/sqlite"
)

func setupSessionStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	return session.NewStore(db, clock.New(), testLogger())
}

func TestLogin_PersistsSessionAndInstallsToken(t *testing.T) {
	client := &fakeClient{}
	store := setupSessionStore(t)
	svc := NewAuthService(client, store)
	ctx := context.Background()

	client.loginFn = func(ctx context.Context, username, pin string) (*api.LoginResult, error) {
		return &api.LoginResult{Username: username, Age: 72, City: "Valencia", AccessToken: "tok-123"}, nil
	}

	require.NoError(t, svc.Login(ctx, "maria", "1234"))

	cur, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "maria", cur.Username)
	assert.Equal(t, 72, cur.Age)
	assert.Equal(t, "Valencia", cur.City)
	assert.Equal(t, "tok-123", client.token)
}

func TestLogin_Validation(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupSessionStore(t))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Login(ctx, "", "1234"), common.ErrorValidation)
	assert.ErrorIs(t, svc.Login(ctx, "maria", ""), common.ErrorValidation)
}

func TestLogin_ServerErrorLeavesStoreLoggedOut(t *testing.T) {
	client := &fakeClient{}
	store := setupSessionStore(t)
	svc := NewAuthService(client, store)
	ctx := context.Background()

	client.loginFn = func(ctx context.Context, username, pin string) (*api.LoginResult, error) {
		return nil, common.ErrorUnauthorized
	}

	err := svc.Login(ctx, "maria", "9999")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, client.token)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupSessionStore(t))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "", "1234", 72, "Valencia"), common.ErrorValidation)
	assert.ErrorIs(t, svc.Register(ctx, "maria", "1234", 0, "Valencia"), common.ErrorValidation)
	assert.ErrorIs(t, svc.Register(ctx, "maria", "1234", 72, "  "), common.ErrorValidation)
	assert.NoError(t, svc.Register(ctx, "maria", "1234", 72, "Valencia"))
}

func TestUpdateProfile_RequiresLogin(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupSessionStore(t))

	err := svc.UpdateProfile(context.Background(), 73, "Sevilla")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestUpdateProfile_PushesToServerAndMirrorsLocally(t *testing.T) {
	client := &fakeClient{}
	store := setupSessionStore(t)
	svc := NewAuthService(client, store)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, session.Session{Username: "maria", Age: 72, City: "Valencia", Token: "tok"}))

	var pushedAge int
	var pushedCity string
	client.updateProfileFn = func(ctx context.Context, username string, age int, city string) error {
		pushedAge, pushedCity = age, city
		return nil
	}

	require.NoError(t, svc.UpdateProfile(ctx, 73, "Sevilla"))

	assert.Equal(t, 73, pushedAge)
	assert.Equal(t, "Sevilla", pushedCity)
	cur, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, 73, cur.Age)
	assert.Equal(t, "Sevilla", cur.City)
}

func TestUpdateProfile_ServerErrorLeavesSessionUntouched(t *testing.T) {
	client := &fakeClient{}
	store := setupSessionStore(t)
	svc := NewAuthService(client, store)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, session.Session{Username: "maria", Age: 72, City: "Valencia", Token: "tok"}))
	client.updateProfileFn = func(ctx context.Context, username string, age int, city string) error {
		return errors.New("boom")
	}

	require.Error(t, svc.UpdateProfile(ctx, 73, "Sevilla"))

	cur, _ := store.Current()
	assert.Equal(t, 72, cur.Age)
	assert.Equal(t, "Valencia", cur.City)
}

func TestLogout_ClearsSessionAndToken(t *testing.T) {
	client := &fakeClient{}
	store := setupSessionStore(t)
	svc := NewAuthService(client, store)
	ctx := context.Background()

	client.loginFn = func(ctx context.Context, username, pin string) (*api.LoginResult, error) {
		return &api.LoginResult{Username: username, AccessToken: "tok"}, nil
	}
	require.NoError(t, svc.Login(ctx, "maria", "1234"))

	require.NoError(t, svc.Logout(ctx))

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, client.token)
}

func TestHandleUnauthorized_ClearsSessionExactlyOnce(t *testing.T) {
	client := &fakeClient{}
	store := setupSessionStore(t)
	svc := NewAuthService(client, store)
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, session.Session{Username: "maria", Age: 72, City: "Valencia", Token: "tok"}))
	client.SetToken("tok")

	cleared, err := svc.HandleUnauthorized(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)
	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, client.token)

	// Subsequent rejections while already logged out are no-ops.
	cleared, err = svc.HandleUnauthorized(ctx)
	require.NoError(t, err)
	assert.False(t, cleared)
}
