package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/session"
	"github.com/amparo-app/amparo-cli/internal/common"
)

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login: authenticate against the server, persist the session durably,
//     and install the bearer token on the API client.
//   - Register: create a new account; does not log in.
//   - UpdateProfile: push profile edits and mirror them into the session.
//   - Logout: clear the persisted session and remove the credential.
//   - HandleUnauthorized: the single reaction point for HTTP 401 on any
//     authenticated call. Clears the session exactly once; concurrent or
//     repeated invocations after the first are no-ops.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, username, pin string) error
	Register(ctx context.Context, username, pin string, age int, city string) error
	UpdateProfile(ctx context.Context, age int, city string) error
	Logout(ctx context.Context) error
	HandleUnauthorized(ctx context.Context) (bool, error)
	Close(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  *session.Store
}

func NewAuthService(client api.Client, store *session.Store) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) Login(ctx context.Context, username, pin string) error {
	username = strings.TrimSpace(username)
	if username == "" || pin == "" {
		return fmt.Errorf("%w: username and PIN are required", common.ErrorValidation)
	}

	res, err := a.client.Login(ctx, username, pin)
	if err != nil {
		return err
	}

	// Persist first; only a durably stored session gets a live credential.
	err = a.store.Login(ctx, session.Session{
		Username: res.Username,
		Age:      res.Age,
		City:     res.City,
		Token:    res.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	a.client.SetToken(res.AccessToken)
	return nil
}

func (a *authService) Register(ctx context.Context, username, pin string, age int, city string) error {
	username = strings.TrimSpace(username)
	if username == "" || pin == "" {
		return fmt.Errorf("%w: username and PIN are required", common.ErrorValidation)
	}
	if age <= 0 {
		return fmt.Errorf("%w: age must be a positive number", common.ErrorValidation)
	}
	if strings.TrimSpace(city) == "" {
		return fmt.Errorf("%w: city is required", common.ErrorValidation)
	}

	return a.client.Register(ctx, username, pin, age, city)
}

func (a *authService) UpdateProfile(ctx context.Context, age int, city string) error {
	cur, ok := a.store.Current()
	if !ok {
		return session.ErrNotLoggedIn
	}
	if age <= 0 {
		return fmt.Errorf("%w: age must be a positive number", common.ErrorValidation)
	}
	if strings.TrimSpace(city) == "" {
		return fmt.Errorf("%w: city is required", common.ErrorValidation)
	}

	if err := a.client.UpdateProfile(ctx, cur.Username, age, city); err != nil {
		return err
	}

	return a.store.Update(ctx, age, city)
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.client.SetToken("")
	return nil
}

func (a *authService) HandleUnauthorized(ctx context.Context) (bool, error) {
	if _, ok := a.store.Current(); !ok {
		return false, nil
	}
	if err := a.store.Logout(ctx); err != nil {
		return false, err
	}
	a.client.SetToken("")
	return true, nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
