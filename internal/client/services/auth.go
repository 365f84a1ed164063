// Package services contains the API facades of the ScholarHub client.
// This file defines the authentication service: login, register, session
// re-validation and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/client/session"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
)

const (
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
	msgSessionExpired     = "Session expired"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login/Register: on success store the returned token and user, on
//     failure return *apiclient.Error and leave the session untouched.
//   - GetMe: fetch the current profile; any rejection expires the session.
//   - Logout: clear the session and navigate home. Never fails.
//
// All network methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	GetMe(ctx context.Context) (*models.Profile, error)
	Logout(ctx context.Context)
	IsAuthenticated() bool
	IsAdmin() bool
	CurrentUser() (*models.Profile, bool)
}

type authService struct {
	api    *apiclient.Client
	store  *session.Store
	nav    Navigator
	logger logging.Logger

	// expireOnNetworkError makes GetMe treat transport failures like a
	// rejected token.
	expireOnNetworkError bool
}

// NewAuthService constructs an AuthService over the given transport and
// session store.
func NewAuthService(api *apiclient.Client, store *session.Store, nav Navigator, logger logging.Logger, expireOnNetworkError bool) AuthService {
	return &authService{
		api:                  api,
		store:                store,
		nav:                  nav,
		logger:               logger,
		expireOnNetworkError: expireOnNetworkError,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return a.authenticate(ctx, "auth.login", a.api.Endpoints().AuthLogin(),
		loginRequest{Email: email, Password: password}, msgLoginFailed)
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	return a.authenticate(ctx, "auth.register", a.api.Endpoints().AuthRegister(),
		registerRequest{Name: name, Email: email, Password: password}, msgRegistrationFailed)
}

func (a *authService) authenticate(ctx context.Context, op, url string, body any, fallback string) (*models.AuthResponse, error) {
	req, err := apiclient.NewJSONRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	resp, err := a.api.Do(ctx, op, req)
	if err != nil {
		return nil, err
	}
	defer apiclient.Close(resp)

	if !apiclient.IsSuccess(resp) {
		apiErr := apiclient.ResponseError(op, resp, fallback)
		a.logger.Info(ctx, "authentication rejected", "op", op, "status", resp.StatusCode)
		return nil, apiErr
	}

	var out models.AuthResponse
	if err := apiclient.DecodeJSON(resp, &out); err != nil {
		return nil, &apiclient.Error{Op: op, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}

	user := out.User
	if err := a.store.SetAuth(ctx, out.Token, &user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.logger.Info(ctx, "signed in", "op", op, "user_id", out.User.ID, "role", out.User.Role)
	return &out, nil
}

// GetMe re-validates the stored session. A non-2xx answer, an unreadable
// body or, unless disabled, a transport failure expires the session
// before the error is returned.
func (a *authService) GetMe(ctx context.Context) (*models.Profile, error) {
	const op = "auth.me"

	req, err := apiclient.NewJSONRequest(ctx, http.MethodGet, a.api.Endpoints().AuthMe(), nil)
	if err != nil {
		return nil, err
	}
	apiclient.SetHeaders(req, a.store.AuthHeaders())

	resp, err := a.api.Do(ctx, op, req)
	if err != nil {
		if !a.expireOnNetworkError {
			return nil, err
		}
		return nil, a.expire(ctx, op, 0, err)
	}
	defer apiclient.Close(resp)

	if !apiclient.IsSuccess(resp) {
		return nil, a.expire(ctx, op, resp.StatusCode, nil)
	}

	var p models.Profile
	if err := apiclient.DecodeJSON(resp, &p); err != nil {
		return nil, a.expire(ctx, op, resp.StatusCode, err)
	}
	return &p, nil
}

func (a *authService) expire(ctx context.Context, op string, status int, cause error) error {
	if err := a.store.Expire(ctx); err != nil {
		a.logger.Error(ctx, "cannot clear expired session", "error", err)
	}
	a.logger.Info(ctx, "session expired", "op", op, "status", status)

	return &apiclient.Error{
		Op:         op,
		StatusCode: status,
		Message:    msgSessionExpired,
		Err:        errors.Join(apiclient.ErrSessionExpired, cause),
	}
}

func (a *authService) Logout(ctx context.Context) {
	if err := a.store.ClearAuth(ctx); err != nil {
		a.logger.Error(ctx, "cannot clear session on logout", "error", err)
	}
	a.nav.Navigate(endpoints.RouteHome)
}

func (a *authService) IsAuthenticated() bool { return a.store.IsAuthenticated() }

func (a *authService) IsAdmin() bool { return a.store.IsAdmin() }

func (a *authService) CurrentUser() (*models.Profile, bool) { return a.store.User() }
