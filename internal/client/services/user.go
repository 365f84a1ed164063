package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/client/session"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
)

const (
	msgFetchUsers = "Failed to fetch users"
	msgFetchUser  = "Failed to fetch user"
	msgCreateUser = "Failed to create user"
	msgUpdateUser = "Failed to update user"
	msgDeleteUser = "Failed to delete user"
)

// UserService is the admin facade for user accounts. Every request carries
// the session's Authorization header, and failures report the server's
// message when it sends one.
type UserService interface {
	List(ctx context.Context) ([]models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Create(ctx context.Context, in models.UserInput) (*models.Profile, error)
	Update(ctx context.Context, id string, in models.UserInput) (*models.Profile, error)
	Delete(ctx context.Context, id string) (*models.MessageResponse, error)
}

type userService struct {
	api    *apiclient.Client
	store  *session.Store
	logger logging.Logger
}

func NewUserService(api *apiclient.Client, store *session.Store, logger logging.Logger) UserService {
	return &userService{api: api, store: store, logger: logger}
}

func (u *userService) List(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := u.call(ctx, "users.list", http.MethodGet, u.api.Endpoints().Users(), nil, msgFetchUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *userService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var out models.Profile
	if err := u.call(ctx, "users.get", http.MethodGet, u.api.Endpoints().UserByID(id), nil, msgFetchUser, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *userService) Create(ctx context.Context, in models.UserInput) (*models.Profile, error) {
	var out models.Profile
	if err := u.call(ctx, "users.create", http.MethodPost, u.api.Endpoints().Users(), in, msgCreateUser, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *userService) Update(ctx context.Context, id string, in models.UserInput) (*models.Profile, error) {
	var out models.Profile
	if err := u.call(ctx, "users.update", http.MethodPut, u.api.Endpoints().UserByID(id), in, msgUpdateUser, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *userService) Delete(ctx context.Context, id string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := u.call(ctx, "users.delete", http.MethodDelete, u.api.Endpoints().UserByID(id), nil, msgDeleteUser, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *userService) call(ctx context.Context, op, method, url string, body any, fallback string, dst any) error {
	req, err := apiclient.NewJSONRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	apiclient.SetHeaders(req, u.store.AuthHeaders())

	resp, err := u.api.Do(ctx, op, req)
	if err != nil {
		return err
	}
	defer apiclient.Close(resp)

	if !apiclient.IsSuccess(resp) {
		apiErr := apiclient.ResponseError(op, resp, fallback)
		u.logger.Warn(ctx, "user request failed", "op", op, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if err := apiclient.DecodeJSON(resp, dst); err != nil {
		return &apiclient.Error{Op: op, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}
	return nil
}
