package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.store.SetAuth(context.Background(), "admintoken", &models.Profile{ID: "1", Role: models.RoleAdmin}))
	return f
}

func TestUsers_EveryRequestCarriesAuthHeader(t *testing.T) {
	f := adminFixture(t)
	f.api.Router.Get("/api/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":1,"name":"A","email":"a@b.c","role":"admin"}]`)
	})
	f.api.Router.Post("/api/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":2,"name":"B","email":"b@b.c","role":"user"}`)
	})
	f.api.Router.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":2,"name":"B","role":"user"}`)
	})
	f.api.Router.Put("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":2,"name":"B2","role":"admin"}`)
	})
	f.api.Router.Delete("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, `{"message":"User deleted successfully"}`)
	})

	svc := f.users()
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	created, err := svc.Create(ctx, models.UserInput{Name: "B", Email: "b@b.c", Password: "secret1", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, models.ID("2"), created.ID)

	got, err := svc.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)

	updated, err := svc.Update(ctx, "2", models.UserInput{Name: "B2", Email: "b@b.c", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())

	msg, err := svc.Delete(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", msg.Message)

	hits := f.api.Hits()
	require.Len(t, hits, 5)
	for _, h := range hits {
		assert.Equal(t, "Bearer admintoken", h.Header.Get("Authorization"), "%s %s", h.Method, h.URL.Path)
	}
}

func TestUsers_CreateSendsJSON(t *testing.T) {
	f := adminFixture(t)
	f.api.Router.Post("/api/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in models.UserInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, models.UserInput{Name: "C", Email: "c@b.c", Password: "secret1", Role: models.RoleUser}, in)
		writeJSON(w, http.StatusCreated, `{"id":3,"role":"user"}`)
	})

	_, err := f.users().Create(context.Background(), models.UserInput{Name: "C", Email: "c@b.c", Password: "secret1", Role: models.RoleUser})
	require.NoError(t, err)
}

func TestUsers_ServerMessageOrFallback(t *testing.T) {
	f := adminFixture(t)
	f.api.Router.Get("/api/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error":"Admin access required"}`)
	})
	f.api.Router.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"User not found"}`)
	})
	f.api.Router.Post("/api/users", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})
	f.api.Router.Put("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{}`)
	})
	f.api.Router.Delete("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error":"Cannot delete your own account"}`)
	})

	svc := f.users()
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.EqualError(t, err, "Admin access required")
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)

	_, err = svc.GetByID(ctx, "9")
	assert.EqualError(t, err, "User not found")
	assert.ErrorIs(t, err, apiclient.ErrNotFound)

	_, err = svc.Create(ctx, models.UserInput{Name: "x"})
	assert.EqualError(t, err, "Failed to create user")

	_, err = svc.Update(ctx, "9", models.UserInput{Name: "x"})
	assert.EqualError(t, err, "Failed to update user")

	_, err = svc.Delete(ctx, "1")
	assert.EqualError(t, err, "Cannot delete your own account")
}

func TestUsers_FallbackForListAndGet(t *testing.T) {
	f := adminFixture(t)
	f.api.Router.Get("/api/users", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "", http.StatusInternalServerError)
	})
	f.api.Router.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "", http.StatusInternalServerError)
	})
	f.api.Router.Delete("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "", http.StatusInternalServerError)
	})

	svc := f.users()
	_, err := svc.List(context.Background())
	assert.EqualError(t, err, "Failed to fetch users")
	_, err = svc.GetByID(context.Background(), "1")
	assert.EqualError(t, err, "Failed to fetch user")
	_, err = svc.Delete(context.Background(), "1")
	assert.EqualError(t, err, "Failed to delete user")
}

func TestUsers_NoSessionSendsNoHeader(t *testing.T) {
	f := newFixture(t)
	f.api.Router.Get("/api/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, `{"error":"Authorization header required"}`)
	})

	_, err := f.users().List(context.Background())
	assert.EqualError(t, err, "Authorization header required")
}
