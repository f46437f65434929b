package users

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sentinel/internal/rbac"
	"github.com/noah-isme/sentinel/internal/shared"
)

// staticTokens maps bearer token strings straight to identity claims, standing
// in for the signed-token manager.
type staticTokens struct {
	claims map[string]shared.Identity
}

func (s staticTokens) Validate(token string) (uuid.UUID, string, error) {
	ident, ok := s.claims[token]
	if !ok {
		return uuid.Nil, "", shared.ErrUnauthorized
	}
	return ident.ID, ident.Role, nil
}

type userHandlerFixture struct {
	router http.Handler
	repo   *memoryUserRepo
	admin  User
	viewer User
}

func newUserHandlerFixture(t *testing.T) userHandlerFixture {
	t.Helper()
	svc, repo, _ := newUserService(t)

	admin := User{ID: uuid.New(), Name: "Admin", Email: "admin@example.com", Role: "admin", Status: StatusActive}
	viewer := User{ID: uuid.New(), Name: "Viewer", Email: "viewer@example.com", Role: "viewer", Status: StatusActive}
	repo.users[admin.ID] = admin
	repo.users[viewer.ID] = viewer

	mw := rbac.Middleware{
		Tokens: staticTokens{claims: map[string]shared.Identity{
			"admin-token":  {ID: admin.ID, Role: admin.Role},
			"viewer-token": {ID: viewer.ID, Role: viewer.Role},
		}},
		Users: svc,
	}
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, mw)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Route("/users", handler.MountRoutes)
	})
	return userHandlerFixture{router: router, repo: repo, admin: admin, viewer: viewer}
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestCreateUserResponseOmitsHash(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodPost, "/users", "admin-token",
		`{"name":"Carol","email":"carol@example.com","password":"password123","role":"viewer","status":"Active"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	assert.NotContains(t, res.Body.String(), "password")
	assert.NotContains(t, res.Body.String(), "hash")

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "User created", body.Message)

	id, err := uuid.Parse(body.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, fx.repo.users[id].PasswordHash)
}

func TestGetUserResponseOmitsHash(t *testing.T) {
	fx := newUserHandlerFixture(t)
	hashed := fx.repo.users[fx.viewer.ID]
	hashed.PasswordHash = "$2a$10$somethingsecret"
	fx.repo.users[fx.viewer.ID] = hashed

	res := doRequest(t, fx.router, http.MethodGet, "/users/"+fx.viewer.ID.String(), "admin-token", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotContains(t, res.Body.String(), "somethingsecret")
}

func TestListUsersPaged(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodGet, "/users?page=1&limit=1", "admin-token", "")
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Data []json.RawMessage `json:"data"`
		Meta shared.PageMeta   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 2, body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func TestUserMalformedIDIsNotFound(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodGet, "/users/not-a-uuid", "admin-token", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestUserMissingIsNotFound(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodGet, "/users/"+uuid.NewString(), "admin-token", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestCreateUserValidation(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodPost, "/users", "admin-token",
		`{"name":"Carol","email":"not-an-email","password":"short","role":"viewer","status":"Active"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)

	var body struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	fields := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}

func TestUserRoutesGateByRole(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodGet, "/users", "viewer-token", "")
	assert.Equal(t, http.StatusOK, res.Code)

	res = doRequest(t, fx.router, http.MethodPost, "/users", "viewer-token",
		`{"name":"X","email":"x@example.com","password":"password123","role":"viewer","status":"Active"}`)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = doRequest(t, fx.router, http.MethodDelete, "/users/"+fx.viewer.ID.String(), "viewer-token", "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = doRequest(t, fx.router, http.MethodDelete, "/users/"+fx.viewer.ID.String(), "admin-token", "")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestUserRoutesRequireAuthentication(t *testing.T) {
	fx := newUserHandlerFixture(t)

	res := doRequest(t, fx.router, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
