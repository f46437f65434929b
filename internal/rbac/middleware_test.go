package rbac_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/sentinel/internal/rbac"
	"github.com/noah-isme/sentinel/internal/shared"
)

type stubTokens struct {
	userID uuid.UUID
	role   string
	err    error
}

func (s stubTokens) Validate(token string) (uuid.UUID, string, error) {
	if s.err != nil {
		return uuid.Nil, "", s.err
	}
	return s.userID, s.role, nil
}

type stubUsers struct {
	identities map[uuid.UUID]shared.Identity
}

func (s stubUsers) LoadIdentity(ctx context.Context, id uuid.UUID) (shared.Identity, error) {
	ident, ok := s.identities[id]
	if !ok {
		return shared.Identity{}, fmt.Errorf("stub: %w", shared.ErrNotFound)
	}
	return ident, nil
}

func newGateRouter(mw rbac.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Get("/open", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRoles("admin", "manager"))
			r.Get("/privileged", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})
	return r
}

func TestAuthenticateMissingToken(t *testing.T) {
	router := newGateRouter(rbac.Middleware{Tokens: stubTokens{}, Users: stubUsers{}})

	req := httptest.NewRequest(http.MethodGet, "/privileged", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error field in body")
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	router := newGateRouter(rbac.Middleware{
		Tokens: stubTokens{err: errors.New("signature invalid")},
		Users:  stubUsers{},
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestAuthenticateVanishedUser(t *testing.T) {
	router := newGateRouter(rbac.Middleware{
		Tokens: stubTokens{userID: uuid.New(), role: "admin"},
		Users:  stubUsers{},
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer anything")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", res.Code)
	}
}

func TestRoleGateDeniesWrongRole(t *testing.T) {
	userID := uuid.New()
	router := newGateRouter(rbac.Middleware{
		Tokens: stubTokens{userID: userID, role: "viewer"},
		Users:  stubUsers{identities: map[uuid.UUID]shared.Identity{userID: {ID: userID, Role: "viewer"}}},
	})

	req := httptest.NewRequest(http.MethodGet, "/privileged", nil)
	req.Header.Set("Authorization", "Bearer anything")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body["error"], "forbidden") {
		t.Fatalf("expected forbidden error body, got %q", body["error"])
	}
}

func TestRoleGateAllowsListedRole(t *testing.T) {
	userID := uuid.New()
	router := newGateRouter(rbac.Middleware{
		Tokens: stubTokens{userID: userID, role: "manager"},
		Users:  stubUsers{identities: map[uuid.UUID]shared.Identity{userID: {ID: userID, Role: "manager"}}},
	})

	req := httptest.NewRequest(http.MethodGet, "/privileged", nil)
	req.Header.Set("Authorization", "Bearer anything")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

// The role claim in the token is a snapshot: the gate authorizes against it
// even when the stored role has since changed.
func TestRoleClaimSnapshotWins(t *testing.T) {
	userID := uuid.New()
	router := newGateRouter(rbac.Middleware{
		Tokens: stubTokens{userID: userID, role: "viewer"},
		Users:  stubUsers{identities: map[uuid.UUID]shared.Identity{userID: {ID: userID, Role: "admin"}}},
	})

	req := httptest.NewRequest(http.MethodGet, "/privileged", nil)
	req.Header.Set("Authorization", "Bearer anything")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 under snapshotted viewer role, got %d", res.Code)
	}
}
