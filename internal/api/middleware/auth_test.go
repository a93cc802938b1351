package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/identityservice"
)

type fakeIdentityClient struct {
	principal *identityservice.Principal
	err       error
	gotToken  string
}

func (f *fakeIdentityClient) GetPrincipal(_ context.Context, token string) (*identityservice.Principal, error) {
	f.gotToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.principal, nil
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(client IdentityClient, adminOnly bool, captured *domain.Principal) *mux.Router {
	r := mux.NewRouter()
	protected := r.PathPrefix("").Subrouter()
	protected.Use(Auth(client, nopLogger{}))
	if adminOnly {
		protected.Use(RequireAdmin(nopLogger{}))
	}
	protected.HandleFunc("/resource", func(w http.ResponseWriter, r *http.Request) {
		if p, ok := GetPrincipal(r.Context()); ok {
			*captured = p
		}
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestAuth(t *testing.T) {
	t.Run("valid token injects principal", func(t *testing.T) {
		client := &fakeIdentityClient{principal: &identityservice.Principal{UserID: 42, Role: domain.RoleUser}}
		var captured domain.Principal
		router := newRouter(client, false, &captured)

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", "Bearer token-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "token-123", client.gotToken)
		assert.Equal(t, int64(42), captured.UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		router := newRouter(&fakeIdentityClient{}, false, &domain.Principal{})

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		client := &fakeIdentityClient{err: identityservice.ErrUnauthenticated}
		router := newRouter(client, false, &domain.Principal{})

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		client := &fakeIdentityClient{principal: &identityservice.Principal{UserID: 1, Role: domain.RoleAdmin}}
		router := newRouter(client, true, &domain.Principal{})

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		client := &fakeIdentityClient{principal: &identityservice.Principal{UserID: 42, Role: domain.RoleUser}}
		router := newRouter(client, true, &domain.Principal{})

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
