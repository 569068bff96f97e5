package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamerecs/internal/httpx"
	"gamerecs/internal/testutil"
)

const testSecret = "middleware-test-secret"

func protectedEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User", httpx.UserIDFrom(r))
		w.Header().Set("X-Role", httpx.RoleFrom(r))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	srv := httptest.NewServer(httpx.AuthMiddleware(testSecret)(protectedEcho()))
	defer srv.Close()

	t.Run("valid token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		req.Header.Set("Authorization", "Bearer "+testutil.GenerateTestToken(testSecret, testutil.TestUser.ID, testutil.TestUser.Role))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, testutil.TestUser.ID, resp.Header.Get("X-User"))
		assert.Equal(t, "USER", resp.Header.Get("X-Role"))
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		req.Header.Set("Authorization", "Bearer "+testutil.GenerateExpiredToken(testSecret, testutil.TestUser.ID, testutil.TestUser.Role))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		req.Header.Set("Authorization", "Bearer "+testutil.GenerateTestToken("other-secret", "u1", "USER"))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	handler := httpx.AuthMiddleware(testSecret)(httpx.RequireRole("ADMIN")(protectedEcho()))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	t.Run("admin allowed", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		req.Header.Set("Authorization", "Bearer "+testutil.GenerateTestToken(testSecret, testutil.TestAdminUser.ID, testutil.TestAdminUser.Role))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("user forbidden", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		req.Header.Set("Authorization", "Bearer "+testutil.GenerateTestToken(testSecret, testutil.TestUser.ID, testutil.TestUser.Role))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
