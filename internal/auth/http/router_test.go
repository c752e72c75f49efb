package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/billpoint/billpoint/internal/auth/service"
	"github.com/billpoint/billpoint/internal/auth/store/drivers/sqlite"
	"github.com/billpoint/billpoint/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, verifier, err := jwtx.NewKeyPair("billpoint-auth")
	require.NoError(t, err)

	router := NewRouter("test", st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router.AccountService = &service.AccountService{Store: st}
	router.TokenService = &service.TokenService{
		Signer:   signer,
		Verifier: verifier,
		Store:    st,
		Issuer:   "billpoint-auth",
	}
	router.ApplyRoutes()
	return router
}

var requestSeq atomic.Int64

// doJSON runs a request through the router. Each call uses a fresh client IP
// so the per-IP rate limiter never interferes with the assertions.
func doJSON(t *testing.T, router *Router, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	seq := requestSeq.Add(1)
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.%d.%d", seq/250, seq%250))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func signupBody() map[string]string {
	return map[string]string{
		"username": "jess",
		"email":    "jess@example.com",
		"password": "correct horse battery",
	}
}

func TestSignupEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("creates account", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/signup", signupBody(), nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "Signup successful", body["message"])
		require.NotEmpty(t, body["token"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "jess", user["username"])
		require.Equal(t, "jess@example.com", user["email"])
		require.NotEmpty(t, user["id"])
		require.NotContains(t, user, "password")
		require.NotContains(t, user, "passwordHash")
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/signup", signupBody(), nil)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "Email already exists", decodeBody(t, rec)["message"])
	})

	t.Run("validation failure returns 400 with reason", func(t *testing.T) {
		body := signupBody()
		body["email"] = "nope"
		rec := doJSON(t, router, http.MethodPost, "/auth/signup", body, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Email is not valid", decodeBody(t, rec)["message"])
	})

	t.Run("non-JSON body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("not json"))
		req.Header.Set("X-Forwarded-For", "10.9.9.1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("valid credentials", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/login",
			map[string]string{"email": "jess@example.com", "password": "correct horse battery"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, "Login successful", body["message"])
		require.NotEmpty(t, body["token"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "jess", user["username"])
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/login",
			map[string]string{"email": "jess@example.com", "password": "wrong"}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid email or password", decodeBody(t, rec)["message"])
	})

	t.Run("unknown email returns 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/login",
			map[string]string{"email": "nobody@example.com", "password": "whatever?"}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/login",
			map[string]string{"email": "jess@example.com"}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Email and password are required", decodeBody(t, rec)["message"])
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	t.Run("missing token returns 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/logout", nil, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revokes the token", func(t *testing.T) {
		auth := map[string]string{"Authorization": "Bearer " + token}

		rec := doJSON(t, router, http.MethodPost, "/auth/logout", nil, auth)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Logout successful", decodeBody(t, rec)["message"])

		// The revoked token no longer authenticates.
		rec = doJSON(t, router, http.MethodGet, "/auth/me", nil, auth)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		// And cannot be used to log out again.
		rec = doJSON(t, router, http.MethodPost, "/auth/logout", nil, auth)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", signupBody(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	token, _ := decodeBody(t, rec)["token"].(string)

	t.Run("returns the account record", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/auth/me", nil,
			map[string]string{"Authorization": "Bearer " + token})
		require.Equal(t, http.StatusOK, rec.Code)

		user, ok := decodeBody(t, rec)["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "jess@example.com", user["email"])
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/auth/me", nil,
			map[string]string{"Authorization": "Bearer garbage"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("livez", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/livez", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "ok", body["status"])
		require.Equal(t, "test", body["version"])
	})

	t.Run("readyz", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/readyz", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "ok", body["status"])
	})
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	// Hammer the endpoint from a single IP until the bucket runs dry.
	var last int
	for i := 0; i < 15; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"a@b.com","password":"x"}`))
		req.Header.Set("X-Forwarded-For", "10.200.0.1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
