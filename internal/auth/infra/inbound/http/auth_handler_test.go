package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/davicafu/academylab/internal/auth/application"
	"github.com/davicafu/academylab/internal/auth/infra/outbound/token"
	"github.com/davicafu/academylab/internal/mocks"
)

func setupAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := mocks.NewInMemoryUserRepo()
	service := application.NewAuthService(repo, token.NewJWTManager(jwtCfg), bcrypt.MinCost, zap.NewNop())
	handler := NewAuthHandler(service, CookieConfig{Secure: true, AccessTTL: time.Hour, RefreshTTL: 90 * 24 * time.Hour})

	r := mocks.NewTestEngine()
	RegisterAuthRoutes(r.Group("/api/v1"), handler)
	return r
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHTTP_RegisterValidation(t *testing.T) {
	r := setupAuthRouter(t)

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"firstName": "Ada", "email": "not-an-email", "password": "123"}, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation error", body.Message)
	paths := map[string]bool{}
	for _, fe := range body.Errors {
		paths[fe.Path] = true
	}
	assert.True(t, paths["email"])
	assert.True(t, paths["password"])
	assert.True(t, paths["lastName"])
}

func TestAuthHTTP_RegisterLoginRefreshLogout(t *testing.T) {
	r := setupAuthRouter(t)
	creds := map[string]string{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "secret1"}

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/register", creds, ""))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Success)

	w, _ = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/register", creds, ""))
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ada@example.com", "password": "secret1"}, ""))
	require.Equal(t, http.StatusOK, w.Code)

	access := cookieByName(w.Result().Cookies(), AccessCookie)
	refresh := cookieByName(w.Result().Cookies(), RefreshCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)
	assert.Equal(t, 3600, access.MaxAge)
	assert.Equal(t, 90*24*3600, refresh.MaxAge)

	var login application.LoginResult
	mocks.DataInto(t, body, &login)
	assert.Equal(t, access.Value, login.AccessToken)

	// refresh desde la cookie
	req := mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/refresh-token", nil, "")
	req.AddCookie(refresh)
	w, body = mocks.Serve(t, r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, cookieByName(w.Result().Cookies(), AccessCookie))

	// refresh desde el body
	w, _ = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/refresh-token",
		map[string]string{"refreshToken": refresh.Value}, ""))
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/logout", nil, ""))
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookieByName(w.Result().Cookies(), AccessCookie)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
}

func TestAuthHTTP_LoginWrongPassword(t *testing.T) {
	r := setupAuthRouter(t)
	creds := map[string]string{"firstName": "Ada", "lastName": "L", "email": "ada@example.com", "password": "secret1"}
	mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/register", creds, ""))

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ada@example.com", "password": "nope-nope"}, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, application.MsgInvalidCredentials, body.Message)
}

func TestAuthHTTP_RefreshWithoutToken(t *testing.T) {
	r := setupAuthRouter(t)

	w, _ := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/auth/refresh-token", nil, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
