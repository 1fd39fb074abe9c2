package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/academylab/internal/auth/domain"
	"github.com/davicafu/academylab/internal/auth/infra/outbound/token"
	"github.com/davicafu/academylab/internal/config"
	"github.com/davicafu/academylab/internal/mocks"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
)

var jwtCfg = config.JWT{AccessSecret: "access", RefreshSecret: "refresh", AccessTTL: time.Hour, RefreshTTL: time.Hour}

func setupGate(t *testing.T) (*gin.Engine, *mocks.InMemoryUserRepo, *token.JWTManager) {
	t.Helper()
	repo := mocks.NewInMemoryUserRepo()
	tokens := token.NewJWTManager(jwtCfg)
	gate := NewGate(tokens, repo)

	r := mocks.NewTestEngine()
	r.GET("/me", gate.Require(), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		require.True(t, ok)
		fromCtx, ok := domain.PrincipalFrom(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, p, fromCtx)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok", "data": p})
	})
	r.GET("/admin", gate.Require(userDomain.RoleAdmin, userDomain.RoleSuperAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "admin"})
	})
	return r, repo, tokens
}

func seed(repo *mocks.InMemoryUserRepo, role userDomain.Role) *userDomain.User {
	return repo.Seed(&userDomain.User{ID: uuid.New(), Email: uuid.NewString() + "@x.io", Role: role, IsActive: true})
}

func TestGate_MissingOrMalformedHeader(t *testing.T) {
	r, _, _ := setupGate(t)

	for _, header := range []string{"", "Token abc", "Bearer "} {
		req := mocks.JSONRequest(t, http.MethodGet, "/me", nil, "")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w, body := mocks.Serve(t, r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Equal(t, MsgUnauthorized, body.Message, header)
	}
}

func TestGate_ExpiredToken(t *testing.T) {
	r, repo, _ := setupGate(t)
	u := seed(repo, userDomain.RoleStudent)

	expired := token.NewJWTManager(config.JWT{AccessSecret: "access", AccessTTL: -time.Minute})
	tok, err := expired.IssueAccess(u.ID, u.Role)
	require.NoError(t, err)

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/me", nil, tok))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, token.MsgInvalidAccessToken, body.Message)
}

func TestGate_WrongSecret(t *testing.T) {
	r, repo, _ := setupGate(t)
	u := seed(repo, userDomain.RoleStudent)

	other := token.NewJWTManager(config.JWT{AccessSecret: "other", AccessTTL: time.Hour})
	tok, _ := other.IssueAccess(u.ID, u.Role)

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/me", nil, tok))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, token.MsgInvalidAccessToken, body.Message)
}

func TestGate_UnknownUser(t *testing.T) {
	r, _, tokens := setupGate(t)
	tok, _ := tokens.IssueAccess(uuid.New(), userDomain.RoleAdmin)

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/me", nil, tok))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MsgUserNotFound, body.Message)
}

func TestGate_BlockedUser(t *testing.T) {
	r, repo, tokens := setupGate(t)
	u := seed(repo, userDomain.RoleStudent)
	u.IsBlocked = true
	repo.Seed(u)
	tok, _ := tokens.IssueAccess(u.ID, u.Role)

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/me", nil, tok))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, MsgAccountBlocked, body.Message)
}

func TestGate_RoleAllowList(t *testing.T) {
	r, repo, tokens := setupGate(t)
	student := seed(repo, userDomain.RoleStudent)
	admin := seed(repo, userDomain.RoleAdmin)

	tok, _ := tokens.IssueAccess(student.ID, student.Role)
	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/admin", nil, tok))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, MsgForbidden, body.Message)

	tok, _ = tokens.IssueAccess(admin.ID, admin.Role)
	w, _ = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/admin", nil, tok))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_RoleComesFromStore(t *testing.T) {
	r, repo, tokens := setupGate(t)
	u := seed(repo, userDomain.RoleStudent)
	// token emitido cuando era admin
	tok, _ := tokens.IssueAccess(u.ID, userDomain.RoleAdmin)

	w, _ := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/admin", nil, tok))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGate_PassAttachesPrincipal(t *testing.T) {
	r, repo, tokens := setupGate(t)
	u := seed(repo, userDomain.RoleInstructor)
	tok, _ := tokens.IssueAccess(u.ID, u.Role)

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/me", nil, tok))
	require.Equal(t, http.StatusOK, w.Code)

	var p domain.Principal
	mocks.DataInto(t, body, &p)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, userDomain.RoleInstructor, p.Role)
}

func TestGate_StoreFailureIsNotUnauthorized(t *testing.T) {
	r, repo, tokens := setupGate(t)
	u := seed(repo, userDomain.RoleStudent)
	tok, _ := tokens.IssueAccess(u.ID, u.Role)
	repo.Err = errors.New("connection refused")

	w, _ := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodGet, "/me", nil, tok))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
