package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	"github.com/davicafu/academylab/internal/auth/infra/outbound/token"
	"github.com/davicafu/academylab/internal/config"
	"github.com/davicafu/academylab/internal/mocks"
	"github.com/davicafu/academylab/internal/user/application"
	"github.com/davicafu/academylab/internal/user/domain"
)

type env struct {
	router   *gin.Engine
	repo     *mocks.InMemoryUserRepo
	uploader *mocks.RecordingUploader
	tokens   *token.JWTManager
}

func setup(t *testing.T) env {
	t.Helper()
	repo := mocks.NewInMemoryUserRepo()
	uploader := &mocks.RecordingUploader{}
	tokens := token.NewJWTManager(config.JWT{AccessSecret: "a", RefreshSecret: "r", AccessTTL: time.Hour, RefreshTTL: time.Hour})

	r := mocks.NewTestEngine()
	handler := NewUserHandler(application.NewUserService(repo, uploader, zap.NewNop()), 5<<20)
	RegisterUserRoutes(r.Group("/api/v1"), handler, authHttp.NewGate(tokens, repo))
	return env{router: r, repo: repo, uploader: uploader, tokens: tokens}
}

func (e env) user(t *testing.T, role domain.Role, name string) (*domain.User, string) {
	t.Helper()
	u := e.repo.Seed(&domain.User{
		ID:        uuid.New(),
		FirstName: name,
		LastName:  "Test",
		Email:     strings.ToLower(name) + "@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	tok, err := e.tokens.IssueAccess(u.ID, role)
	require.NoError(t, err)
	return u, tok
}

func TestGetMe(t *testing.T) {
	e := setup(t)
	me, tok := e.user(t, domain.RoleStudent, "Ada")

	w, body := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users/me", nil, tok))
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.User
	mocks.DataInto(t, body, &got)
	assert.Equal(t, me.ID, got.ID)
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestListAndGet_AdminOnly(t *testing.T) {
	e := setup(t)
	student, studentTok := e.user(t, domain.RoleStudent, "Ada")
	_, adminTok := e.user(t, domain.RoleAdmin, "Root")

	w, _ := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users", nil, studentTok))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users?page=1&limit=1", nil, adminTok))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPage)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users/"+student.ID.String(), nil, adminTok))
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.User
	mocks.DataInto(t, body, &got)
	assert.Equal(t, student.Email, got.Email)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users/not-a-uuid", nil, adminTok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidUserID, body.Message)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil, adminTok))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.MsgUserNotFound, body.Message)
}

func TestUpdateUser_JSON(t *testing.T) {
	e := setup(t)
	me, tok := e.user(t, domain.RoleStudent, "Ada")
	other, _ := e.user(t, domain.RoleStudent, "Bob")

	path := "/api/v1/users/" + me.ID.String()

	w, body := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, path, gin.H{"firstName": "Augusta"}, tok))
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.User
	mocks.DataInto(t, body, &got)
	assert.Equal(t, "Augusta", got.FirstName)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, path, gin.H{"role": "ADMIN"}, tok))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, "/api/v1/users/"+other.ID.String(), gin.H{"firstName": "X"}, tok))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, path, nil, tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one field must be updated", body.Message)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, path, gin.H{"role": "GOD"}, tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation error", body.Message)
}

func multipartRequest(t *testing.T, path, token string, data interface{}, fileName, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("data", string(raw)))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPatch, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpdateUser_MultipartPhoto(t *testing.T) {
	e := setup(t)
	me, tok := e.user(t, domain.RoleStudent, "Ada")
	path := "/api/v1/users/" + me.ID.String()

	w, body := mocks.Serve(t, e.router, multipartRequest(t, path, tok, gin.H{"phone": "555"}, "me.PNG", "image/png"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got domain.User
	mocks.DataInto(t, body, &got)
	assert.Equal(t, "555", got.Phone)
	require.Len(t, e.uploader.Keys, 1)
	assert.True(t, strings.HasPrefix(e.uploader.Keys[0], "users/"+me.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(e.uploader.Keys[0], ".png"))
	assert.Equal(t, "https://cdn.test/"+e.uploader.Keys[0], got.ProfilePhoto)

	// sólo la foto, sin campo data
	w, _ = mocks.Serve(t, e.router, multipartRequest(t, path, tok, nil, "me.jpg", "image/jpeg"))
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = mocks.Serve(t, e.router, multipartRequest(t, path, tok, nil, "cv.pdf", "application/pdf"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Message, "File must be an image")
}

func TestToggleBlock(t *testing.T) {
	e := setup(t)
	target, targetTok := e.user(t, domain.RoleStudent, "Ada")
	_, adminTok := e.user(t, domain.RoleSuperAdmin, "Root")
	path := "/api/v1/users/toggle-block/" + target.ID.String()

	w, body := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, path, nil, adminTok))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, application.MsgUserBlocked, body.Message)

	// un usuario bloqueado ya no pasa la puerta
	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/users/me", nil, targetTok))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, authHttp.MsgAccountBlocked, body.Message)

	w, body = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, path, nil, adminTok))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, application.MsgUserUnblocked, body.Message)
}
