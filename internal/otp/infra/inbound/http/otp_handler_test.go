package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/davicafu/academylab/internal/mocks"
	"github.com/davicafu/academylab/internal/otp/application"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
)

func setupRouter() (*gin.Engine, *mocks.RecordingMailer) {
	repo := mocks.NewInMemoryUserRepo()
	repo.Seed(&userDomain.User{ID: uuid.New(), FirstName: "Ada", Email: "ada@example.com", Role: userDomain.RoleStudent, IsActive: true})
	mailer := &mocks.RecordingMailer{}

	service := application.NewOTPService(repo, mocks.NewDummyCache(), mailer, 300*time.Second, bcrypt.MinCost, zap.NewNop())
	r := mocks.NewTestEngine()
	RegisterOTPRoutes(r.Group("/api/v1"), NewOTPHandler(service))
	return r, mailer
}

func TestOTPFlow(t *testing.T) {
	r, mailer := setupRouter()

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/send", gin.H{"email": "ada@example.com"}, ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	msg, ok := mailer.Last()
	require.True(t, ok)

	w, body = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/verify",
		gin.H{"email": "ada@example.com", "otp": msg.Data["otp"]}, ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User verified successfully", body.Message)

	w, body = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/verify",
		gin.H{"email": "ada@example.com", "otp": msg.Data["otp"]}, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, application.MsgOTPExpired, body.Message)

	// ya verificado
	w, body = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/send", gin.H{"email": "ada@example.com"}, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, application.MsgAlreadyVerified, body.Message)
}

func TestOTP_BoundaryErrors(t *testing.T) {
	r, _ := setupRouter()

	w, body := mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/send", gin.H{"email": "nope"}, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation error", body.Message)

	w, body = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/send", gin.H{"email": "ghost@example.com"}, ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, userDomain.MsgUserNotFound, body.Message)

	w, _ = mocks.Serve(t, r, mocks.JSONRequest(t, http.MethodPost, "/api/v1/otp/verify", gin.H{"email": "ada@example.com", "otp": "12ab"}, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
