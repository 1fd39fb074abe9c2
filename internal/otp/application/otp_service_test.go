package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/davicafu/academylab/internal/mocks"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
)

type fixture struct {
	service *OTPService
	repo    *mocks.InMemoryUserRepo
	cache   *mocks.DummyCache
	mailer  *mocks.RecordingMailer
	user    *userDomain.User
}

func setup() fixture {
	repo := mocks.NewInMemoryUserRepo()
	cache := mocks.NewDummyCache()
	mailer := &mocks.RecordingMailer{}
	user := repo.Seed(&userDomain.User{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      userDomain.RoleStudent,
		IsActive:  true,
	})
	return fixture{
		service: NewOTPService(repo, cache, mailer, 300*time.Second, bcrypt.MinCost, zap.NewNop()),
		repo:    repo,
		cache:   cache,
		mailer:  mailer,
		user:    user,
	}
}

func sentCode(t *testing.T, m *mocks.RecordingMailer) string {
	t.Helper()
	msg, ok := m.Last()
	require.True(t, ok)
	return msg.Data["otp"]
}

func TestSend_StoresHashWithTTLAndMails(t *testing.T) {
	f := setup()

	require.NoError(t, f.service.Send(context.Background(), "ada@example.com"))

	msg, ok := f.mailer.Last()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, sharedMail.TemplateOTP, msg.Template)
	assert.Equal(t, "Ada Lovelace", msg.Data["name"])

	code, err := strconv.Atoi(msg.Data["otp"])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, code, 100000)
	assert.LessOrEqual(t, code, 999999)

	key := CacheKey("ada@example.com")
	assert.Equal(t, "otp:ada@example.com", key)
	assert.Equal(t, 300, f.cache.TTL(key))

	var hash string
	found, err := f.cache.Get(context.Background(), key, &hash)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, msg.Data["otp"], hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(msg.Data["otp"])))
}

func TestSend_Errors(t *testing.T) {
	f := setup()

	err := f.service.Send(context.Background(), "ghost@example.com")
	assert.True(t, sharedDomain.IsNotFound(err))

	f.user.IsVerified = true
	f.repo.Seed(f.user)
	err = f.service.Send(context.Background(), "ada@example.com")
	assert.EqualError(t, err, MsgAlreadyVerified)
	assert.Empty(t, f.mailer.Sent)
}

func TestSend_MailFailurePropagates(t *testing.T) {
	f := setup()
	f.mailer.Err = sharedDomain.NewUpstreamError("mail", errors.New("down"))

	assert.True(t, sharedDomain.IsUpstream(f.service.Send(context.Background(), "ada@example.com")))
}

func TestVerify_WithinTTL(t *testing.T) {
	f := setup()
	require.NoError(t, f.service.Send(context.Background(), "ada@example.com"))
	code := sentCode(t, f.mailer)

	require.NoError(t, f.service.Verify(context.Background(), "ada@example.com", code))

	stored, _ := f.repo.GetByID(context.Background(), f.user.ID)
	assert.True(t, stored.IsVerified)
	assert.False(t, f.cache.Has(CacheKey("ada@example.com")))
	assert.Equal(t, []string{userDomain.UserVerified}, f.repo.EventTypes())

	// el código ya se consumió
	err := f.service.Verify(context.Background(), "ada@example.com", code)
	assert.EqualError(t, err, MsgOTPExpired)
}

func TestVerify_WrongCode(t *testing.T) {
	f := setup()
	require.NoError(t, f.service.Send(context.Background(), "ada@example.com"))
	code := sentCode(t, f.mailer)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	err := f.service.Verify(context.Background(), "ada@example.com", wrong)
	assert.EqualError(t, err, MsgInvalidOTP)
	assert.True(t, f.cache.Has(CacheKey("ada@example.com")))
}

func TestVerify_Expired(t *testing.T) {
	f := setup()
	require.NoError(t, f.service.Send(context.Background(), "ada@example.com"))
	code := sentCode(t, f.mailer)
	f.cache.Expire(CacheKey("ada@example.com"))

	err := f.service.Verify(context.Background(), "ada@example.com", code)
	assert.True(t, sharedDomain.IsValidation(err))
	assert.EqualError(t, err, MsgOTPExpired)
}

func TestSend_OverwritesPreviousCode(t *testing.T) {
	f := setup()
	require.NoError(t, f.service.Send(context.Background(), "ada@example.com"))
	first := sentCode(t, f.mailer)
	require.NoError(t, f.service.Send(context.Background(), "ada@example.com"))
	second := sentCode(t, f.mailer)

	if first != second {
		assert.EqualError(t, f.service.Verify(context.Background(), "ada@example.com", first), MsgInvalidOTP)
	}
	assert.NoError(t, f.service.Verify(context.Background(), "ada@example.com", second))
}
