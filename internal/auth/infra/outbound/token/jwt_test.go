package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/academylab/internal/config"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

func newManager() *JWTManager {
	return NewJWTManager(config.JWT{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    90 * 24 * time.Hour,
	})
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newManager()
	id := uuid.New()

	tok, err := m.IssueAccess(id, userDomain.RoleInstructor)
	require.NoError(t, err)

	c, err := m.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, userDomain.RoleInstructor, c.Role)
}

func TestAccessToken_Claims(t *testing.T) {
	m := newManager()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	id := uuid.New()

	tok, err := m.IssueAccess(id, userDomain.RoleAdmin)
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, parsed)
	require.NoError(t, err)
	assert.Equal(t, id.String(), parsed["id"])
	assert.Equal(t, id.String(), parsed["sub"])
	assert.Equal(t, "ADMIN", parsed["role"])
	assert.EqualValues(t, fixed.Unix(), parsed["iat"])
	assert.EqualValues(t, fixed.Add(time.Hour).Unix(), parsed["exp"])
}

func TestAccessToken_Expired(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := m.IssueAccess(uuid.New(), userDomain.RoleStudent)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyAccess(tok)

	var authn *sharedDomain.AuthenticationError
	require.ErrorAs(t, err, &authn)
	assert.Equal(t, MsgInvalidAccessToken, authn.Msg)
}

func TestTokens_SecretsAreNotInterchangeable(t *testing.T) {
	m := newManager()
	id := uuid.New()

	refresh, err := m.IssueRefresh(id)
	require.NoError(t, err)
	_, err = m.VerifyAccess(refresh)
	assert.Error(t, err)

	access, err := m.IssueAccess(id, userDomain.RoleStudent)
	require.NoError(t, err)
	_, err = m.VerifyRefresh(access)
	assert.EqualError(t, err, MsgInvalidRefreshToken)

	c, err := m.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Empty(t, c.Role)
}

func TestAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	m := newManager()
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.VerifyAccess(tok)
	assert.Error(t, err)
}

func TestAccessToken_Garbage(t *testing.T) {
	_, err := newManager().VerifyAccess("not.a.token")
	assert.Error(t, err)
}
