package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/davicafu/academylab/internal/auth/domain"
	"github.com/davicafu/academylab/internal/config"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

const (
	MsgInvalidAccessToken  = "Invalid or expired token"
	MsgInvalidRefreshToken = "Invalid refresh token"
)

type claims struct {
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager firma tokens HS256 con secretos distintos para acceso y refresco.
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

var _ domain.TokenManager = (*JWTManager)(nil)

func NewJWTManager(cfg config.JWT) *JWTManager {
	return &JWTManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (m *JWTManager) IssueAccess(id uuid.UUID, role userDomain.Role) (string, error) {
	return m.sign(id, string(role), m.accessTTL, m.accessSecret)
}

func (m *JWTManager) IssueRefresh(id uuid.UUID) (string, error) {
	return m.sign(id, "", m.refreshTTL, m.refreshSecret)
}

func (m *JWTManager) VerifyAccess(token string) (domain.Claims, error) {
	return m.verify(token, m.accessSecret, MsgInvalidAccessToken)
}

func (m *JWTManager) VerifyRefresh(token string) (domain.Claims, error) {
	return m.verify(token, m.refreshSecret, MsgInvalidRefreshToken)
}

func (m *JWTManager) sign(id uuid.UUID, role string, ttl time.Duration, secret []byte) (string, error) {
	now := m.now()
	c := claims{
		ID:   id.String(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

func (m *JWTManager) verify(raw string, secret []byte, msg string) (domain.Claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return domain.Claims{}, &sharedDomain.AuthenticationError{Msg: msg}
	}

	id, err := uuid.Parse(c.ID)
	if err != nil {
		id, err = uuid.Parse(c.Subject)
	}
	if err != nil {
		return domain.Claims{}, &sharedDomain.AuthenticationError{Msg: msg}
	}
	return domain.Claims{UserID: id, Role: userDomain.Role(c.Role)}, nil
}
