package http

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/academylab/internal/auth/domain"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

const (
	MsgUnauthorized   = "Unauthorized access"
	MsgUserNotFound   = "User not found"
	MsgAccountBlocked = "Account is blocked"
	MsgForbidden      = "Forbidden access"

	principalKey = "principal"
)

// UserLookup es lo único que el gate necesita del store de usuarios.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// Gate autentica la petición y comprueba el rol contra una lista blanca.
// Hace una consulta al store por petición, sin caché de sesión.
type Gate struct {
	tokens domain.TokenManager
	users  UserLookup
}

func NewGate(tokens domain.TokenManager, users UserLookup) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Require deja pasar a cualquier usuario autenticado si roles está vacío.
func (g *Gate) Require(roles ...userDomain.Role) gin.HandlerFunc {
	allowed := make(map[userDomain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		principal, err := g.authenticate(c)
		if err != nil {
			abort(c, err)
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[principal.Role]; !ok {
				abort(c, sharedDomain.NewAuthorizationError(MsgForbidden))
				return
			}
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(domain.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func (g *Gate) authenticate(c *gin.Context) (domain.Principal, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return domain.Principal{}, sharedDomain.NewAuthenticationError(MsgUnauthorized)
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return domain.Principal{}, sharedDomain.NewAuthenticationError(MsgUnauthorized)
	}

	claims, err := g.tokens.VerifyAccess(raw)
	if err != nil {
		return domain.Principal{}, err
	}

	// el rol sale del store, no del token: un cambio de rol aplica en la siguiente petición
	user, err := g.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if sharedDomain.IsNotFound(err) {
			return domain.Principal{}, sharedDomain.NewAuthenticationError(MsgUserNotFound)
		}
		return domain.Principal{}, err
	}

	if user.IsBlocked {
		return domain.Principal{}, sharedDomain.NewAuthorizationError(MsgAccountBlocked)
	}

	return domain.Principal{ID: user.ID, Role: user.Role}, nil
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// CurrentPrincipal devuelve el principal que dejó el gate.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p, true
		}
	}
	return domain.PrincipalFrom(c.Request.Context())
}
