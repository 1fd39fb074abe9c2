package domain

import (
	"github.com/google/uuid"

	userDomain "github.com/davicafu/academylab/internal/user/domain"
)

// Claims es lo que viaja dentro de un token verificado.
type Claims struct {
	UserID uuid.UUID
	Role   userDomain.Role // vacío en los refresh tokens
}

// TokenManager emite y verifica tokens de acceso y de refresco.
// Cada tipo usa su propio secreto: uno no verifica como el otro.
type TokenManager interface {
	IssueAccess(id uuid.UUID, role userDomain.Role) (string, error)
	IssueRefresh(id uuid.UUID) (string, error)
	VerifyAccess(token string) (Claims, error)
	VerifyRefresh(token string) (Claims, error)
}
