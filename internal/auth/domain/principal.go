package domain

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/davicafu/academylab/internal/user/domain"
)

// Principal es la identidad autenticada de una petición. No se persiste.
type Principal struct {
	ID   uuid.UUID       `json:"id"`
	Role userDomain.Role `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
