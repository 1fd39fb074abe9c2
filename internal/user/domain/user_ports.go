package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

const MsgUserNotFound = "User not found"

// ErrUserNotFound se detecta con sharedDomain.IsNotFound.
var ErrUserNotFound = sharedDomain.NewNotFoundError(MsgUserNotFound)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
// Los usuarios con IsDeleted nunca se devuelven.
type UserRepository interface {
	// Inserta el usuario y su evento outbox en la misma transacción.
	// Un email repetido devuelve ConflictError.
	Create(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error

	// Debe devolver ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Debe devolver ErrUserNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	EmailExists(ctx context.Context, email string) (bool, error)

	// Update persiste todos los campos mutables junto con los eventos dados.
	Update(ctx context.Context, u *User, evts ...sharedDomain.OutboxEvent) error

	// List devuelve la página pedida y el total que cumple los criterios.
	List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*User, int, error)
}

// UserSchema es la lista blanca del listado de usuarios.
var UserSchema = query.Schema{
	Searchable: []string{"firstName", "lastName", "email", "phone"},
	Filterable: map[string]query.Kind{
		"email":      query.String,
		"role":       query.String,
		"isActive":   query.Bool,
		"isVerified": query.Bool,
		"isBlocked":  query.Bool,
		"createdAt":  query.Date,
	},
	Sortable: []string{"createdAt", "updatedAt", "firstName", "lastName", "email"},
}
