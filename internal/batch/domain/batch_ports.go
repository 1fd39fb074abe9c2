package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

const MsgBatchNotFound = "Batch not found"

var ErrBatchNotFound = sharedDomain.NewNotFoundError(MsgBatchNotFound)

// BatchRepository define las operaciones persistentes para Batch.
type BatchRepository interface {
	Create(ctx context.Context, b *Batch, evt sharedDomain.OutboxEvent) error

	// Debe devolver ErrBatchNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	GetBySlug(ctx context.Context, slug string) (*Batch, error)

	SlugExists(ctx context.Context, slug string) (bool, error)

	Update(ctx context.Context, b *Batch, evts ...sharedDomain.OutboxEvent) error

	// Debe devolver ErrBatchNotFound si no existe.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*Batch, int, error)

	// ListByCourse devuelve las ediciones de un curso ordenadas por fecha de inicio.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Batch, error)
}

// BatchSchema es la lista blanca del listado de ediciones.
var BatchSchema = query.Schema{
	Searchable: []string{"name", "slug"},
	Filterable: map[string]query.Kind{
		"status":   query.String,
		"courseId": query.String,
	},
	Sortable: []string{"createdAt", "startDate", "name"},
}
