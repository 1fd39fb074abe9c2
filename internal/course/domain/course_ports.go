package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

const MsgCourseNotFound = "Course not found"

var ErrCourseNotFound = sharedDomain.NewNotFoundError(MsgCourseNotFound)

// CourseRepository define las operaciones persistentes para Course.
// GetByID y List nunca devuelven cursos borrados.
type CourseRepository interface {
	Create(ctx context.Context, c *Course, evt sharedDomain.OutboxEvent) error

	// Debe devolver ErrCourseNotFound si no existe o está borrado.
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)

	// SlugExists también cuenta los cursos borrados: el slug sigue ocupado.
	SlugExists(ctx context.Context, slug string) (bool, error)

	Update(ctx context.Context, c *Course, evts ...sharedDomain.OutboxEvent) error

	List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*Course, int, error)
}

// CourseSchema es la lista blanca del listado de cursos.
var CourseSchema = query.Schema{
	Searchable: []string{"title", "description", "metaTitle", "metaDescription", "location"},
	Filterable: map[string]query.Kind{
		"title":        query.String,
		"type":         query.String,
		"access":       query.String,
		"level":        query.String,
		"status":       query.String,
		"location":     query.String,
		"instructorId": query.String,
		"isPremium":    query.Bool,
		"approved":     query.Bool,
		"price":        query.Number,
		"createdAt":    query.Date,
	},
	Sortable: []string{"createdAt", "updatedAt", "title", "price"},
	Ranges: []query.Range{
		{Param: "minPrice", Field: "price", Op: sharedDomain.OpGte},
		{Param: "maxPrice", Field: "price", Op: sharedDomain.OpLte},
	},
}

// CacheKey es la clave del curso en la caché de lectura.
func CacheKey(id uuid.UUID) string {
	return "course:id:" + id.String()
}
