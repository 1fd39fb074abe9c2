package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

// InMemoryUserRepo simula UserRepository con outbox incluido.
type InMemoryUserRepo struct {
	Users  map[uuid.UUID]*userDomain.User
	Outbox []sharedDomain.OutboxEvent
	// Err, si no es nil, lo devuelven todas las operaciones.
	Err error
	mu  sync.Mutex
}

var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		Users:  make(map[uuid.UUID]*userDomain.User),
		Outbox: []sharedDomain.OutboxEvent{},
	}
}

// Seed guarda una copia del usuario sin generar eventos.
func (r *InMemoryUserRepo) Seed(u *userDomain.User) *userDomain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.Users[u.ID] = &cp
	return u
}

func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.Users {
		if strings.EqualFold(existing.Email, u.Email) {
			return sharedDomain.NewConflictError("Duplicate field value")
		}
	}
	cp := *u
	r.Users[u.ID] = &cp
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.Users[id]
	if !ok || u.IsDeleted {
		return nil, userDomain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) && !u.IsDeleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userDomain.ErrUserNotFound
}

func (r *InMemoryUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, u := range r.Users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryUserRepo) Update(ctx context.Context, u *userDomain.User, evts ...sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	existing, ok := r.Users[u.ID]
	if !ok || existing.IsDeleted {
		return userDomain.ErrUserNotFound
	}
	cp := *u
	r.Users[u.ID] = &cp
	r.Outbox = append(r.Outbox, evts...)
	return nil
}

// List ignora los criterios (el filtrado real se prueba contra SQLite);
// sólo excluye borrados, ordena por fecha de creación y pagina.
func (r *InMemoryUserRepo) List(ctx context.Context, _ sharedDomain.Criteria, opts query.Options) ([]*userDomain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var list []*userDomain.User
	for _, u := range r.Users {
		if !u.IsDeleted {
			cp := *u
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if opts.Desc() {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	total := len(list)
	start := opts.Skip
	if start > total {
		return []*userDomain.User{}, total, nil
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return list[start:end], total, nil
}

// EventTypes devuelve los tipos de evento escritos en el outbox, en orden.
func (r *InMemoryUserRepo) EventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Outbox))
	for _, e := range r.Outbox {
		types = append(types, e.EventType)
	}
	return types
}
