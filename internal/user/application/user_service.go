package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	authDomain "github.com/davicafu/academylab/internal/auth/domain"
	"github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
	sharedStorage "github.com/davicafu/academylab/shared/platform/storage"
)

const (
	MsgUserBlocked   = "User blocked successfully"
	MsgUserUnblocked = "User unblocked successfully"
)

// UpdateUserInput es una actualización parcial: sólo los campos no nil cambian.
type UpdateUserInput struct {
	FirstName  *string      `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName   *string      `json:"lastName" binding:"omitempty,min=1,max=50"`
	Phone      *string      `json:"phone" binding:"omitempty,max=20"`
	Role       *domain.Role `json:"role" binding:"omitempty,oneof=STUDENT INSTRUCTOR ADMIN SUPER_ADMIN"`
	IsActive   *bool        `json:"isActive"`
	IsVerified *bool        `json:"isVerified"`
}

func (in UpdateUserInput) empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Phone == nil &&
		in.Role == nil && in.IsActive == nil && in.IsVerified == nil
}

func (in UpdateUserInput) privileged() bool {
	return in.Role != nil || in.IsActive != nil || in.IsVerified != nil
}

// UserService define los casos de uso relacionados con User.
type UserService struct {
	repo    domain.UserRepository
	storage sharedStorage.Uploader
	log     *zap.Logger
}

func NewUserService(repo domain.UserRepository, storage sharedStorage.Uploader, log *zap.Logger) *UserService {
	return &UserService{repo: repo, storage: storage, log: log}
}

func (s *UserService) GetMe(ctx context.Context, p authDomain.Principal) (*domain.User, error) {
	return s.repo.GetByID(ctx, p.ID)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List resuelve la query cruda contra la lista blanca de usuarios.
func (s *UserService) List(ctx context.Context, raw map[string]string) ([]*domain.User, query.Meta, error) {
	opts, criteria := domain.UserSchema.Resolve(raw)

	users, total, err := s.repo.List(ctx, criteria, opts)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return users, query.NewMeta(opts, total), nil
}

// Update aplica una actualización parcial. Un usuario puede editarse a sí
// mismo; los administradores pueden editar a cualquiera y son los únicos que
// tocan rol y estado.
func (s *UserService) Update(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	in UpdateUserInput,
	photo *sharedStorage.File,
) (*domain.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, sharedDomain.NewAuthorizationError("You can only update your own profile")
	}
	if in.privileged() && !actor.IsAdmin() {
		return nil, sharedDomain.NewAuthorizationError("Only admins can change role or account status")
	}
	if in.empty() && photo == nil {
		return nil, sharedDomain.NewValidationError("At least one field must be updated")
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, sharedDomain.NewValidationError("Invalid role",
			sharedDomain.FieldError{Path: "role", Message: "role must be one of STUDENT, INSTRUCTOR, ADMIN, SUPER_ADMIN"})
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if photo != nil {
		key := fmt.Sprintf("users/%s/%s%s", user.ID, uuid.New(), strings.ToLower(filepath.Ext(photo.Name)))
		url, err := s.storage.Upload(ctx, key, photo.Body, photo.ContentType)
		if err != nil {
			return nil, err
		}
		user.ProfilePhoto = url
	}

	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsVerified != nil {
		user.IsVerified = *in.IsVerified
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user updated", zap.String("user_id", user.ID.String()), zap.String("actor_id", actor.ID.String()))
	return user, nil
}

// ToggleBlock invierte isBlocked; isActive pasa a ser el valor anterior de isBlocked.
func (s *UserService) ToggleBlock(ctx context.Context, id uuid.UUID) (*domain.User, string, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	wasBlocked := user.IsBlocked
	user.IsBlocked = !wasBlocked
	user.IsActive = wasBlocked
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	if user.IsBlocked {
		s.log.Info("🚫 usuario bloqueado", zap.String("user_id", user.ID.String()))
		return user, MsgUserBlocked, nil
	}
	s.log.Info("usuario desbloqueado", zap.String("user_id", user.ID.String()))
	return user, MsgUserUnblocked, nil
}
