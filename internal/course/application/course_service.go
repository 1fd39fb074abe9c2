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
	batchDomain "github.com/davicafu/academylab/internal/batch/domain"
	"github.com/davicafu/academylab/internal/course/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
	sharedCache "github.com/davicafu/academylab/shared/platform/cache"
	"github.com/davicafu/academylab/shared/platform/query"
	sharedStorage "github.com/davicafu/academylab/shared/platform/storage"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

const MsgNotCourseOwner = "You can only update your own courses"

// BatchLister es lo único que el servicio de cursos necesita de las ediciones.
type BatchLister interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*batchDomain.Batch, error)
}

// CourseDetail es un curso con sus ediciones.
type CourseDetail struct {
	*domain.Course
	Batches []*batchDomain.Batch `json:"batches"`
}

// CourseService define los casos de uso relacionados con Course.
type CourseService struct {
	repo     domain.CourseRepository
	batches  BatchLister
	cache    sharedCache.Cache
	storage  sharedStorage.Uploader
	cacheTTL int
	log      *zap.Logger
}

func NewCourseService(
	repo domain.CourseRepository,
	batches BatchLister,
	cache sharedCache.Cache,
	storage sharedStorage.Uploader,
	cacheTTL time.Duration,
	log *zap.Logger,
) *CourseService {
	return &CourseService{
		repo:     repo,
		batches:  batches,
		cache:    cache,
		storage:  storage,
		cacheTTL: int(cacheTTL.Seconds()),
		log:      log,
	}
}

// Create comprueba los invariantes antes de tocar el store; el slug se
// genera a partir del título y el curso nace en DRAFT sin aprobar.
func (s *CourseService) Create(
	ctx context.Context,
	actor authDomain.Principal,
	in CreateCourseInput,
	thumbnail *sharedStorage.File,
) (*domain.Course, error) {
	course, err := in.toCourse()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course.ID = uuid.New()
	course.Status = domain.StatusDraft
	course.Approved = false
	course.InstructorID = actor.ID
	course.CreatedAt = now
	course.UpdatedAt = now
	course.DefaultMetaTitle()

	if err := course.Validate(); err != nil {
		return nil, err
	}

	course.Slug, err = sharedUtils.UniqueSlug(ctx, course.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	if thumbnail != nil {
		if course.Thumbnail, err = s.uploadThumbnail(ctx, thumbnail); err != nil {
			return nil, err
		}
	}

	evt := sharedDomain.NewOutboxEvent(domain.CourseAggregateType, course.ID.String(), domain.CourseCreated,
		sharedEvents.CourseCreated{ID: course.ID, Title: course.Title, Slug: course.Slug, InstructorID: course.InstructorID})

	if err := s.repo.Create(ctx, course, evt); err != nil {
		return nil, err
	}

	s.log.Info("📚 curso creado", zap.String("course_id", course.ID.String()), zap.String("slug", course.Slug))
	return course, nil
}

// List resuelve la query cruda contra la lista blanca de cursos.
func (s *CourseService) List(ctx context.Context, raw map[string]string) ([]*domain.Course, query.Meta, error) {
	opts, criteria := domain.CourseSchema.Resolve(raw)

	courses, total, err := s.repo.List(ctx, criteria, opts)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return courses, query.NewMeta(opts, total), nil
}

// Get devuelve el curso con sus ediciones. El curso se sirve desde caché si
// está; las ediciones siempre se leen del store.
func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*CourseDetail, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	batches, err := s.batches.ListByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{Course: course, Batches: batches}, nil
}

func (s *CourseService) getCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := domain.CacheKey(id)

	var cached domain.Course
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		s.log.Debug("Cache hit", zap.String("key", key))
		return &cached, nil
	}

	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, key, course, s.cacheTTL, s.log)
	return course, nil
}

// Update aplica una actualización parcial y vuelve a validar el registro
// completo. Un instructor sólo puede editar sus propios cursos.
func (s *CourseService) Update(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	in UpdateCourseInput,
	thumbnail *sharedStorage.File,
) (*domain.Course, error) {
	if in.empty() && thumbnail == nil {
		return nil, sharedDomain.NewValidationError("At least one field must be updated")
	}

	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && course.InstructorID != actor.ID {
		return nil, sharedDomain.NewAuthorizationError(MsgNotCourseOwner)
	}

	if err := in.apply(course); err != nil {
		return nil, err
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}

	if thumbnail != nil {
		if course.Thumbnail, err = s.uploadThumbnail(ctx, thumbnail); err != nil {
			return nil, err
		}
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	sharedCache.Invalidate(ctx, s.cache, domain.CacheKey(id), s.log)
	return course, nil
}

// SoftDelete marca el curso como borrado; deja de aparecer en lecturas.
func (s *CourseService) SoftDelete(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.IsDeleted = true
	course.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}

	sharedCache.Invalidate(ctx, s.cache, domain.CacheKey(id), s.log)
	s.log.Info("🗑️ curso borrado", zap.String("course_id", id.String()))
	return course, nil
}

// Approve publica la aprobación como evento sólo la primera vez.
func (s *CourseService) Approve(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.Approved {
		return course, nil
	}

	course.Approved = true
	course.UpdatedAt = time.Now().UTC()
	evt := sharedDomain.NewOutboxEvent(domain.CourseAggregateType, course.ID.String(), domain.CourseApproved,
		sharedEvents.CourseApproved{ID: course.ID, Title: course.Title, InstructorID: course.InstructorID})

	if err := s.repo.Update(ctx, course, evt); err != nil {
		return nil, err
	}

	sharedCache.Invalidate(ctx, s.cache, domain.CacheKey(id), s.log)
	s.log.Info("✅ curso aprobado", zap.String("course_id", id.String()))
	return course, nil
}

func (s *CourseService) uploadThumbnail(ctx context.Context, f *sharedStorage.File) (string, error) {
	key := fmt.Sprintf("courses/%s%s", uuid.New(), strings.ToLower(filepath.Ext(f.Name)))
	return s.storage.Upload(ctx, key, f.Body, f.ContentType)
}
