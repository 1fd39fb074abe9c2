package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/academylab/internal/batch/domain"
	courseDomain "github.com/davicafu/academylab/internal/course/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
	"github.com/davicafu/academylab/shared/platform/query"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

// CourseReader es lo único que el servicio de ediciones necesita de los cursos.
type CourseReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseDomain.Course, error)
}

// BatchService define los casos de uso relacionados con Batch.
type BatchService struct {
	repo    domain.BatchRepository
	courses CourseReader
	log     *zap.Logger
}

func NewBatchService(repo domain.BatchRepository, courses CourseReader, log *zap.Logger) *BatchService {
	return &BatchService{repo: repo, courses: courses, log: log}
}

// Create valida en un orden fijo y se detiene en el primer fallo; el slug
// sale del título del curso.
func (s *BatchService) Create(ctx context.Context, in CreateBatchInput) (*domain.Batch, error) {
	if strings.TrimSpace(in.CourseID) == "" {
		return nil, invalid("courseId", domain.MsgCourseIDRequired)
	}
	courseID, err := uuid.Parse(strings.TrimSpace(in.CourseID))
	if err != nil {
		return nil, courseDomain.ErrCourseNotFound
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	start, err := sharedUtils.ParseDate(in.StartDate)
	if err != nil {
		return nil, invalid("startDate", domain.MsgInvalidStartDate)
	}
	end, err := sharedUtils.ParseOptionalDate(in.EndDate)
	if err != nil {
		return nil, invalid("endDate", domain.MsgInvalidEndDate)
	}
	if end != nil && !end.After(start) {
		return nil, invalid("endDate", domain.MsgEndBeforeStart)
	}

	enrollStart, enrollEnd, err := enrollmentWindow(in.EnrollmentStart, in.EnrollmentEnd, start, end)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := &domain.Batch{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(firstNonEmpty(in.Name, in.Title)),
		CourseID:        course.ID,
		StartDate:       start,
		EndDate:         end,
		EnrollmentStart: enrollStart,
		EnrollmentEnd:   enrollEnd,
		MaxStudents:     in.capacity(),
		Price:           in.Price,
		DiscountPrice:   in.DiscountPrice,
		Status:          domain.StatusUpcoming,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if strings.TrimSpace(in.Status) != "" {
		batch.Status = domain.Status(strings.ToUpper(strings.TrimSpace(in.Status)))
	}

	if err := batch.Validate(); err != nil {
		return nil, err
	}

	batch.Slug, err = sharedUtils.UniqueSlug(ctx, course.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(domain.BatchAggregateType, batch.ID.String(), domain.BatchCreated,
		sharedEvents.BatchCreated{ID: batch.ID, CourseID: batch.CourseID, Name: batch.Name, Slug: batch.Slug, StartDate: batch.StartDate})

	if err := s.repo.Create(ctx, batch, evt); err != nil {
		return nil, err
	}

	s.log.Info("🗓️ edición creada", zap.String("batch_id", batch.ID.String()), zap.String("slug", batch.Slug))
	return batch, nil
}

func (s *BatchService) List(ctx context.Context, raw map[string]string) ([]*domain.Batch, query.Meta, error) {
	opts, criteria := domain.BatchSchema.Resolve(raw)

	batches, total, err := s.repo.List(ctx, criteria, opts)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return batches, query.NewMeta(opts, total), nil
}

// Get busca por UUID si el valor lo es; si no, por slug.
func (s *BatchService) Get(ctx context.Context, idOrSlug string) (*domain.Batch, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetBySlug(ctx, idOrSlug)
}

// Update aplica una actualización parcial y revalida el registro completo.
func (s *BatchService) Update(ctx context.Context, id uuid.UUID, in UpdateBatchInput) (*domain.Batch, error) {
	if in.empty() {
		return nil, sharedDomain.NewValidationError("At least one field must be updated")
	}

	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := batch.Status

	if err := in.apply(batch); err != nil {
		return nil, err
	}
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	batch.UpdatedAt = time.Now().UTC()

	var evts []sharedDomain.OutboxEvent
	if batch.Status != previous {
		evts = append(evts, statusChanged(batch))
	}
	if err := s.repo.Update(ctx, batch, evts...); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *BatchService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("edición borrada", zap.String("batch_id", id.String()))
	return nil
}

// ToggleStatus alterna CANCELLED <-> UPCOMING.
func (s *BatchService) ToggleStatus(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	batch.Toggle()
	return s.saveStatus(ctx, batch)
}

// SetStatus acepta cualquier estado del enum.
func (s *BatchService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Batch, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch.Status == next {
		return batch, nil
	}
	batch.Status = next
	return s.saveStatus(ctx, batch)
}

func (s *BatchService) saveStatus(ctx context.Context, batch *domain.Batch) (*domain.Batch, error) {
	batch.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, batch, statusChanged(batch)); err != nil {
		return nil, err
	}
	s.log.Info("🔁 estado de edición cambiado", zap.String("batch_id", batch.ID.String()), zap.String("status", string(batch.Status)))
	return batch, nil
}

func statusChanged(b *domain.Batch) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(domain.BatchAggregateType, b.ID.String(), domain.BatchStatusChanged,
		sharedEvents.BatchStatusChanged{ID: b.ID, Status: string(b.Status)})
}

// enrollmentWindow aplica los valores por defecto: inicio = startDate y
// fin = endDate o, si no hay, startDate.
func enrollmentWindow(rawStart, rawEnd *string, start time.Time, end *time.Time) (time.Time, time.Time, error) {
	enrollStart := start
	enrollEnd := start
	if end != nil {
		enrollEnd = *end
	}

	t, err := sharedUtils.ParseOptionalDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("enrollmentStart", domain.MsgInvalidEnrollmentStart)
	}
	if t != nil {
		enrollStart = *t
	}

	t, err = sharedUtils.ParseOptionalDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("enrollmentEnd", domain.MsgInvalidEnrollmentEnd)
	}
	if t != nil {
		enrollEnd = *t
	}
	return enrollStart, enrollEnd, nil
}

func invalid(path, msg string) error {
	return sharedDomain.NewValidationError(msg, sharedDomain.FieldError{Path: path, Message: msg})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
