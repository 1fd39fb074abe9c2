package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	batchDomain "github.com/davicafu/academylab/internal/batch/domain"
	courseDomain "github.com/davicafu/academylab/internal/course/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

// MockCourseRepository permite comprobar que un caso de uso no escribe.
type MockCourseRepository struct {
	mock.Mock
}

var _ courseDomain.CourseRepository = (*MockCourseRepository)(nil)

func (m *MockCourseRepository) Create(ctx context.Context, c *courseDomain.Course, evt sharedDomain.OutboxEvent) error {
	args := m.Called(ctx, c, evt)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*courseDomain.Course, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*courseDomain.Course); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) Update(ctx context.Context, c *courseDomain.Course, evts ...sharedDomain.OutboxEvent) error {
	args := m.Called(ctx, c, evts)
	return args.Error(0)
}

func (m *MockCourseRepository) List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*courseDomain.Course, int, error) {
	args := m.Called(ctx, criteria, opts)
	list, _ := args.Get(0).([]*courseDomain.Course)
	return list, args.Int(1), args.Error(2)
}

// MockBatchRepository es el doble de batchDomain.BatchRepository.
type MockBatchRepository struct {
	mock.Mock
}

var _ batchDomain.BatchRepository = (*MockBatchRepository)(nil)

func (m *MockBatchRepository) Create(ctx context.Context, b *batchDomain.Batch, evt sharedDomain.OutboxEvent) error {
	args := m.Called(ctx, b, evt)
	return args.Error(0)
}

func (m *MockBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*batchDomain.Batch, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*batchDomain.Batch); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) GetBySlug(ctx context.Context, slug string) (*batchDomain.Batch, error) {
	args := m.Called(ctx, slug)
	if b, ok := args.Get(0).(*batchDomain.Batch); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batchDomain.Batch, evts ...sharedDomain.OutboxEvent) error {
	args := m.Called(ctx, b, evts)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) List(ctx context.Context, criteria sharedDomain.Criteria, opts query.Options) ([]*batchDomain.Batch, int, error) {
	args := m.Called(ctx, criteria, opts)
	list, _ := args.Get(0).([]*batchDomain.Batch)
	return list, args.Int(1), args.Error(2)
}

func (m *MockBatchRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*batchDomain.Batch, error) {
	args := m.Called(ctx, courseID)
	list, _ := args.Get(0).([]*batchDomain.Batch)
	return list, args.Error(1)
}
