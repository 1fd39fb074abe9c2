package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	"github.com/davicafu/academylab/internal/auth/infra/outbound/token"
	"github.com/davicafu/academylab/internal/batch/application"
	"github.com/davicafu/academylab/internal/batch/domain"
	batchRepo "github.com/davicafu/academylab/internal/batch/infra/outbound/db/sqlrepo"
	"github.com/davicafu/academylab/internal/config"
	courseDomain "github.com/davicafu/academylab/internal/course/domain"
	courseRepo "github.com/davicafu/academylab/internal/course/infra/outbound/db/sqlrepo"
	infraDB "github.com/davicafu/academylab/internal/infra/db"
	"github.com/davicafu/academylab/internal/mocks"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	userRepo "github.com/davicafu/academylab/internal/user/infra/outbound/db/sqlrepo"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/persistence"
)

type env struct {
	router   *gin.Engine
	admin    string
	student  string
	courseID uuid.UUID
}

func setup(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	db, err := infraDB.Open(ctx, persistence.SQLite, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := userRepo.NewUserRepo(db, persistence.SQLite)
	courses := courseRepo.NewCourseRepo(db, persistence.SQLite)
	tokens := token.NewJWTManager(config.JWT{AccessSecret: "a", RefreshSecret: "r", AccessTTL: time.Hour, RefreshTTL: time.Hour})

	login := func(role userDomain.Role) (uuid.UUID, string) {
		now := time.Now().UTC()
		u := &userDomain.User{ID: uuid.New(), FirstName: "T", LastName: "U", Email: uuid.NewString() + "@example.com",
			PasswordHash: "x", Role: role, IsActive: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, users.Create(ctx, u, sharedDomain.NewOutboxEvent(userDomain.UserAggregateType, u.ID.String(), userDomain.UserRegistered, nil)))
		tok, err := tokens.IssueAccess(u.ID, role)
		require.NoError(t, err)
		return u.ID, tok
	}
	instructorID, _ := login(userDomain.RoleInstructor)
	_, admin := login(userDomain.RoleAdmin)
	_, student := login(userDomain.RoleStudent)

	now := time.Now().UTC()
	course := &courseDomain.Course{
		ID: uuid.New(), Title: "Intro to Go", Slug: "intro-to-go-course", Description: "x",
		Type: courseDomain.TypeOnline, Access: courseDomain.AccessFree, Level: courseDomain.LevelBeginner,
		Status: courseDomain.StatusDraft, InstructorID: instructorID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, courses.Create(ctx, course,
		sharedDomain.NewOutboxEvent(courseDomain.CourseAggregateType, course.ID.String(), courseDomain.CourseCreated, nil)))

	service := application.NewBatchService(batchRepo.NewBatchRepo(db, persistence.SQLite), courses, zap.NewNop())
	r := mocks.NewTestEngine()
	RegisterBatchRoutes(r.Group("/api/v1"), NewBatchHandler(service), authHttp.NewGate(tokens, users))

	return env{router: r, admin: admin, student: student, courseID: course.ID}
}

func (e env) create(t *testing.T, body gin.H) domain.Batch {
	t.Helper()
	w, resp := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPost, "/api/v1/batches", body, e.admin))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b domain.Batch
	mocks.DataInto(t, resp, &b)
	return b
}

func TestCreateBatch(t *testing.T) {
	e := setup(t)

	body := gin.H{"courseId": e.courseID.String(), "name": "Batch 1", "startDate": "2025-06-01", "endDate": "2025-05-01", "maxStudents": 20}
	w, resp := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPost, "/api/v1/batches", body, e.student))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPost, "/api/v1/batches", body, e.admin))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "End date must be greater than start date", resp.Message)

	w, resp = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPost, "/api/v1/batches",
		gin.H{"courseId": uuid.NewString(), "startDate": "2025-06-01"}, e.admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, courseDomain.MsgCourseNotFound, resp.Message)

	body["endDate"] = "2025-07-01"
	first := e.create(t, body)
	second := e.create(t, body)
	assert.Equal(t, "intro-to-go", first.Slug)
	assert.Equal(t, "intro-to-go-1", second.Slug)
	assert.Equal(t, domain.StatusUpcoming, first.Status)
}

func TestGetListAndDelete(t *testing.T) {
	e := setup(t)
	b := e.create(t, gin.H{"courseId": e.courseID.String(), "title": "Evening", "startDate": "2025-06-01", "capacity": 10})

	for _, key := range []string{b.ID.String(), b.Slug} {
		w, resp := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/batches/"+key, nil, ""))
		require.Equal(t, http.StatusOK, w.Code, key)
		var got domain.Batch
		mocks.DataInto(t, resp, &got)
		assert.Equal(t, b.ID, got.ID)
	}

	w, resp := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/batches?courseId="+e.courseID.String(), nil, ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, resp.Meta.Total)

	w, _ = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodDelete, "/api/v1/batches/"+b.ID.String(), nil, e.admin))
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodDelete, "/api/v1/batches/"+b.ID.String(), nil, e.admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.MsgBatchNotFound, resp.Message)

	w, _ = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodGet, "/api/v1/batches/"+b.Slug, nil, ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAndSetStatus(t *testing.T) {
	e := setup(t)
	b := e.create(t, gin.H{"courseId": e.courseID.String(), "name": "Batch 1", "startDate": "2025-06-01", "maxStudents": 5})

	toggle := "/api/v1/batches/toggle/" + b.ID.String()
	for _, want := range []domain.Status{domain.StatusCancelled, domain.StatusUpcoming} {
		w, resp := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, toggle, nil, e.admin))
		require.Equal(t, http.StatusOK, w.Code)
		var got domain.Batch
		mocks.DataInto(t, resp, &got)
		assert.Equal(t, want, got.Status)
	}

	status := "/api/v1/batches/status/" + b.ID.String()
	w, resp := mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, status, gin.H{"status": "PAUSED"}, e.admin))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgInvalidStatus, resp.Message)

	w, resp = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, status, gin.H{"status": "COMPLETED"}, e.admin))
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Batch
	mocks.DataInto(t, resp, &got)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	w, resp = mocks.Serve(t, e.router, mocks.JSONRequest(t, http.MethodPatch, "/api/v1/batches/"+b.ID.String(),
		gin.H{"endDate": "2025-05-01"}, e.admin))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgEndBeforeStart, resp.Message)
}
