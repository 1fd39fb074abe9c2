package http

import (
	"github.com/gin-gonic/gin"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	"github.com/davicafu/academylab/internal/course/application"
	"github.com/davicafu/academylab/pkg/utils"
	"github.com/davicafu/academylab/shared/platform/query"
)

const msgInvalidCourseID = "Invalid course id"

// CourseHandler encapsula los endpoints HTTP relacionados con Course
type CourseHandler struct {
	service  *application.CourseService
	maxBytes int64
}

func NewCourseHandler(service *application.CourseService, maxBytes int64) *CourseHandler {
	return &CourseHandler{service: service, maxBytes: maxBytes}
}

// CreateCourse endpoint POST /courses (JSON o multipart con "data" + "file")
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req application.CreateCourseInput
	upload, err := utils.BindWithFile(c, &req, h.maxBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer upload.Close()

	p, _ := authHttp.CurrentPrincipal(c)
	course, err := h.service.Create(c.Request.Context(), p, req, upload.File)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendCreated(c, "Course created successfully", course)
}

// ListCourses endpoint GET /courses?searchTerm=&minPrice=&maxPrice=&...
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, meta, err := h.service.List(c.Request.Context(), query.FromValues(c.Request.URL.Query()))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendPage(c, "Courses retrieved successfully", courses, meta)
}

// GetCourse endpoint GET /courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidCourseID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	course, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Course retrieved successfully", course)
}

// UpdateCourse endpoint PATCH /courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidCourseID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req application.UpdateCourseInput
	upload, err := utils.BindWithFile(c, &req, h.maxBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer upload.Close()

	p, _ := authHttp.CurrentPrincipal(c)
	course, err := h.service.Update(c.Request.Context(), p, id, req, upload.File)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Course updated successfully", course)
}

// SoftDeleteCourse endpoint PATCH /courses/soft-delete/:id
func (h *CourseHandler) SoftDeleteCourse(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidCourseID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	course, err := h.service.SoftDelete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Course deleted successfully", course)
}

// ApproveCourse endpoint PATCH /courses/approve/:id
func (h *CourseHandler) ApproveCourse(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidCourseID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	course, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Course approved successfully", course)
}
