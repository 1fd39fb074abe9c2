package http

import (
	"github.com/gin-gonic/gin"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
)

func RegisterCourseRoutes(r *gin.RouterGroup, handler *CourseHandler, gate *authHttp.Gate) {
	authors := gate.Require(userDomain.RoleInstructor, userDomain.RoleAdmin, userDomain.RoleSuperAdmin)
	admins := gate.Require(userDomain.RoleAdmin, userDomain.RoleSuperAdmin)

	courses := r.Group("/courses")
	{
		courses.POST("", authors, handler.CreateCourse)
		courses.GET("", handler.ListCourses)
		courses.GET("/:id", handler.GetCourse)
		courses.PATCH("/soft-delete/:id", admins, handler.SoftDeleteCourse)
		courses.PATCH("/approve/:id", admins, handler.ApproveCourse)
		courses.PATCH("/:id", authors, handler.UpdateCourse)
	}
}
