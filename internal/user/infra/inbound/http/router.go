package http

import (
	"github.com/gin-gonic/gin"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	"github.com/davicafu/academylab/internal/user/domain"
)

func RegisterUserRoutes(r *gin.RouterGroup, handler *UserHandler, gate *authHttp.Gate) {
	anyRole := gate.Require()
	admins := gate.Require(domain.RoleAdmin, domain.RoleSuperAdmin)

	users := r.Group("/users")
	{
		users.GET("/me", anyRole, handler.GetMe)
		users.GET("", admins, handler.ListUsers)
		users.GET("/:id", admins, handler.GetUser)
		users.PATCH("/toggle-block/:id", admins, handler.ToggleBlock)
		users.PATCH("/:id", anyRole, handler.UpdateUser)
	}
}
