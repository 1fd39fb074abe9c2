package http

import (
	"github.com/gin-gonic/gin"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
)

func RegisterBatchRoutes(r *gin.RouterGroup, handler *BatchHandler, gate *authHttp.Gate) {
	admins := gate.Require(userDomain.RoleAdmin, userDomain.RoleSuperAdmin)

	batches := r.Group("/batches")
	{
		batches.GET("", handler.ListBatches)
		batches.GET("/:id", handler.GetBatch)
		batches.POST("", admins, handler.CreateBatch)
		batches.PATCH("/toggle/:id", admins, handler.ToggleStatus)
		batches.PATCH("/status/:id", admins, handler.SetStatus)
		batches.PATCH("/:id", admins, handler.UpdateBatch)
		batches.DELETE("/:id", admins, handler.DeleteBatch)
	}
}
