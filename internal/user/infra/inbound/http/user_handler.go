package http

import (
	"github.com/gin-gonic/gin"

	authHttp "github.com/davicafu/academylab/internal/auth/infra/inbound/http"
	"github.com/davicafu/academylab/internal/user/application"
	"github.com/davicafu/academylab/pkg/utils"
	"github.com/davicafu/academylab/shared/platform/query"
)

const msgInvalidUserID = "Invalid user id"

// UserHandler encapsula los endpoints HTTP relacionados con User
type UserHandler struct {
	service  *application.UserService
	maxBytes int64
}

// NewUserHandler crea un nuevo UserHandler; maxBytes limita la foto de perfil.
func NewUserHandler(service *application.UserService, maxBytes int64) *UserHandler {
	return &UserHandler{service: service, maxBytes: maxBytes}
}

// ---------------- Handlers ----------------

// GetMe endpoint GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	p, _ := authHttp.CurrentPrincipal(c)

	user, err := h.service.GetMe(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "User profile retrieved successfully", user)
}

// GetUser endpoint GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidUserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "User retrieved successfully", user)
}

// ListUsers endpoint GET /users?page=&limit=&searchTerm=&role=...
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, meta, err := h.service.List(c.Request.Context(), query.FromValues(c.Request.URL.Query()))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendPage(c, "Users retrieved successfully", users, meta)
}

// UpdateUser endpoint PATCH /users/:id (JSON o multipart con "data" + "file")
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidUserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req application.UpdateUserInput
	upload, err := utils.BindWithFile(c, &req, h.maxBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer upload.Close()

	p, _ := authHttp.CurrentPrincipal(c)
	user, err := h.service.Update(c.Request.Context(), p, id, req, upload.File)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "User updated successfully", user)
}

// ToggleBlock endpoint PATCH /users/toggle-block/:id
func (h *UserHandler) ToggleBlock(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidUserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, msg, err := h.service.ToggleBlock(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, msg, user)
}
