package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/academylab/internal/batch/application"
	"github.com/davicafu/academylab/pkg/utils"
	"github.com/davicafu/academylab/shared/platform/query"
)

const msgInvalidBatchID = "Invalid batch id"

// BatchHandler encapsula los endpoints HTTP relacionados con Batch
type BatchHandler struct {
	service *application.BatchService
}

func NewBatchHandler(service *application.BatchService) *BatchHandler {
	return &BatchHandler{service: service}
}

// CreateBatch endpoint POST /batches
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req application.CreateBatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	batch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendCreated(c, "Batch created successfully", batch)
}

// ListBatches endpoint GET /batches?status=&courseId=&searchTerm=
func (h *BatchHandler) ListBatches(c *gin.Context) {
	batches, meta, err := h.service.List(c.Request.Context(), query.FromValues(c.Request.URL.Query()))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendPage(c, "Batches retrieved successfully", batches, meta)
}

// GetBatch endpoint GET /batches/:id (UUID o slug)
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batch, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Batch retrieved successfully", batch)
}

// UpdateBatch endpoint PATCH /batches/:id
func (h *BatchHandler) UpdateBatch(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidBatchID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req application.UpdateBatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	batch, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Batch updated successfully", batch)
}

// DeleteBatch endpoint DELETE /batches/:id
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidBatchID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Batch deleted successfully", nil)
}

// ToggleStatus endpoint PATCH /batches/toggle/:id
func (h *BatchHandler) ToggleStatus(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidBatchID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	batch, err := h.service.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Batch status toggled successfully", batch)
}

// SetStatus endpoint PATCH /batches/status/:id  {"status": "ONGOING"}
func (h *BatchHandler) SetStatus(c *gin.Context) {
	id, err := utils.ParamUUID(c, "id", msgInvalidBatchID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	batch, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "Batch status updated successfully", batch)
}
