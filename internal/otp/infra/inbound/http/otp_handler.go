package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/academylab/internal/otp/application"
	"github.com/davicafu/academylab/pkg/utils"
)

type OTPHandler struct {
	service *application.OTPService
}

func NewOTPHandler(service *application.OTPService) *OTPHandler {
	return &OTPHandler{service: service}
}

// Send endpoint POST /otp/send
func (h *OTPHandler) Send(c *gin.Context) {
	var req application.SendInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	if err := h.service.Send(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "OTP sent successfully", nil)
}

// Verify endpoint POST /otp/verify
func (h *OTPHandler) Verify(c *gin.Context) {
	var req application.VerifyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	if err := h.service.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendOK(c, "User verified successfully", nil)
}

func RegisterOTPRoutes(r *gin.RouterGroup, handler *OTPHandler) {
	otp := r.Group("/otp")
	{
		otp.POST("/send", handler.Send)
		otp.POST("/verify", handler.Verify)
	}
}
