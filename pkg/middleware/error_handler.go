package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/academylab/pkg/utils"
)

// ErrorHandler es el único sitio que traduce errores a respuestas HTTP.
// Los handlers hacen c.Error(err) y retornan; el gate además aborta.
func ErrorHandler(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := utils.Normalize(err, production)

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status),
				zap.Error(err))
		} else {
			log.Debug("request rejected",
				zap.String("request_id", GetRequestID(c)),
				zap.Int("status", status),
				zap.Error(err))
		}

		c.JSON(status, body)
	}
}

// Recovery convierte un panic en un 500 con el sobre común.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			zap.String("request_id", GetRequestID(c)),
			zap.Any("panic", recovered))
		utils.SendError(c, http.StatusInternalServerError, "Something went wrong")
		c.Abort()
	})
}

// NotFound responde a rutas inexistentes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SendError(c, http.StatusNotFound, "Route not found: "+c.Request.URL.Path)
	}
}
