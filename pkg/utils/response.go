// en pkg/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

// Response es el sobre común de todas las respuestas de la API.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Meta    *query.Meta         `json:"meta,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"` // sólo fuera de producción
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendOK(c *gin.Context, message string, data interface{}) {
	SendSuccess(c, http.StatusOK, message, data)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	SendSuccess(c, http.StatusCreated, message, data)
}

// SendPage envía un listado paginado con su meta.
func SendPage(c *gin.Context, message string, data interface{}, meta query.Meta) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    &meta,
	})
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// --- Normalización de errores ---

const (
	msgUnexpected = "Something went wrong"
	msgUpstream   = "Upstream service unavailable"
)

// Normalize mapea un error de la taxonomía a código HTTP y sobre.
// En producción nunca se expone el texto crudo del error.
func Normalize(err error, production bool) (int, Response) {
	status, resp := classify(err)
	if !production && err != nil {
		resp.Error = err.Error()
	}
	return status, resp
}

func classify(err error) (int, Response) {
	var (
		validation *domain.ValidationError
		authn      *domain.AuthenticationError
		authz      *domain.AuthorizationError
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
		upstream   *domain.UpstreamError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, Response{Message: validation.Msg, Errors: validation.Fields}
	case errors.As(err, &authn):
		return http.StatusUnauthorized, Response{Message: authn.Msg}
	case errors.As(err, &authz):
		return http.StatusForbidden, Response{Message: authz.Msg}
	case errors.As(err, &notFound):
		return http.StatusNotFound, Response{Message: notFound.Msg}
	case errors.As(err, &conflict):
		if conflict.ForeignKey {
			return http.StatusBadRequest, Response{Message: conflict.Msg}
		}
		return http.StatusConflict, Response{Message: conflict.Msg}
	case errors.As(err, &upstream):
		if upstream.Gateway {
			return http.StatusBadGateway, Response{Message: msgUpstream}
		}
		return http.StatusInternalServerError, Response{Message: msgUnexpected}
	default:
		return http.StatusInternalServerError, Response{Message: msgUnexpected}
	}
}
