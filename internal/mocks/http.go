package mocks

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/academylab/pkg/middleware"
	"github.com/davicafu/academylab/pkg/utils"
)

// NewTestEngine monta gin con la misma cadena de middleware que main.
func NewTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.RegisterJSONFieldNames()
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(zap.NewNop()), middleware.ErrorHandler(zap.NewNop(), false))
	r.NoRoute(middleware.NotFound())
	return r
}

// JSONRequest construye una petición con body JSON y, opcionalmente, bearer token.
func JSONRequest(t *testing.T, method, path string, body interface{}, bearer string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

// Serve ejecuta la petición y decodifica el sobre común.
func Serve(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

// DataInto vuelve a decodificar body.Data en dest.
func DataInto(t *testing.T, body utils.Response, dest interface{}) {
	t.Helper()
	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
