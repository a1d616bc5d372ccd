package validation_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/docstatus/apps/server/internal/platform/validation"
	"github.com/tilsley/docstatus/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContract(t *testing.T) *validation.Contract {
	t.Helper()
	ct, err := validation.Load(schemas.OpenAPISpec)
	require.NoError(t, err)
	return ct
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mw, err := validation.New(schemas.OpenAPISpec)
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/api/status", func(c *gin.Context) { c.JSON(http.StatusOK, []any{}) })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "page") })
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonHeader() http.Header {
	return http.Header{"Content-Type": []string{"application/json; charset=utf-8"}}
}

// ─── Middleware ───────────────────────────────────────────────────────────────

func TestMiddleware_KnownRoutePasses(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/api/status")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMiddleware_UnknownRoutePassesThrough(t *testing.T) {
	// "/" serves HTML and is not described by the contract.
	w := do(newRouter(t), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "page", w.Body.String())
}

// ─── ValidateResponse ─────────────────────────────────────────────────────────

func TestValidateResponse_StatusTree(t *testing.T) {
	ct := newContract(t)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)

	body := `[{
		"name": "tools", "path": "tools", "url": "https://github.com/o/r/tree/master/tools",
		"status": "yellow", "isDir": true,
		"children": [
			{"name": "index.md", "path": "tools/index.md", "url": "", "status": "green", "isDir": false, "children": []}
		]
	}]`

	assert.NoError(t, ct.ValidateResponse(req, http.StatusOK, jsonHeader(), []byte(body)))
}

func TestValidateResponse_RejectsBadNodes(t *testing.T) {
	ct := newContract(t)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)

	for name, body := range map[string]string{
		"unknown status":   `[{"name":"a","path":"a","url":"","status":"blue","isDir":true,"children":[]}]`,
		"missing children": `[{"name":"a","path":"a","url":"","status":"red","isDir":true}]`,
		"extra field":      `[{"name":"a","path":"a","url":"","status":"red","isDir":true,"children":[],"type":"dir"}]`,
		"not an array":     `{"name":"a"}`,
		"bad nested node":  `[{"name":"a","path":"a","url":"","status":"red","isDir":true,"children":[{"name":"b"}]}]`,
	} {
		assert.Error(t, ct.ValidateResponse(req, http.StatusOK, jsonHeader(), []byte(body)), name)
	}
}

func TestValidateResponse_ErrorBodies(t *testing.T) {
	ct := newContract(t)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)

	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		assert.NoError(t, ct.ValidateResponse(req, code, jsonHeader(), []byte(`{"error":"boom"}`)), code)
	}
	assert.Error(t, ct.ValidateResponse(req, http.StatusInternalServerError, jsonHeader(), []byte(`{}`)))
	assert.Error(t, ct.ValidateResponse(req, http.StatusTeapot, jsonHeader(), []byte(`{"error":"boom"}`)),
		"undocumented status codes are rejected")
}

func TestValidateResponse_UnknownRoute(t *testing.T) {
	ct := newContract(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)

	assert.Error(t, ct.ValidateResponse(req, http.StatusOK, jsonHeader(), []byte(`{}`)))
}

// ─── Load / New ───────────────────────────────────────────────────────────────

func TestNew_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := validation.New([]byte(`not yaml`))
	assert.Error(t, err)
}
