// Package validation checks HTTP traffic against the embedded OpenAPI document.
package validation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
)

// Contract is a loaded and validated OpenAPI document with its router.
type Contract struct {
	router routers.Router
}

// Load parses and validates the OpenAPI spec bytes.
func Load(spec []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return &Contract{router: router}, nil
}

// New builds a Gin middleware that validates inbound requests against the
// provided OpenAPI spec bytes. Routes not present in the spec are passed
// through silently.
func New(spec []byte) (gin.HandlerFunc, error) {
	contract, err := Load(spec)
	if err != nil {
		return nil, err
	}
	return contract.Middleware(), nil
}

// Middleware returns the request-validating Gin middleware.
func (ct *Contract) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route, pathParams, err := ct.router.FindRoute(c.Request)
		if err != nil {
			// Not in the contract (the HTML page): pass through.
			c.Next()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

// ValidateResponse checks a recorded response against the operation matching
// req. It lets tests pin the JSON shape that the page and other clients read.
func (ct *Contract) ValidateResponse(req *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := ct.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("find route %s %s: %w", req.Method, req.URL.Path, err)
	}
	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Body:   io.NopCloser(bytes.NewReader(body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}
	return openapi3filter.ValidateResponse(context.Background(), input)
}
