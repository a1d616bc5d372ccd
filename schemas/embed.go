// Package schemas embeds the OpenAPI document describing the docstatus HTTP API.
package schemas

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3 document.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
