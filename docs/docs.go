// Package docs раздаёт OpenAPI-описание API для swagger-ui.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
