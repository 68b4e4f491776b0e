package openapi

import _ "embed"

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yml

//go:embed openapi.yml
var Spec []byte
