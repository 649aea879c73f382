package api

import (
	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/catalog"
)

// VerifyRequest is the body of POST /v1/builds/verify. The selection is
// resolved against the server catalog.
type VerifyRequest struct {
	Name      string            `json:"name,omitempty"`
	Profile   string            `json:"profile,omitempty"`
	Selection catalog.Selection `json:"selection"`
}

// ResolvedRequest is the body of POST /v1/builds/verify/resolved. The build
// carries its parts inline and needs no catalog.
type ResolvedRequest struct {
	Profile string      `json:"profile,omitempty"`
	Build   build.Build `json:"build"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Profile      string `json:"profile"`
	CatalogHash  string `json:"catalog_hash,omitempty"`
	CatalogParts int    `json:"catalog_parts"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidBuild   = "INVALID_BUILD"
	CodeUnknownProfile = "UNKNOWN_PROFILE"
	CodePartNotFound   = "PART_NOT_FOUND"
	CodeVerifyFailed   = "VERIFY_FAILED"
)
