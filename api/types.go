// Package api - API types for the cost calculators
// Every response is a pure function of the request body and the configured presets.
package api

import (
	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/internal/errors"
)

// ResponseMetadata identifies one calculation
type ResponseMetadata struct {
	// RequestID is the X-Request-Id header, or a generated UUID
	RequestID string `json:"request_id"`

	// InputHash is the SHA-256 of the resolved parameters; equal inputs hash equally
	InputHash string `json:"input_hash"`

	EngineVersion string `json:"engine_version"`
	DurationMs    int64  `json:"duration_ms"`
}

// ArchiveResponse is the output of POST /v1/archive/projection
type ArchiveResponse struct {
	Params   projection.Params             `json:"params"`
	Records  []projection.PeriodCostRecord `json:"records"`
	Summary  projection.Summary            `json:"summary"`
	Metadata ResponseMetadata              `json:"metadata"`
}

// EndpointResponse is the output of POST /v1/endpoint/estimate
type EndpointResponse struct {
	Params   calculators.EndpointParams   `json:"params"`
	Estimate calculators.EndpointEstimate `json:"estimate"`
	Metadata ResponseMetadata             `json:"metadata"`
}

// DedicatedLineResponse is the output of POST /v1/dedicated-line/estimate
type DedicatedLineResponse struct {
	Params   calculators.DedicatedLineParams   `json:"params"`
	Estimate calculators.DedicatedLineEstimate `json:"estimate"`
	Metadata ResponseMetadata                  `json:"metadata"`
}

// PortsResponse is the output of GET /v1/dedicated-line/ports
type PortsResponse struct {
	PortTypes []PortTypePrices `json:"port_types"`
}

// PortTypePrices lists the capacities of one port type, in display order
type PortTypePrices struct {
	PortType   calculators.PortType    `json:"port_type"`
	Capacities []calculators.PortPrice `json:"capacities"`
}

// HealthResponse is the output of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is the output of GET /version
type VersionResponse struct {
	Version     string   `json:"version"`
	Engine      string   `json:"engine"`
	APIVersion  string   `json:"api_version"`
	Calculators []string `json:"calculators"`
	Formats     []string `json:"formats"`
}

// ErrorResponse wraps every non-2xx body
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes what went wrong
type ErrorBody struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Fields    []errors.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}
