// Package input - Parameter presets, parameter files and the request envelope.
// The CLI and the API both resolve their parameters through here.
package input

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"aws-cost-calc/core/types"
	"aws-cost-calc/internal/errors"
)

// SourceType indicates where a calculation request came from
type SourceType int

const (
	SourceCLI  SourceType = iota // Local CLI invocation
	SourceAPI                    // HTTP API request
	SourceFile                   // Parameter file
)

// String returns the source type name
func (t SourceType) String() string {
	switch t {
	case SourceCLI:
		return "cli"
	case SourceAPI:
		return "api"
	case SourceFile:
		return "file"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the source type by name
func (t SourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// SourceInfo describes where the input came from
type SourceInfo struct {
	Type SourceType `json:"type"`
	Path string     `json:"path,omitempty"` // parameter file, when one was read
}

// Envelope is the resolved input of one calculation.
// Params holds the fully merged parameters, after presets and overrides.
type Envelope struct {
	Source     SourceInfo       `json:"source"`
	Calculator types.Calculator `json:"calculator"`
	Params     interface{}      `json:"params"`
	Metadata   EnvelopeMetadata `json:"metadata"`
}

// EnvelopeMetadata identifies a calculation
type EnvelopeMetadata struct {
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`

	// InputHash is the SHA-256 of the calculator name and canonical params;
	// equal inputs always hash equally
	InputHash string `json:"input_hash"`
}

// NewEnvelope wraps resolved parameters with a request ID and input hash
func NewEnvelope(source SourceInfo, calculator types.Calculator, params interface{}) (*Envelope, error) {
	hash, err := InputHash(calculator, params)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Source:     source,
		Calculator: calculator,
		Params:     params,
		Metadata: EnvelopeMetadata{
			RequestID: uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			InputHash: hash,
		},
	}, nil
}

// WithRequestID replaces the generated request ID, e.g. with one from an upstream proxy
func (env *Envelope) WithRequestID(id string) *Envelope {
	if id != "" {
		env.Metadata.RequestID = id
	}
	return env
}

// InputHash hashes the calculator name and the JSON encoding of params.
// Struct fields encode in declaration order, so the encoding is stable.
func InputHash(calculator types.Calculator, params interface{}) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", errors.Internal("failed to encode parameters", err)
	}
	h := sha256.New()
	h.Write([]byte(calculator))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
