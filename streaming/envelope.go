// Package streaming describes the JSON envelope returned by the
// velocity streaming endpoint of the benchmarked system. Only the
// response shape is covered here; nothing in this repository calls
// the endpoint. The package is a shared contract for the report
// assembler and the endpoint smoke test which live outside
// this repository.
package streaming

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrInvalidEnvelope = errors.New("invalid streaming envelope")

// VelocityItem is a single arc velocity as produced by a worker
type VelocityItem struct {
	ArcID       string  `json:"arcId"`
	LineID      string  `json:"lineId"`
	VelocityKmh float64 `json:"velocityKmh"`
	VelocityMs  float64 `json:"velocityMs,omitempty"`
	SampleCount int     `json:"sampleCount,omitempty"`
	TestLabel   string  `json:"testLabel,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type Envelope struct {
	Success   bool           `json:"success"`
	Timestamp string         `json:"timestamp"`
	Data      []VelocityItem `json:"data"`
}

// rawEnvelope allows for telling a missing key from a zero value
type rawEnvelope struct {
	Success   *bool           `json:"success"`
	Timestamp string          `json:"timestamp"`
	Data      *[]VelocityItem `json:"data"`
}

// Decode reads a single envelope from r. Both `success` and `data`
// keys are required (`data` may be an empty list).
func Decode(r io.Reader) (Envelope, error) {
	var raw rawEnvelope
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Envelope{}, fmt.Errorf("%w: %s", ErrInvalidEnvelope, err)
	}
	if raw.Success == nil {
		return Envelope{}, fmt.Errorf("%w: missing key 'success'", ErrInvalidEnvelope)
	}
	if raw.Data == nil {
		return Envelope{}, fmt.Errorf("%w: missing key 'data'", ErrInvalidEnvelope)
	}
	return Envelope{
		Success:   *raw.Success,
		Timestamp: raw.Timestamp,
		Data:      *raw.Data,
	}, nil
}
