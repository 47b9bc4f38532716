package stats

import (
	"errors"
	"fmt"
)

var (

	// ErrMalformedInput covers missing or non-numeric columns
	// and values which cannot describe a valid tier.
	ErrMalformedInput = errors.New("malformed input")

	// ErrConfiguration is returned e.g. for an unknown scale label
	// or an invalid threshold.
	ErrConfiguration = errors.New("configuration error")

	ErrEmptyDataset = errors.New("empty dataset")

	// ErrDivisionByZero is returned instead of letting an Inf/NaN
	// value into the derived metrics.
	ErrDivisionByZero = errors.New("division by zero in metric")
)

// MetricError describes a failure to derive a metric for a concrete
// record. It always wraps one of the sentinel errors above.
type MetricError struct {
	Row    int
	Scale  string
	Metric string
	Err    error
}

func (err *MetricError) Error() string {
	return fmt.Sprintf(
		"%s: row %d (%s), metric %s", err.Err, err.Row, err.Scale, err.Metric)
}

func (err *MetricError) Unwrap() error {
	return err.Err
}
