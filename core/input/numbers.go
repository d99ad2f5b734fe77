package input

import (
	"math"

	"github.com/shopspring/decimal"

	"aws-cost-calc/internal/errors"
)

// Numbers converts float inputs to decimals. NaN and infinities cannot be
// represented as a Decimal; they convert to zero and the field is recorded.
// The zero value is ready to use.
type Numbers struct {
	err *errors.Error
}

// Decimal converts v, recording field when v is not finite
func (n *Numbers) Decimal(field string, v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if n.err == nil {
			n.err = errors.Input("parameters must be finite numbers")
		}
		n.err.WithField(field, "finite", "must be a finite number")
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Set converts v into dst; a nil v leaves dst untouched
func (n *Numbers) Set(field string, dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = n.Decimal(field, *v)
	}
}

// Err reports every non-finite field seen so far, or nil
func (n *Numbers) Err() error {
	if n.err == nil {
		return nil
	}
	return n.err
}
