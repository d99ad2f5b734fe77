// Package calculators provides the single-shot network cost calculators.
//
// Each calculator is an independent pure function: inputs are multiplied and
// summed once, with no iteration and no shared state. The archive storage
// projection lives in core/projection because it is the only multi-period
// calculation.
package calculators
