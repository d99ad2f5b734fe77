// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol, falling back to the code
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD, "":
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	default:
		return string(c) + " "
	}
}

// Calculator names the independent calculators
type Calculator string

const (
	CalculatorArchive       Calculator = "archive"
	CalculatorEndpoint      Calculator = "endpoint"
	CalculatorDedicatedLine Calculator = "dedicated-line"
)

// String returns the string representation
func (c Calculator) String() string {
	return string(c)
}

// HoursPerMonth is the billing convention for an average month
const HoursPerMonth = 730
