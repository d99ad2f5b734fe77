// Package types - Cost line items
package types

import "github.com/shopspring/decimal"

// CostUnit represents a single priced line item
type CostUnit struct {
	// Name identifies the component (e.g. "put_requests", "port_hours")
	Name string `json:"name"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Measure is the billing unit (e.g. "GB-month", "1K-requests", "port-hours")
	Measure string `json:"measure"`

	// Quantity is the billed quantity, already expressed in Measure units
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the unit price
	Rate decimal.Decimal `json:"rate"`

	// Amount is Quantity * Rate
	Amount decimal.Decimal `json:"amount"`

	// Formula describes how the amount was calculated
	Formula string `json:"formula"`
}

// CostBreakdown groups the units of one calculation
type CostBreakdown struct {
	// Units in calculation order
	Units []CostUnit `json:"units"`

	// Total is the sum of all unit amounts
	Total decimal.Decimal `json:"total"`

	// Currency is the cost currency
	Currency Currency `json:"currency"`
}

// NewCostBreakdown creates an empty breakdown
func NewCostBreakdown(currency Currency) *CostBreakdown {
	return &CostBreakdown{
		Units:    []CostUnit{},
		Total:    decimal.Zero,
		Currency: currency,
	}
}

// Add appends a unit and updates the total
func (b *CostBreakdown) Add(unit CostUnit) {
	b.Units = append(b.Units, unit)
	b.Total = b.Total.Add(unit.Amount)
}

// Get returns the unit with the given name
func (b *CostBreakdown) Get(name string) (CostUnit, bool) {
	for _, u := range b.Units {
		if u.Name == name {
			return u, true
		}
	}
	return CostUnit{}, false
}

// Sum totals the named units
func (b *CostBreakdown) Sum(names ...string) decimal.Decimal {
	total := decimal.Zero
	for _, name := range names {
		if u, ok := b.Get(name); ok {
			total = total.Add(u.Amount)
		}
	}
	return total
}
