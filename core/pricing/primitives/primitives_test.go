// Package primitives - Pricing math tests
package primitives

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestThousandOperationsScalesCount proves counts are billed per 1,000
func TestThousandOperationsScalesCount(t *testing.T) {
	unit := ThousandOperations("put_requests", "PUT", 1000, dec("0.05"))

	if !unit.Quantity.Equal(dec("1")) {
		t.Errorf("Expected quantity 1, got %s", unit.Quantity)
	}
	if !unit.Amount.Equal(dec("0.05")) {
		t.Errorf("Expected amount 0.05, got %s", unit.Amount)
	}

	unit = ThousandOperations("get_requests", "GET", 100, dec("0.0004"))
	if !unit.Amount.Equal(dec("0.00004")) {
		t.Errorf("Expected amount 0.00004, got %s", unit.Amount)
	}
}

// TestFreeOperationsIgnoreRate proves deletes never cost anything
func TestFreeOperationsIgnoreRate(t *testing.T) {
	unit := FreeOperations("delete_requests", "DELETE", 50_000)

	if !unit.Amount.IsZero() {
		t.Fatalf("Expected zero amount, got %s", unit.Amount)
	}
	if !unit.Quantity.Equal(dec("50")) {
		t.Errorf("Expected quantity 50, got %s", unit.Quantity)
	}
}

func TestStorageAndRetrieval(t *testing.T) {
	storage := StorageGBMonth(dec("1"), StorageDeepArchive, dec("0.00099"))
	if !storage.Amount.Equal(dec("0.00099")) {
		t.Errorf("Expected storage amount 0.00099, got %s", storage.Amount)
	}
	if storage.Measure != MeasureGBMonth {
		t.Errorf("Expected measure %s, got %s", MeasureGBMonth, storage.Measure)
	}

	bulk := RetrievalGB(dec("500"), RecoveryBulk, dec("0.025"))
	if !bulk.Amount.Equal(dec("12.5")) {
		t.Errorf("Expected bulk amount 12.5, got %s", bulk.Amount)
	}
	if bulk.Name != "bulk_recovery" {
		t.Errorf("Expected name bulk_recovery, got %s", bulk.Name)
	}
}

func TestHourlyCharge(t *testing.T) {
	unit := HourlyCharge("port_hours", "Ports", 4, 730, dec("2.25"))

	if !unit.Quantity.Equal(dec("2920")) {
		t.Errorf("Expected 2920 port-hours, got %s", unit.Quantity)
	}
	if !unit.Amount.Equal(dec("6570")) {
		t.Errorf("Expected amount 6570, got %s", unit.Amount)
	}
}

func TestZeroQuantitiesPriceToZero(t *testing.T) {
	units := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"transfer", DataTransferGB(decimal.Zero, TransferOutbound, dec("0.02")).Amount},
		{"processed", DataProcessedGB(decimal.Zero, "endpoint", dec("0.01")).Amount},
		{"storage", StorageGBMonth(decimal.Zero, StorageDeepArchive, dec("1")).Amount},
		{"hours", HourlyCharge("h", "H", 0, 730, dec("0.30")).Amount},
	}

	for _, u := range units {
		if !u.amount.IsZero() {
			t.Errorf("%s: expected zero amount, got %s", u.name, u.amount)
		}
	}
}
