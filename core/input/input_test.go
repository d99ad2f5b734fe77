package input

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/types"
	"aws-cost-calc/internal/config"
	"aws-cost-calc/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: expected %s, got %s", field, want, got)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultArchive(t *testing.T) {
	p := DefaultArchive()

	assert.Equal(t, 1, p.Periods)
	assertDecimal(t, "1", p.InitialStorage, "initial")
	assert.True(t, p.PeriodGrowth.IsZero())
	assert.Equal(t, int64(1000), p.Operations.Write)
	assert.Equal(t, int64(100), p.Operations.Read)
	assert.Equal(t, int64(50), p.Operations.Delete)
	assert.Equal(t, int64(10), p.Operations.Transition)
	assertDecimal(t, "100", p.Recovery.Standard, "standard")
	assertDecimal(t, "500", p.Recovery.Bulk, "bulk")
	assertDecimal(t, "0.00099", p.Rates.Storage, "storage rate")
	assertDecimal(t, "0.0004", p.Rates.Read, "read rate")
	assertDecimal(t, "0.025", p.Rates.BulkRecovery, "bulk rate")
	assert.Equal(t, types.CurrencyUSD, p.Currency)
}

func TestResetKeepsPeriodsAndInitialStorage(t *testing.T) {
	p := DefaultArchive()
	p.Periods = 36
	p.InitialStorage = dec("250")
	p.PeriodGrowth = dec("10")
	p.Rates.Storage = dec("0.5")

	z := Reset(p)

	assert.Equal(t, 36, z.Periods)
	assertDecimal(t, "250", z.InitialStorage, "initial")
	assert.True(t, z.PeriodGrowth.IsZero())
	assert.Zero(t, z.Operations.Write+z.Operations.Read+z.Operations.Delete+z.Operations.Transition)
	assert.True(t, z.Recovery.Standard.IsZero())
	assert.True(t, z.Recovery.Bulk.IsZero())
	assertDecimal(t, "0.00099", z.Rates.Storage, "storage rate")
}

func TestArchivePreset(t *testing.T) {
	cfg := config.Default()
	cfg.Archive.Rates.StorageGBMonth = 0.002

	p, err := ArchivePreset(PresetZero, cfg)
	require.NoError(t, err)
	assertDecimal(t, "0.002", p.Rates.Storage, "configured rate")
	assert.True(t, p.Recovery.Bulk.IsZero())

	p, err = ArchivePreset("", cfg)
	require.NoError(t, err)
	assertDecimal(t, "500", p.Recovery.Bulk, "bulk")

	_, err = ArchivePreset("weekly", cfg)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestEndpointAndDedicatedLinePresets(t *testing.T) {
	cfg := config.Default()

	e, err := Endpoint(cfg.Endpoint, cfg.Currency)
	require.NoError(t, err)
	assertDecimal(t, "0.01", e.HourlyRatePerAZ, "hourly rate")
	assert.Equal(t, int64(1), e.AZCount)
	assert.Equal(t, int64(730), e.Hours)

	d, err := DedicatedLine(cfg.DedicatedLine, cfg.Currency)
	require.NoError(t, err)
	assert.Equal(t, calculators.PortDedicated, d.PortType)
	assert.Equal(t, "1 Gbps", d.Capacity)
	assert.Equal(t, int64(730), d.Hours)
	assertDecimal(t, "0.02", d.TransferRatePerGB, "transfer rate")
}

func TestLoadArchiveFormats(t *testing.T) {
	files := map[string]string{
		"params.json": `{"periods": 12, "period_growth": 10, "operations": {"read": 400}, "rates": {"storage": 0.001}}`,
		"params.yaml": "periods: 12\nperiod_growth: 10\noperations:\n  read: 400\nrates:\n  storage: 0.001\n",
		"params.hcl":  "periods = 12\nperiod_growth = 10\noperations {\n  read = 400\n}\nrates {\n  storage = 0.001\n}\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			p, err := LoadArchive(writeFile(t, name, content), DefaultArchive())
			require.NoError(t, err)

			assert.Equal(t, 12, p.Periods)
			assertDecimal(t, "10", p.PeriodGrowth, "growth")
			assert.Equal(t, int64(400), p.Operations.Read)
			assertDecimal(t, "0.001", p.Rates.Storage, "storage rate")

			// untouched fields keep the base preset
			assertDecimal(t, "1", p.InitialStorage, "initial")
			assert.Equal(t, int64(1000), p.Operations.Write)
			assertDecimal(t, "0.05", p.Rates.Write, "write rate")
			assertDecimal(t, "500", p.Recovery.Bulk, "bulk")
		})
	}
}

func TestLoadArchiveEmptyFileKeepsBase(t *testing.T) {
	base := DefaultArchive()
	p, err := LoadArchive(writeFile(t, "empty.yaml", ""), base)
	require.NoError(t, err)
	assert.Equal(t, base, p)
}

func TestLoadArchiveErrors(t *testing.T) {
	_, err := LoadArchive(writeFile(t, "params.toml", "periods = 1"), DefaultArchive())
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))

	_, err = LoadArchive(writeFile(t, "params.json", `{"periods": "twelve"}`), DefaultArchive())
	assert.True(t, errors.IsType(err, errors.TypeParsing))

	_, err = LoadArchive(writeFile(t, "params.yaml", "months: 12\n"), DefaultArchive())
	assert.True(t, errors.IsType(err, errors.TypeParsing), "unknown keys are rejected")

	_, err = LoadArchive(filepath.Join(t.TempDir(), "missing.json"), DefaultArchive())
	require.Error(t, err)
	e, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.TypeParsing, e.Type)
}

func TestLoadDedicatedLineNormalizesPortType(t *testing.T) {
	base, err := DedicatedLine(config.Default().DedicatedLine, types.CurrencyUSD)
	require.NoError(t, err)
	path := writeFile(t, "line.yaml", "port_type: Hosted\ncapacity: 500 Mbps\nlocations: 2\n")

	p, err := LoadDedicatedLine(path, base)
	require.NoError(t, err)
	assert.Equal(t, calculators.PortHosted, p.PortType)
	assert.Equal(t, "500 Mbps", p.Capacity)
	assert.Equal(t, int64(2), p.Locations)
	assert.Equal(t, int64(1), p.PortsPerLocation)
}

func TestDecodeEndpoint(t *testing.T) {
	base, err := Endpoint(config.Default().Endpoint, types.CurrencyUSD)
	require.NoError(t, err)
	p, err := DecodeEndpoint([]byte(`{"az_count": 3, "processed_gb": 2500, "currency": "eur"}`), FormatJSON, base)
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.AZCount)
	assertDecimal(t, "2500", p.ProcessedGB, "processed")
	assert.Equal(t, types.CurrencyEUR, p.Currency)
	assert.Equal(t, int64(730), p.Hours)
}

func TestEnvelopeInputHash(t *testing.T) {
	a, err := NewEnvelope(SourceInfo{Type: SourceCLI}, types.CalculatorArchive, DefaultArchive())
	require.NoError(t, err)
	b, err := NewEnvelope(SourceInfo{Type: SourceAPI}, types.CalculatorArchive, DefaultArchive())
	require.NoError(t, err)

	assert.Equal(t, a.Metadata.InputHash, b.Metadata.InputHash)
	assert.Len(t, a.Metadata.InputHash, 64)
	assert.NotEqual(t, a.Metadata.RequestID, b.Metadata.RequestID)

	changed := DefaultArchive()
	changed.Periods = 2
	c, err := NewEnvelope(SourceInfo{Type: SourceCLI}, types.CalculatorArchive, changed)
	require.NoError(t, err)
	assert.NotEqual(t, a.Metadata.InputHash, c.Metadata.InputHash)

	assert.Equal(t, "upstream-id", c.WithRequestID("upstream-id").Metadata.RequestID)
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	e, ok := errors.As(err)
	require.True(t, ok, "expected a typed error, got %v", err)
	require.Equal(t, errors.TypeInput, e.Type)

	var names []string
	for _, f := range e.Fields {
		assert.Equal(t, "finite", f.Rule)
		names = append(names, f.Field)
	}
	return names
}

func TestDecodeRejectsNonFiniteNumbers(t *testing.T) {
	base := DefaultArchive()

	p, err := DecodeArchive([]byte("initial_storage: .inf\nrates:\n  storage: .nan\n  bulk_recovery: -.inf\n"), FormatYAML, base)
	assert.Equal(t, []string{"initial_storage", "rates.storage", "rates.bulk_recovery"}, fieldNames(t, err))
	assert.Equal(t, base, p, "the base is returned untouched")

	_, err = DecodeEndpoint([]byte("processed_gb: .NaN\n"), FormatYAML, calculators.EndpointParams{})
	assert.Equal(t, []string{"processed_gb"}, fieldNames(t, err))

	_, err = LoadDedicatedLine(writeFile(t, "line.yaml", "transfer_rate_per_gb: .inf\n"), calculators.DedicatedLineParams{})
	assert.Equal(t, []string{"transfer_rate_per_gb"}, fieldNames(t, err))
}

func TestPresetsRejectNonFiniteEnvironment(t *testing.T) {
	t.Setenv("AWSCOSTCALC_ARCHIVE_RATES_STORAGE_GB_MONTH", "NaN")
	t.Setenv("AWSCOSTCALC_ENDPOINT_RATE_PER_GB", "+Inf")
	t.Setenv("AWSCOSTCALC_DEDICATED_LINE_TRANSFER_OUT_GB", "-Inf")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())

	_, err := ArchivePreset(PresetDefault, cfg)
	assert.Equal(t, []string{"archive.rates.storage_gb_month"}, fieldNames(t, err))

	_, err = Endpoint(cfg.Endpoint, cfg.Currency)
	assert.Equal(t, []string{"endpoint.rate_per_gb"}, fieldNames(t, err))

	_, err = DedicatedLine(cfg.DedicatedLine, cfg.Currency)
	assert.Equal(t, []string{"dedicated_line.transfer_out_gb"}, fieldNames(t, err))
}

func TestNumbers(t *testing.T) {
	var n Numbers
	assert.NoError(t, n.Err())

	assertDecimal(t, "0.25", n.Decimal("a", 0.25), "finite")
	assert.NoError(t, n.Err())

	v := 7.5
	var dst decimal.Decimal
	n.Set("b", &dst, nil)
	assert.True(t, dst.IsZero(), "nil leaves dst untouched")
	n.Set("b", &dst, &v)
	assertDecimal(t, "7.5", dst, "set")

	assert.True(t, n.Decimal("c", math.NaN()).IsZero())
	assert.Equal(t, []string{"c"}, fieldNames(t, n.Err()))
}
