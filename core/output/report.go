package output

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/input"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/core/types"
)

// Display precision. The archive projection deals in fractions of a cent.
const (
	ArchivePlaces = 5
	FlatPlaces    = 2
)

// Report is a rendered-agnostic view of one calculation
type Report struct {
	Calculator types.Calculator `json:"calculator"`
	Title      string           `json:"title"`
	Currency   types.Currency   `json:"currency"`

	// Tables are shown in order; numbers in rows carry no currency symbol
	Tables []Table `json:"-"`

	// Summary is the headline figures, already formatted
	Summary []Metric `json:"summary"`

	// Params and Result are the typed inputs and outputs for machine formats
	Params interface{} `json:"params"`
	Result interface{} `json:"result"`

	Metadata Metadata `json:"metadata"`
}

// Table is a titled grid of cells
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// Column heads a table column
type Column struct {
	Title string

	// Numeric cells are right-aligned and written as numbers to spreadsheets
	Numeric bool
}

// Metric is one summary line
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metadata identifies the calculation behind a report
type Metadata struct {
	RequestID   string    `json:"request_id,omitempty"`
	InputHash   string    `json:"input_hash,omitempty"`
	Source      string    `json:"source,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version,omitempty"`
}

// WithEnvelope copies the request identity into the report
func (r *Report) WithEnvelope(env *input.Envelope) *Report {
	if env == nil {
		return r
	}
	r.Metadata.RequestID = env.Metadata.RequestID
	r.Metadata.InputHash = env.Metadata.InputHash
	r.Metadata.Source = env.Source.Type.String()
	return r
}

// WithVersion stamps the tool version
func (r *Report) WithVersion(v string) *Report {
	r.Metadata.Version = v
	return r
}

// ArchiveResult is the machine-readable result of a projection
type ArchiveResult struct {
	Records []projection.PeriodCostRecord `json:"records"`
	Summary projection.Summary            `json:"summary"`
}

// ArchiveReport builds the report of a projection
func ArchiveReport(p projection.Params, records []projection.PeriodCostRecord, s projection.Summary) *Report {
	sym := p.Currency.Symbol()
	money := func(d decimal.Decimal) string { return sym + d.StringFixed(ArchivePlaces) }

	periods := Table{
		Name: "Periods",
		Columns: []Column{
			{Title: "Period", Numeric: true},
			{Title: "Storage (GB)", Numeric: true},
			{Title: "Storage Cost", Numeric: true},
			{Title: "Operation Cost", Numeric: true},
			{Title: "Recovery Cost", Numeric: true},
			{Title: "Total Cost", Numeric: true},
		},
	}
	for _, rec := range records {
		periods.Rows = append(periods.Rows, []string{
			strconv.Itoa(rec.Period),
			rec.Storage.String(),
			rec.StorageCost.StringFixed(ArchivePlaces),
			rec.OperationCost.StringFixed(ArchivePlaces),
			rec.RecoveryCost.StringFixed(ArchivePlaces),
			rec.TotalCost.StringFixed(ArchivePlaces),
		})
	}

	charges := breakdownTable("Per-Period Charges", ArchivePlaces,
		projection.OperationBreakdown(p), projection.RecoveryBreakdown(p))

	return &Report{
		Calculator: types.CalculatorArchive,
		Title:      "Archive Storage Projection",
		Currency:   currencyOrDefault(p.Currency),
		Tables:     []Table{periods, charges},
		Summary: []Metric{
			{"Periods", strconv.Itoa(s.Periods)},
			{"Final storage", s.FinalStorage.String() + " GB"},
			{"Storage cost", money(s.StorageCost)},
			{"Operation cost", money(s.OperationCost)},
			{"Recovery cost", money(s.RecoveryCost)},
			{"Peak period", money(s.PeakPeriodCost)},
			{"Total", money(s.TotalCost)},
		},
		Params:   p,
		Result:   ArchiveResult{Records: records, Summary: s},
		Metadata: Metadata{GeneratedAt: time.Now().UTC()},
	}
}

// EndpointReport builds the report of an endpoint estimate
func EndpointReport(p calculators.EndpointParams, est calculators.EndpointEstimate) *Report {
	sym := p.Currency.Symbol()
	money := func(d decimal.Decimal) string { return sym + d.StringFixed(FlatPlaces) }

	return &Report{
		Calculator: types.CalculatorEndpoint,
		Title:      "Private Endpoint Estimate",
		Currency:   currencyOrDefault(p.Currency),
		Tables:     []Table{breakdownTable("Charges", FlatPlaces, est.Breakdown)},
		Summary: []Metric{
			{"Hourly cost", money(est.HourlyCost) + "/h"},
			{"AZ cost", money(est.AZCost)},
			{"Data processing", money(est.DataCost)},
			{"Total", money(est.Total)},
		},
		Params:   p,
		Result:   est,
		Metadata: Metadata{GeneratedAt: time.Now().UTC()},
	}
}

// DedicatedLineReport builds the report of a dedicated-line estimate
func DedicatedLineReport(p calculators.DedicatedLineParams, est calculators.DedicatedLineEstimate) *Report {
	sym := p.Currency.Symbol()
	money := func(d decimal.Decimal) string { return sym + d.StringFixed(FlatPlaces) }

	return &Report{
		Calculator: types.CalculatorDedicatedLine,
		Title:      "Dedicated Line Estimate",
		Currency:   currencyOrDefault(p.Currency),
		Tables:     []Table{breakdownTable("Charges", FlatPlaces, est.Breakdown)},
		Summary: []Metric{
			{"Total ports", strconv.FormatInt(est.TotalPorts, 10)},
			{"Port rate", money(est.HourlyPortRate) + "/h"},
			{"Port charges", money(est.PortCharges)},
			{"Transfer charges", money(est.TransferCharges)},
			{"Total", money(est.Total)},
		},
		Params:   p,
		Result:   est,
		Metadata: Metadata{GeneratedAt: time.Now().UTC()},
	}
}

// CapacitiesReport lists the hourly port prices of every port type
func CapacitiesReport(currency types.Currency) *Report {
	t := Table{
		Name: "Port Capacities",
		Columns: []Column{
			{Title: "Port Type"},
			{Title: "Capacity"},
			{Title: "Hourly Rate", Numeric: true},
		},
	}
	prices := make(map[calculators.PortType][]calculators.PortPrice)
	for _, pt := range calculators.PortTypes() {
		prices[pt] = calculators.Capacities(pt)
		for _, price := range prices[pt] {
			t.Rows = append(t.Rows, []string{string(pt), price.Capacity, price.HourlyRate.StringFixed(FlatPlaces)})
		}
	}

	return &Report{
		Calculator: types.CalculatorDedicatedLine,
		Title:      "Dedicated Line Port Prices",
		Currency:   currencyOrDefault(currency),
		Tables:     []Table{t},
		Result:     prices,
		Metadata:   Metadata{GeneratedAt: time.Now().UTC()},
	}
}

func breakdownTable(name string, places int32, breakdowns ...*types.CostBreakdown) Table {
	t := Table{
		Name: name,
		Columns: []Column{
			{Title: "Component"},
			{Title: "Quantity", Numeric: true},
			{Title: "Unit"},
			{Title: "Rate", Numeric: true},
			{Title: "Amount", Numeric: true},
		},
	}
	for _, b := range breakdowns {
		if b == nil {
			continue
		}
		for _, u := range b.Units {
			t.Rows = append(t.Rows, []string{
				u.Label,
				u.Quantity.String(),
				u.Measure,
				u.Rate.String(),
				u.Amount.StringFixed(places),
			})
		}
	}
	return t
}

func currencyOrDefault(c types.Currency) types.Currency {
	if c == "" {
		return types.CurrencyUSD
	}
	return c
}
