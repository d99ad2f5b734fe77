package input

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/core/types"
	"aws-cost-calc/internal/errors"
)

// Format is a parameter file syntax
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the syntax from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.Newf(errors.TypeNotSupported, "unsupported parameter file extension %q", filepath.Ext(path))
	}
}

// Parameter files mirror the parameter structs with pointer fields, so a
// file only overrides what it names.

type archiveFile struct {
	Periods        *int           `json:"periods" yaml:"periods" hcl:"periods,optional"`
	InitialStorage *float64       `json:"initial_storage" yaml:"initial_storage" hcl:"initial_storage,optional"`
	PeriodGrowth   *float64       `json:"period_growth" yaml:"period_growth" hcl:"period_growth,optional"`
	Currency       *string        `json:"currency" yaml:"currency" hcl:"currency,optional"`
	Operations     *operationFile `json:"operations" yaml:"operations" hcl:"operations,block"`
	Recovery       *recoveryFile  `json:"recovery" yaml:"recovery" hcl:"recovery,block"`
	Rates          *ratesFile     `json:"rates" yaml:"rates" hcl:"rates,block"`
}

type operationFile struct {
	Write      *int64 `json:"write" yaml:"write" hcl:"write,optional"`
	Read       *int64 `json:"read" yaml:"read" hcl:"read,optional"`
	Delete     *int64 `json:"delete" yaml:"delete" hcl:"delete,optional"`
	Transition *int64 `json:"transition" yaml:"transition" hcl:"transition,optional"`
}

type recoveryFile struct {
	Standard *float64 `json:"standard" yaml:"standard" hcl:"standard,optional"`
	Bulk     *float64 `json:"bulk" yaml:"bulk" hcl:"bulk,optional"`
}

type ratesFile struct {
	Storage          *float64 `json:"storage" yaml:"storage" hcl:"storage,optional"`
	Write            *float64 `json:"write" yaml:"write" hcl:"write,optional"`
	Read             *float64 `json:"read" yaml:"read" hcl:"read,optional"`
	Delete           *float64 `json:"delete" yaml:"delete" hcl:"delete,optional"`
	Transition       *float64 `json:"transition" yaml:"transition" hcl:"transition,optional"`
	StandardRecovery *float64 `json:"standard_recovery" yaml:"standard_recovery" hcl:"standard_recovery,optional"`
	BulkRecovery     *float64 `json:"bulk_recovery" yaml:"bulk_recovery" hcl:"bulk_recovery,optional"`
}

func (f *archiveFile) apply(p projection.Params) (projection.Params, error) {
	var n Numbers
	if f.Periods != nil {
		p.Periods = *f.Periods
	}
	n.Set("initial_storage", &p.InitialStorage, f.InitialStorage)
	n.Set("period_growth", &p.PeriodGrowth, f.PeriodGrowth)
	setCurrency(&p.Currency, f.Currency)

	if o := f.Operations; o != nil {
		setInt64(&p.Operations.Write, o.Write)
		setInt64(&p.Operations.Read, o.Read)
		setInt64(&p.Operations.Delete, o.Delete)
		setInt64(&p.Operations.Transition, o.Transition)
	}
	if r := f.Recovery; r != nil {
		n.Set("recovery.standard", &p.Recovery.Standard, r.Standard)
		n.Set("recovery.bulk", &p.Recovery.Bulk, r.Bulk)
	}
	if r := f.Rates; r != nil {
		n.Set("rates.storage", &p.Rates.Storage, r.Storage)
		n.Set("rates.write", &p.Rates.Write, r.Write)
		n.Set("rates.read", &p.Rates.Read, r.Read)
		n.Set("rates.delete", &p.Rates.Delete, r.Delete)
		n.Set("rates.transition", &p.Rates.Transition, r.Transition)
		n.Set("rates.standard_recovery", &p.Rates.StandardRecovery, r.StandardRecovery)
		n.Set("rates.bulk_recovery", &p.Rates.BulkRecovery, r.BulkRecovery)
	}
	return p, n.Err()
}

type endpointFile struct {
	HourlyRatePerAZ *float64 `json:"hourly_rate_per_az" yaml:"hourly_rate_per_az" hcl:"hourly_rate_per_az,optional"`
	AZCount         *int64   `json:"az_count" yaml:"az_count" hcl:"az_count,optional"`
	Hours           *int64   `json:"hours" yaml:"hours" hcl:"hours,optional"`
	RatePerGB       *float64 `json:"rate_per_gb" yaml:"rate_per_gb" hcl:"rate_per_gb,optional"`
	ProcessedGB     *float64 `json:"processed_gb" yaml:"processed_gb" hcl:"processed_gb,optional"`
	Currency        *string  `json:"currency" yaml:"currency" hcl:"currency,optional"`
}

func (f *endpointFile) apply(p calculators.EndpointParams) (calculators.EndpointParams, error) {
	var n Numbers
	n.Set("hourly_rate_per_az", &p.HourlyRatePerAZ, f.HourlyRatePerAZ)
	setInt64(&p.AZCount, f.AZCount)
	setInt64(&p.Hours, f.Hours)
	n.Set("rate_per_gb", &p.RatePerGB, f.RatePerGB)
	n.Set("processed_gb", &p.ProcessedGB, f.ProcessedGB)
	setCurrency(&p.Currency, f.Currency)
	return p, n.Err()
}

type dedicatedLineFile struct {
	Locations         *int64   `json:"locations" yaml:"locations" hcl:"locations,optional"`
	PortsPerLocation  *int64   `json:"ports_per_location" yaml:"ports_per_location" hcl:"ports_per_location,optional"`
	PortType          *string  `json:"port_type" yaml:"port_type" hcl:"port_type,optional"`
	Capacity          *string  `json:"capacity" yaml:"capacity" hcl:"capacity,optional"`
	Hours             *int64   `json:"hours" yaml:"hours" hcl:"hours,optional"`
	TransferOutGB     *float64 `json:"transfer_out_gb" yaml:"transfer_out_gb" hcl:"transfer_out_gb,optional"`
	TransferRatePerGB *float64 `json:"transfer_rate_per_gb" yaml:"transfer_rate_per_gb" hcl:"transfer_rate_per_gb,optional"`
	Currency          *string  `json:"currency" yaml:"currency" hcl:"currency,optional"`
}

func (f *dedicatedLineFile) apply(p calculators.DedicatedLineParams) (calculators.DedicatedLineParams, error) {
	var n Numbers
	setInt64(&p.Locations, f.Locations)
	setInt64(&p.PortsPerLocation, f.PortsPerLocation)
	if f.PortType != nil {
		// unknown names pass through for validation to report
		if pt, err := calculators.ParsePortType(*f.PortType); err == nil {
			p.PortType = pt
		} else {
			p.PortType = calculators.PortType(*f.PortType)
		}
	}
	if f.Capacity != nil {
		p.Capacity = *f.Capacity
	}
	setInt64(&p.Hours, f.Hours)
	n.Set("transfer_out_gb", &p.TransferOutGB, f.TransferOutGB)
	n.Set("transfer_rate_per_gb", &p.TransferRatePerGB, f.TransferRatePerGB)
	setCurrency(&p.Currency, f.Currency)
	return p, n.Err()
}

// DecodeArchive overlays an archive parameter document onto base
func DecodeArchive(data []byte, format Format, base projection.Params) (projection.Params, error) {
	var f archiveFile
	if err := decode(data, format, &f); err != nil {
		return base, err
	}
	p, err := f.apply(base)
	if err != nil {
		return base, err
	}
	return p, nil
}

// DecodeEndpoint overlays an endpoint parameter document onto base
func DecodeEndpoint(data []byte, format Format, base calculators.EndpointParams) (calculators.EndpointParams, error) {
	var f endpointFile
	if err := decode(data, format, &f); err != nil {
		return base, err
	}
	p, err := f.apply(base)
	if err != nil {
		return base, err
	}
	return p, nil
}

// DecodeDedicatedLine overlays a dedicated-line parameter document onto base
func DecodeDedicatedLine(data []byte, format Format, base calculators.DedicatedLineParams) (calculators.DedicatedLineParams, error) {
	var f dedicatedLineFile
	if err := decode(data, format, &f); err != nil {
		return base, err
	}
	p, err := f.apply(base)
	if err != nil {
		return base, err
	}
	return p, nil
}

// LoadArchive reads an archive parameter file and overlays it onto base
func LoadArchive(path string, base projection.Params) (projection.Params, error) {
	data, format, err := read(path)
	if err != nil {
		return base, err
	}
	p, err := DecodeArchive(data, format, base)
	return p, withPath(err, path)
}

// LoadEndpoint reads an endpoint parameter file and overlays it onto base
func LoadEndpoint(path string, base calculators.EndpointParams) (calculators.EndpointParams, error) {
	data, format, err := read(path)
	if err != nil {
		return base, err
	}
	p, err := DecodeEndpoint(data, format, base)
	return p, withPath(err, path)
}

// LoadDedicatedLine reads a dedicated-line parameter file and overlays it onto base
func LoadDedicatedLine(path string, base calculators.DedicatedLineParams) (calculators.DedicatedLineParams, error) {
	data, format, err := read(path)
	if err != nil {
		return base, err
	}
	p, err := DecodeDedicatedLine(data, format, base)
	return p, withPath(err, path)
}

func read(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(errors.TypeParsing, err, "failed to read parameter file %s", path)
	}
	return data, format, nil
}

func decode(data []byte, format Format, target interface{}) error {
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(target)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(target)
	case FormatHCL:
		// hclsimple picks native syntax from the .hcl suffix
		err = hclsimple.Decode("params.hcl", data, nil, target)
	default:
		return errors.Newf(errors.TypeNotSupported, "unsupported parameter format %q", format)
	}

	// an empty document overrides nothing
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.Parsing("invalid "+string(format)+" parameters", err)
	}
	return nil
}

func withPath(err error, path string) error {
	if e, ok := errors.As(err); ok {
		return e.WithContext("path", path)
	}
	return err
}

func setInt64(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}

func setCurrency(dst *types.Currency, v *string) {
	if v != nil {
		*dst = types.Currency(strings.ToUpper(*v))
	}
}
