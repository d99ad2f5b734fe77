// Package validation checks calculator parameters at the CLI and API boundary.
// The engines trust their input; everything they assume is enforced here.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"aws-cost-calc/core/calculators"
	"aws-cost-calc/core/projection"
	"aws-cost-calc/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		// Decimals are checked by sign only, so the float view is exact enough
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})

		if err := v.RegisterValidation("nonneg", nonNegative); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func nonNegative(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.Int() >= 0
	case reflect.Float32, reflect.Float64:
		return f.Float() >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Archive checks a projection's parameters
func Archive(p projection.Params) error {
	return check("archive", p, nil)
}

// Endpoint checks an endpoint estimate's parameters
func Endpoint(p calculators.EndpointParams) error {
	return check("endpoint", p, nil)
}

// DedicatedLine checks a dedicated-line estimate's parameters,
// including that the capacity is sold for the port type.
func DedicatedLine(p calculators.DedicatedLineParams) error {
	return check("dedicated-line", p, func(e *errors.Error) {
		if hasField(e, "port_type") || hasField(e, "capacity") {
			return
		}
		if _, err := calculators.PortRate(p.PortType, p.Capacity); err != nil {
			e.WithField("capacity", "capacity",
				fmt.Sprintf("%q is not offered for %s ports", p.Capacity, p.PortType))
		}
	})
}

func check(calculator string, params interface{}, extra func(*errors.Error)) error {
	e := errors.Input(fmt.Sprintf("invalid %s parameters", calculator))

	if err := instance().Struct(params); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return errors.Internal("validator failed", err)
		}
		for _, fe := range verrs {
			e.WithField(fieldPath(fe), fe.Tag(), reason(fe))
		}
	}
	if extra != nil {
		extra(e)
	}

	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// fieldPath drops the root struct name: "Params.rates.storage" -> "rates.storage"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "nonneg":
		return "must not be negative"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func hasField(e *errors.Error, name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
