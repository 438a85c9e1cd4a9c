package actuator

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// RenderReport writes v, typically a *planner.Report, to w in format with every
// float rounded to decimals places. v itself is not modified.
func RenderReport(w io.Writer, v any, format string, decimals int32) error {
	rounded := Round(v, decimals)
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rounded); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rounded); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// RoundFloat rounds f half away from zero to decimals places using decimal
// arithmetic. A negative value never rounds to zero: it keeps the smallest
// negative step instead, so a negative load still reads as negative.
// Non-finite values are returned unchanged.
func RoundFloat(f float64, decimals int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	d := decimal.NewFromFloat(f)
	rounded := d.Round(decimals)
	if f < 0 && rounded.IsZero() {
		rounded = d.RoundUp(decimals)
	}
	return rounded.InexactFloat64()
}

// Round returns a deep copy of v with every float rounded to decimals places.
func Round(v any, decimals int32) any {
	if v == nil {
		return nil
	}
	return roundValue(reflect.ValueOf(v), decimals).Interface()
}

func roundValue(v reflect.Value, decimals int32) reflect.Value {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		out := reflect.New(v.Type()).Elem()
		out.SetFloat(RoundFloat(v.Float(), decimals))
		return out
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(roundValue(v.Elem(), decimals))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(roundValue(v.Elem(), decimals))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if out.Field(i).CanSet() {
				out.Field(i).Set(roundValue(v.Field(i), decimals))
			}
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(roundValue(v.Index(i), decimals))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(roundValue(v.Index(i), decimals))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), roundValue(iter.Value(), decimals))
		}
		return out
	default:
		return v
	}
}
