package property

import (
	"reflect"
	"time"
)

// unsupported is the value of scalars the rule has no representation for.
const unsupported = ""

// scalarClass is the closed set of cases handled by the scalar rule.
type scalarClass uint8

const (
	scalarUnsupported scalarClass = iota
	scalarText
	scalarInteger
	scalarFloat
	scalarBool
	scalarTime
)

func classifyScalar(v any) scalarClass {
	switch v.(type) {
	case nil:
		return scalarUnsupported
	case time.Time:
		return scalarTime
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return scalarText
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalarInteger
	case reflect.Float32, reflect.Float64:
		return scalarFloat
	case reflect.Bool:
		return scalarBool
	default:
		return scalarUnsupported
	}
}

// Scalar applies the scalar rule to a plain value. Pointers are followed
// first, so a nullable column normalizes like its value and a nil pointer
// like nil:
//
//   - strings and integers are returned unchanged (floats as well);
//   - time.Time values are formatted with TimeLayout;
//   - booleans become "+" or "-" in Display mode and are unchanged in Form mode;
//   - anything else becomes the empty string.
func Scalar(v any, mode Mode) any {
	v = deref(v)
	switch classifyScalar(v) {
	case scalarText, scalarInteger, scalarFloat:
		return v
	case scalarTime:
		return v.(time.Time).Format(TimeLayout)
	case scalarBool:
		if mode == Form {
			return v
		}
		if reflect.ValueOf(v).Bool() {
			return "+"
		}
		return "-"
	default:
		return unsupported
	}
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}
