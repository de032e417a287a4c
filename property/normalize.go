package property

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Rendering constants.
const (
	// Placeholder is displayed for absent references and empty collections.
	Placeholder = "-"
	// Separator joins the display values of a collection.
	Separator = ", "
	// TimeLayout formats date/time values (DD.MM.YYYY HH:MM:SS).
	TimeLayout = "02.01.2006 15:04:05"
)

// Identifiable is implemented by entity values that expose an identifier.
type Identifiable interface {
	EntityID() any
}

// Displayable is implemented by entity values that can represent themselves
// inside another entity's reference. DisplayValue returns the value of the
// entity's display-name property; it is rendered with the scalar rule.
type Displayable interface {
	DisplayValue() any
}

// Normalize converts a raw property value into its display or form
// representation. The conversion depends only on the descriptor kind.
//
//	kind            Display                      Form
//	Column, Id      scalar rule                  scalar rule, bools unchanged
//	ReferenceOne    display value or "-"         entity id or 0
//	ReferenceMany   display values joined, "-"   []any of entity ids
func (d *Descriptor) Normalize(v any, mode Mode) any {
	switch d.kind {
	case ReferenceOne:
		return normalizeOne(v, mode)
	case ReferenceMany:
		return normalizeMany(v, mode)
	default:
		return Scalar(v, mode)
	}
}

// NormalizeAll normalizes a record of property values. Every descriptor
// produces an entry; properties missing from values are normalized as nil.
func NormalizeAll(descs map[string]*Descriptor, values map[string]any, mode Mode) map[string]any {
	out := make(map[string]any, len(descs))
	for name, d := range descs {
		out[name] = d.Normalize(values[name], mode)
	}
	return out
}

func normalizeOne(v any, mode Mode) any {
	if absent(v) {
		if mode == Form {
			return 0
		}
		return Placeholder
	}
	if mode == Form {
		return identify(v)
	}
	return display(v)
}

func normalizeMany(v any, mode Mode) any {
	elems := elements(v)
	if mode == Form {
		ids := make([]any, 0, len(elems))
		for _, e := range elems {
			ids = append(ids, identify(e))
		}
		return ids
	}
	if len(elems) == 0 {
		return Placeholder
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = fmt.Sprint(display(e))
	}
	return strings.Join(parts, Separator)
}

// display renders a referenced entity through its display value.
func display(v any) any {
	if isNil(v) {
		return unsupported
	}
	d, ok := v.(Displayable)
	if !ok {
		return unsupported
	}
	return Scalar(d.DisplayValue(), Display)
}

func identify(v any) any {
	if isNil(v) {
		return nil
	}
	if e, ok := v.(Identifiable); ok {
		return e.EntityID()
	}
	return nil
}

// absent reports whether a single reference is missing. Any zero
// value counts, not only nil.
func absent(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

// isNil reports whether v is nil or holds a nil reference.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// elements returns the members of a collection value: the elements of a
// slice or array, the values of a map in key order, or the values yielded
// by an iter.Seq or iter.Seq2. Anything else is an empty collection.
func elements(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return elems
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, compareKeys)
		elems := make([]any, len(keys))
		for i, k := range keys {
			elems[i] = rv.MapIndex(k).Interface()
		}
		return elems
	case reflect.Func:
		return drain(rv)
	default:
		return nil
	}
}

// drain collects what an iterator function yields. For iter.Seq2 the
// second value is kept.
func drain(fn reflect.Value) []any {
	if fn.IsNil() {
		return nil
	}
	var elems []any
	switch iteratorArity(fn.Type()) {
	case 1:
		for v := range fn.Seq() {
			elems = append(elems, v.Interface())
		}
	case 2:
		for _, v := range fn.Seq2() {
			elems = append(elems, v.Interface())
		}
	}
	return elems
}

// iteratorArity returns the number of values t yields if t has the shape
// func(yield func(...) bool), or 0 otherwise.
func iteratorArity(t reflect.Type) int {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return 0
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.IsVariadic() || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return 0
	}
	if n := yield.NumIn(); n == 1 || n == 2 {
		return n
	}
	return 0
}

// compareKeys orders map keys of the same type.
func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	default:
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}
