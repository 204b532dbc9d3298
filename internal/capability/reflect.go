package capability

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"unicode/utf8"

	"github.com/gnoswap-labs/truth/internal/repr"
)

var intType = reflect.TypeFor[int]()

// IsNumeric reports whether t is an integer, floating point or complex kind.
func IsNumeric(t reflect.Type) bool {
	return isInt(t.Kind()) || isUint(t.Kind()) || isFloat(t.Kind()) || isComplex(t.Kind())
}

// IsComplex reports whether t is a complex kind.
func IsComplex(t reflect.Type) bool {
	return isComplex(t.Kind())
}

// IsOrdered reports whether values of t can be compared with <: real
// numbers, strings, and types with a Compare(T) int or Cmp(T) int method.
func IsOrdered(t reflect.Type) bool {
	k := t.Kind()
	if isInt(k) || isUint(k) || isFloat(k) || k == reflect.String {
		return true
	}
	_, ok := compareMethod(t)
	return ok
}

// IsIterable reports whether values of t have elements: slices, arrays,
// strings, maps (their keys) and iter.Seq functions.
func IsIterable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.String, reflect.Map:
		return true
	case reflect.Func:
		return isSeq(t)
	}
	return false
}

// Elements materializes the elements of an iterable value. Strings yield
// one-rune strings; maps yield their keys in sorted order.
func Elements(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.String:
		s := rv.String()
		out := make([]any, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out, true
	case reflect.Map:
		return SortedKeys(rv), true
	case reflect.Func:
		if !isSeq(rv.Type()) || rv.IsNil() {
			return nil, isSeq(rv.Type())
		}
		var out []any
		for x := range rv.Seq() {
			out = append(out, x.Interface())
		}
		return out, true
	}
	return nil, false
}

// SortedKeys returns the keys of the map m in a deterministic order: by
// Compare when the keys are mutually ordered, otherwise by representation.
func SortedKeys(m reflect.Value) []any {
	keys := make([]any, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, k.Interface())
	}
	slices.SortStableFunc(keys, func(a, b any) int {
		if c, err := Compare(a, b); err == nil {
			return c
		}
		return cmp.Compare(repr.Value(a), repr.Value(b))
	})
	return keys
}

// Len returns the number of elements of an iterable value, counting runes
// for strings.
func Len(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	}
	elems, ok := Elements(v)
	return len(elems), ok
}

// Compare returns -1, 0 or +1 as a is less than, equal to or greater than
// b. Mixed integer, unsigned and float operands are compared numerically.
// NaN orders before every other float.
func Compare(a, b any) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("cannot order %s and %s", repr.Value(a), repr.Value(b))
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := va.Kind(), vb.Kind()

	switch {
	case isReal(ka) && isReal(kb):
		return compareNumbers(va, vb), nil
	case ka == reflect.String && kb == reflect.String:
		return cmp.Compare(va.String(), vb.String()), nil
	}

	if m, ok := compareMethod(va.Type()); ok && vb.Type().AssignableTo(m.Type.In(1)) {
		out := m.Func.Call([]reflect.Value{va, vb})
		return cmp.Compare(out[0].Int(), 0), nil
	}
	return 0, fmt.Errorf("cannot order %T and %T", a, b)
}

func compareNumbers(a, b reflect.Value) int {
	ka, kb := a.Kind(), b.Kind()
	switch {
	case isFloat(ka) || isFloat(kb):
		return cmp.Compare(toFloat(a), toFloat(b))
	case isInt(ka) && isInt(kb):
		return cmp.Compare(a.Int(), b.Int())
	case isUint(ka) && isUint(kb):
		return cmp.Compare(a.Uint(), b.Uint())
	case isInt(ka):
		if a.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Int()), b.Uint())
	default:
		if b.Int() < 0 {
			return 1
		}
		return cmp.Compare(a.Uint(), uint64(b.Int()))
	}
}

// compareMethod finds a Compare or Cmp method taking the receiver's own type
// and returning an int.
func compareMethod(t reflect.Type) (reflect.Method, bool) {
	for _, name := range []string{"Compare", "Cmp"} {
		m, ok := t.MethodByName(name)
		if !ok {
			continue
		}
		ft := m.Type
		if ft.NumIn() == 2 && ft.NumOut() == 1 && ft.In(1) == t && ft.Out(0) == intType {
			return m, true
		}
	}
	return reflect.Method{}, false
}

// Float converts a real number to float64.
func Float(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	if v == nil || !isReal(rv.Kind()) {
		return 0, false
	}
	return toFloat(rv), true
}

// Complex converts any number to complex128.
func Complex(v any) (complex128, bool) {
	rv := reflect.ValueOf(v)
	if v == nil {
		return 0, false
	}
	if isComplex(rv.Kind()) {
		return rv.Complex(), true
	}
	if isReal(rv.Kind()) {
		return complex(toFloat(rv), 0), true
	}
	return 0, false
}

func toFloat(v reflect.Value) float64 {
	switch k := v.Kind(); {
	case isInt(k):
		return float64(v.Int())
	case isUint(k):
		return float64(v.Uint())
	}
	return v.Float()
}

// Truthy reports whether v is neither nil, zero, nor empty.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.UnsafePointer:
		return !rv.IsNil()
	}
	return !rv.IsZero()
}

// IsNil reports whether v is untyped nil or a nil pointer, map, slice,
// channel, function or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// SameInstance reports whether a and b are the same object: identical
// references for pointer-like kinds, the same backing array and length for
// slices, and == for other comparable values.
func SameInstance(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// HasAttribute reports whether v has a method or struct field called name.
func HasAttribute(v any, name string) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	t := rv.Type()
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if t.Kind() != reflect.Pointer {
		if _, ok := reflect.PointerTo(t).MethodByName(name); ok {
			return true
		}
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	_, ok := rv.Type().FieldByName(name)
	return ok
}

// IsCallable reports whether v is a non-nil function.
func IsCallable(v any) bool {
	rv := reflect.ValueOf(v)
	return v != nil && rv.Kind() == reflect.Func && !rv.IsNil()
}

// Fields returns the data carried by v in declaration order: every exported
// struct field, plus unexported fields of basic kinds. A non-struct value
// yields itself.
func Fields(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		if x, ok := basicValue(rv); ok {
			return []any{x}
		}
		return []any{rv.Interface()}
	}

	var out []any
	t := rv.Type()
	for i := range t.NumField() {
		f := rv.Field(i)
		if t.Field(i).IsExported() {
			out = append(out, f.Interface())
			continue
		}
		if x, ok := basicValue(f); ok {
			out = append(out, x)
		}
	}
	return out
}

// basicValue reads a value of basic kind without going through Interface,
// which reflect forbids for unexported fields.
func basicValue(v reflect.Value) (any, bool) {
	switch k := v.Kind(); {
	case k == reflect.String:
		return v.String(), true
	case k == reflect.Bool:
		return v.Bool(), true
	case isInt(k):
		return v.Int(), true
	case isUint(k):
		return v.Uint(), true
	case isFloat(k):
		return v.Float(), true
	case isComplex(k):
		return v.Complex(), true
	}
	return nil, false
}

// isSeq reports whether t has the shape of iter.Seq: func(yield func(V) bool).
func isSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 &&
		yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isComplex(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}

func isReal(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || isFloat(k)
}
