// Package equality defines the element equality shared by every proposition.
package equality

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// allFields lets cmp descend into unexported fields instead of panicking.
var allFields = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether a and b are deeply equal. Types that declare an
// Equal method are compared with it.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, allFields)
}

// Diff returns a human readable report of the differences between want and
// got, or "" when they are equal.
func Diff(want, got any) (diff string) {
	defer func() {
		if recover() != nil {
			diff = ""
		}
	}()
	return cmp.Diff(want, got, allFields)
}

// Hashable reports whether v can be used as a map key with Go's == agreeing
// with Equal. Only booleans, numbers, strings and arrays or structs built
// from them qualify; pointers and interfaces compare by identity under ==
// and are therefore excluded.
func Hashable(v any) bool {
	if v == nil {
		return true
	}
	return hashableType(reflect.TypeOf(v))
}

func hashableType(t reflect.Type) bool {
	if hasEqualMethod(t) {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Array:
		return hashableType(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !hashableType(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

func hasEqualMethod(t reflect.Type) bool {
	if _, ok := t.MethodByName("Equal"); ok {
		return true
	}
	_, ok := reflect.PointerTo(t).MethodByName("Equal")
	return ok
}
