// Package repr renders values the way failure messages show them.
package repr

import (
	"fmt"
	"reflect"
	"strings"
)

// Value returns the Go-syntax representation of v.
//
// Errors render as their type and message, reflect.Type values as the type
// name, and untyped nil as "nil".
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case reflect.Type:
		return x.String()
	case error:
		if isNilPointer(v) {
			return fmt.Sprintf("%#v", v)
		}
		return fmt.Sprintf("%T(%q)", x, x.Error())
	}
	return fmt.Sprintf("%#v", v)
}

// List renders values as a bracketed, comma separated list.
func List(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Value(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
