package repr

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pathError struct {
	Op string
}

func (e *pathError) Error() string { return "op " + e.Op }

func TestValue(t *testing.T) {
	t.Parallel()
	var nilErr *pathError

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, "nil"},
		{"int", 5, "5"},
		{"string", "a", `"a"`},
		{"slice", []int{3, 2, 1}, "[]int{3, 2, 1}"},
		{"type", reflect.TypeOf(0), "int"},
		{"error", errors.New("boom"), `*errors.errorString("boom")`},
		{"custom error", &pathError{Op: "open"}, `*repr.pathError("op open")`},
		{"nil error pointer", nilErr, "(*repr.pathError)(nil)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Value(tt.input))
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[]", List(nil))
	assert.Equal(t, `[1, "b", nil]`, List([]any{1, "b", nil}))
}
