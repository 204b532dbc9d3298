package equality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type point struct {
	x, y int
}

type tagged struct {
	Name string
	Tags []string
}

func TestEqual(t *testing.T) {
	t.Parallel()
	now := time.Now()

	tests := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"same ints", 1, 1, true},
		{"different types", 1, int64(1), false},
		{"unexported fields", point{1, 2}, point{1, 2}, true},
		{"unexported fields differ", point{1, 2}, point{2, 1}, false},
		{"slices", []any{1, "a"}, []any{1, "a"}, true},
		{"nested slices", tagged{"a", []string{"x"}}, tagged{"a", []string{"x"}}, true},
		{"equal method", now, now.In(time.UTC), true},
		{"nil and nil", nil, nil, true},
		{"nil and value", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
		})
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Diff([]int{1}, []int{1}))
	assert.Contains(t, Diff([]int{1}, []int{2}), "-")
}

func TestHashable(t *testing.T) {
	t.Parallel()
	x := 1

	tests := []struct {
		name     string
		input    any
		expected bool
	}{
		{"nil", nil, true},
		{"int", 1, true},
		{"string", "a", true},
		{"struct of basics", point{1, 2}, true},
		{"array", [2]int{1, 2}, true},
		{"slice", []int{1}, false},
		{"map", map[string]int{}, false},
		{"pointer", &x, false},
		{"struct with slice", tagged{}, false},
		{"type with Equal method", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Hashable(tt.input))
		})
	}
}
