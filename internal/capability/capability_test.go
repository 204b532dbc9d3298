package capability

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type version struct{ major, minor int }

func (v version) Compare(o version) int {
	if v.major != o.major {
		return v.major - o.major
	}
	return v.minor - o.minor
}

type argsError struct {
	Code   int
	reason string
	hidden []string
}

func (e *argsError) Error() string { return e.reason }

func TestSetNames(t *testing.T) {
	t.Parallel()

	s := Generic | Iterable | Mapping
	assert.Equal(t, []string{"generic", "iterable", "mapping"}, s.Names())
	assert.Equal(t, "generic|iterable|mapping", s.String())
	assert.True(t, s.Has(Mapping))
	assert.False(t, s.Has(String|Numeric))
	assert.Len(t, All(), 11)
}

func TestClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		numeric  bool
		ordered  bool
		iterable bool
	}{
		{"int", 1, true, true, false},
		{"uint8", uint8(1), true, true, false},
		{"float", 1.5, true, true, false},
		{"complex", 1 + 2i, true, false, false},
		{"string", "abc", false, true, true},
		{"slice", []int{1}, false, false, true},
		{"array", [2]int{}, false, false, true},
		{"map", map[string]int{}, false, false, true},
		{"seq", slices.Values([]int{1}), false, false, true},
		{"compare method", version{}, false, true, false},
		{"struct", struct{}{}, false, false, false},
		{"plain func", func() {}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			typ := reflect.TypeOf(tt.value)
			assert.Equal(t, tt.numeric, IsNumeric(typ))
			assert.Equal(t, tt.ordered, IsOrdered(typ))
			assert.Equal(t, tt.iterable, IsIterable(typ))
		})
	}
}

func TestElements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  []any
	}{
		{"slice", []int{3, 1}, []any{3, 1}},
		{"runes", "héy", []any{"h", "é", "y"}},
		{"map keys sorted", map[string]int{"b": 1, "a": 2, "c": 3}, []any{"a", "b", "c"}},
		{"numeric keys sorted", map[int]bool{10: true, 2: true}, []any{2, 10}},
		{"seq", slices.Values([]string{"x", "y"}), []any{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Elements(tt.value)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Elements(42)
	assert.False(t, ok)
}

func TestLen(t *testing.T) {
	t.Parallel()

	n, ok := Len("héllo")
	require.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = Len(slices.Values([]int{1, 2, 3}))
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Len(nil)
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"mixed int float", 3, 2.5, 1},
		{"negative vs unsigned", -1, uint(0), -1},
		{"unsigned vs negative", uint(0), -1, 1},
		{"large unsigned", uint64(math.MaxUint64), int64(math.MaxInt64), 1},
		{"strings", "b", "a", 1},
		{"nan lowest", math.NaN(), math.Inf(-1), -1},
		{"method", version{1, 2}, version{1, 2}, 0},
		{"method less", version{1, 0}, version{2, 0}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Compare(1, "a")
	assert.Error(t, err)
	_, err = Compare(nil, 1)
	assert.Error(t, err)
}

func TestTruthyAndNil(t *testing.T) {
	t.Parallel()

	var nilPtr *int
	var nilMap map[string]int

	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy([]int{}))
	assert.False(t, Truthy(nilPtr))
	assert.True(t, Truthy(1))
	assert.True(t, Truthy("a"))
	assert.True(t, Truthy(struct{ A int }{1}))

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(nilPtr))
	assert.True(t, IsNil(nilMap))
	assert.False(t, IsNil(0))
	assert.False(t, IsNil(""))
}

func TestSameInstance(t *testing.T) {
	t.Parallel()

	a := &version{1, 2}
	b := &version{1, 2}
	s := []int{1, 2}

	assert.True(t, SameInstance(a, a))
	assert.False(t, SameInstance(a, b))
	assert.True(t, SameInstance(s, s))
	assert.False(t, SameInstance(s, []int{1, 2}))
	assert.True(t, SameInstance(3, 3))
	assert.False(t, SameInstance(3, int64(3)))
	assert.True(t, SameInstance(nil, nil))
}

func TestHasAttribute(t *testing.T) {
	t.Parallel()

	e := &argsError{Code: 1}
	assert.True(t, HasAttribute(e, "Error"))
	assert.True(t, HasAttribute(e, "Code"))
	assert.True(t, HasAttribute(version{}, "Compare"))
	assert.False(t, HasAttribute(e, "Missing"))
	assert.False(t, HasAttribute(nil, "Error"))

	assert.True(t, IsCallable(func() {}))
	assert.False(t, IsCallable(e))
}

func TestFields(t *testing.T) {
	t.Parallel()

	e := &argsError{Code: 7, reason: "bad", hidden: []string{"x"}}
	assert.Equal(t, []any{7, "bad"}, Fields(e))
	assert.Equal(t, []any{"boom"}, Fields(errors.New("boom").Error()))
	assert.Nil(t, Fields(nil))
}

func TestNumberConversion(t *testing.T) {
	t.Parallel()

	f, ok := Float(uint8(3))
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = Float(1i)
	assert.False(t, ok)

	c, ok := Complex(2)
	require.True(t, ok)
	assert.Equal(t, complex(2, 0), c)
}
