package truth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fetcher struct {
	mock.Mock
}

func (f *fetcher) Fetch(key string) int {
	return f.Called(key).Int(0)
}

func (f *fetcher) Store(key string, value int) {
	f.Called(key, value)
}

func newFetcher() *fetcher {
	f := &fetcher{}
	f.On("Fetch", mock.Anything).Return(1)
	f.On("Store", mock.Anything, mock.Anything).Return()
	return f
}

// recordingDouble implements CallDouble directly.
type recordingDouble struct {
	calls []CallRecord
}

func (d *recordingDouble) call(target string, args []any, named map[string]any) {
	d.calls = append(d.calls, CallRecord{Target: target, Args: args, NamedArgs: named})
}

func (d *recordingDouble) CallCount() int            { return len(d.calls) }
func (d *recordingDouble) CallHistory() []CallRecord { return d.calls }
func (d *recordingDouble) DisplayName() string       { return "double" }

func TestWasCalledTimes(t *testing.T) {
	t.Parallel()

	f := newFetcher()
	requireFailure(t, func() { Assert(f).WasCalled().Times(2) },
		"Expected *truth.fetcher to have been called, but it was called 0 times. Calls: []")

	f.Fetch("a")
	f.Fetch("b")
	Assert(f).WasCalled().Times(2)

	requireFailure(t, func() { Assert(f).WasCalled().Once() },
		`Expected *truth.fetcher to have been called 1 time, but it was called 2 times. Calls: [Fetch("a"), Fetch("b")]`)
}

func TestWasCalledWith(t *testing.T) {
	t.Parallel()

	f := newFetcher()
	f.Fetch("a")
	f.Store("a", 2)
	f.Fetch("a")

	Assert(f).WasCalled().With("a").Times(2)
	Assert(f).WasCalled().With("a", 2).Once()
	Assert(f).WasCalled().LastWith("a")
	Assert(f).WasCalled().With("a").LastWith("a")

	tests := []struct {
		name     string
		fn       func()
		fragment string
	}{
		{
			name:     "no matching call",
			fn:       func() { Assert(f).WasCalled().With("z") },
			fragment: `Expected *truth.fetcher to have been called with ("z"), but no matching call was found.`,
		},
		{
			name:     "count of matching calls",
			fn:       func() { Assert(f).WasCalled().With("a").Once() },
			fragment: `Expected *truth.fetcher with ("a") to have been called 1 time, but it was called 2 times.`,
		},
		{
			name:     "last call",
			fn:       func() { Assert(f).WasCalled().LastWith("b") },
			fragment: `Expected *truth.fetcher to have been last called with ("b"), but it was last called with ("a").`,
		},
		{
			name:     "history is listed",
			fn:       func() { Assert(f).WasNotCalled() },
			fragment: `it was called 3 times. Calls: [Fetch("a"), Store("a", 2), Fetch("a")]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireFailure(t, tt.fn, tt.fragment)
		})
	}
}

func TestHasCalls(t *testing.T) {
	t.Parallel()

	f := newFetcher()
	f.Fetch("a")
	f.Store("a", 1)
	f.Fetch("b")

	Assert(f).HasCalls([]CallRecord{CallOf("Fetch", "a"), CallOf("Fetch", "b")}, false)
	Assert(f).HasCalls([]CallRecord{CallOf("Fetch", "b"), CallOf("Fetch", "a")}, true)
	Assert(f).HasExactlyCalls(CallOf("Fetch", "b"), CallOf("Store", "a", 1), CallOf("Fetch", "a"))

	requireFailure(t, func() {
		Assert(f).HasCalls([]CallRecord{CallOf("Fetch", "b"), CallOf("Fetch", "a")}, false)
	}, "contains all elements in order", `Calls: [Fetch("a"), Store("a", 1), Fetch("b")]`)

	requireFailure(t, func() {
		Assert(f).HasCalls([]CallRecord{CallOf("Fetch", "c")}, true)
	}, `It is missing <[Fetch("c")]>.`)

	requireFailure(t, func() {
		Assert(f).HasExactlyCalls(CallOf("Fetch", "a"), CallOf("Fetch", "b"))
	}, `It has unexpected items <[Store("a", 1)]>.`)

	requireFailure(t, func() {
		Assert(f).HasExactlyCalls(CallOf("Fetch", "b"), CallOf("Store", "a", 1), CallOf("Fetch", "a")).InOrder()
	}, "contains exactly these elements in order")
}

func TestMethod(t *testing.T) {
	t.Parallel()

	f := newFetcher()
	f.Fetch("a")
	f.Store("a", 1)

	Assert(f).Method("Store").WasCalled().Once()
	Assert(f).Method("Fetch").WasCalled().With("a").Once()

	requireFailure(t, func() { Assert(f).Method("Fetch").WasNotCalled() },
		`Expected *truth.fetcher.Fetch not to have been called, but it was called 1 time. Calls: [Fetch("a")]`)

	d := &recordingDouble{}
	d.call("Get", []any{"k"}, nil)
	d.call("Put", []any{"k"}, map[string]any{"ttl": 5})
	Assert(d).Method("Put").WasCalled().WithCall(CallRecord{Args: []any{"k"}, NamedArgs: map[string]any{"ttl": 5}}).Once()

	requireFailure(t, func() { Assert(d).Method("Get").WasCalled().Times(2) },
		`Expected double.Get to have been called 2 times, but it was called 1 time. Calls: [Get("k")]`)
}

func TestCallDouble(t *testing.T) {
	t.Parallel()

	d := &recordingDouble{}
	Assert(d).WasNotCalled()

	d.call("Get", []any{"k"}, map[string]any{"limit": 1, "after": "x"})
	Assert(d).WasCalled().LastWithCall(CallRecord{Args: []any{"k"}, NamedArgs: map[string]any{"after": "x", "limit": 1}})
	Assert(d).HasExactlyCalls(CallRecord{Target: "Get", Args: []any{"k"}, NamedArgs: map[string]any{"limit": 1, "after": "x"}})

	err := failure(func() { Assert(d).WasCalled().With("z") })
	require.ErrorIs(t, err, ErrAssertion)
	assert.Contains(t, err.Error(), `Calls: [Get("k", after="x", limit=1)]`)
}

func TestCallRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		a, b  CallRecord
		equal bool
	}{
		{"same", CallOf("f", 1), CallOf("f", 1), true},
		{"nil and empty args", CallRecord{Target: "f"}, CallRecord{Target: "f", Args: []any{}}, true},
		{"target", CallOf("f", 1), CallOf("g", 1), false},
		{"args", CallOf("f", 1), CallOf("f", 2), false},
		{"arity", CallOf("f", 1), CallOf("f", 1, 2), false},
		{"named", CallRecord{Target: "f", NamedArgs: map[string]any{"a": 1}}, CallRecord{Target: "f", NamedArgs: map[string]any{"b": 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}

	assert.Equal(t, `f(1, "x", k=true)`, CallRecord{Target: "f", Args: []any{1, "x"}, NamedArgs: map[string]any{"k": true}}.GoString())
}
