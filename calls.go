package truth

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/gnoswap-labs/truth/internal/equality"
	"github.com/gnoswap-labs/truth/internal/repr"
)

// CallRecord is one recorded invocation of a test double.
type CallRecord struct {
	Target    string
	Args      []any
	NamedArgs map[string]any
}

// CallOf returns the record of a call to target with positional args.
func CallOf(target string, args ...any) CallRecord {
	return CallRecord{Target: target, Args: args}
}

// Equal reports whether c and o are the same call. Nil and empty argument
// lists are equal.
func (c CallRecord) Equal(o CallRecord) bool {
	return c.Target == o.Target && c.sameArgs(o)
}

func (c CallRecord) sameArgs(o CallRecord) bool {
	if len(c.Args) != len(o.Args) || len(c.NamedArgs) != len(o.NamedArgs) {
		return false
	}
	for i := range c.Args {
		if !equality.Equal(c.Args[i], o.Args[i]) {
			return false
		}
	}
	for k, v := range c.NamedArgs {
		w, ok := o.NamedArgs[k]
		if !ok || !equality.Equal(v, w) {
			return false
		}
	}
	return true
}

// GoString renders the record like a call expression: Get("a", limit=1).
func (c CallRecord) GoString() string {
	return c.Target + "(" + c.argList() + ")"
}

func (c CallRecord) argList() string {
	parts := make([]string, 0, len(c.Args)+len(c.NamedArgs))
	for _, a := range c.Args {
		parts = append(parts, repr.Value(a))
	}
	for _, k := range slices.Sorted(maps.Keys(c.NamedArgs)) {
		parts = append(parts, k+"="+repr.Value(c.NamedArgs[k]))
	}
	return strings.Join(parts, ", ")
}

func (c CallRecord) String() string { return c.GoString() }

// CallDouble is a test double that records its invocations. Values
// implementing it, testify mocks, and structs embedding a testify mock get
// the call-history propositions.
type CallDouble interface {
	CallCount() int
	CallHistory() []CallRecord
	DisplayName() string
}

// mockDouble adapts a testify mock, optionally narrowed to one method.
type mockDouble struct {
	mock   *mock.Mock
	name   string
	method string
}

func (d *mockDouble) CallHistory() []CallRecord {
	var out []CallRecord
	for _, call := range d.mock.Calls {
		if d.method != "" && call.Method != d.method {
			continue
		}
		out = append(out, CallRecord{Target: call.Method, Args: []any(call.Arguments)})
	}
	return out
}

func (d *mockDouble) CallCount() int { return len(d.CallHistory()) }

func (d *mockDouble) DisplayName() string {
	if d.method != "" {
		return d.name + "." + d.method
	}
	return d.name
}

// narrowedDouble keeps only the calls of one target.
type narrowedDouble struct {
	CallDouble
	target string
}

func (d narrowedDouble) CallHistory() []CallRecord {
	var out []CallRecord
	for _, c := range d.CallDouble.CallHistory() {
		if c.Target == d.target {
			out = append(out, c)
		}
	}
	return out
}

func (d narrowedDouble) CallCount() int { return len(d.CallHistory()) }

func (d narrowedDouble) DisplayName() string {
	return d.CallDouble.DisplayName() + "." + d.target
}

func historyOf(d CallDouble) []any {
	calls := d.CallHistory()
	out := make([]any, len(calls))
	for i, c := range calls {
		out[i] = c
	}
	return out
}

func historySuffix(calls []CallRecord) string {
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.GoString()
	}
	return fmt.Sprintf(" Calls: [%s]", strings.Join(parts, ", "))
}

// WasCalled checks that the double was called at least once. The returned
// subject refines the check.
func (s *Subject) WasCalled() *CalledSubject {
	s.t.Helper()
	if !s.allow("WasCalled") {
		return mutedCalls(s)
	}
	s.resolve()
	calls := s.double.CallHistory()
	if len(calls) == 0 {
		s.truth.fail(fmt.Sprintf("Expected %s to have been called, but it was called 0 times.%s",
			s.double.DisplayName(), historySuffix(calls)))
		return mutedCalls(s)
	}
	return &CalledSubject{subject: s, all: calls, calls: calls}
}

func (s *Subject) WasNotCalled() {
	s.t.Helper()
	if !s.allow("WasNotCalled") {
		return
	}
	s.resolve()
	if calls := s.double.CallHistory(); len(calls) > 0 {
		s.truth.fail(fmt.Sprintf("Expected %s not to have been called, but it was called %s.%s",
			s.double.DisplayName(), times(len(calls)), historySuffix(calls)))
	}
}

// HasCalls checks that every call in calls was recorded. Unless anyOrder is
// set they must also have been recorded in that relative order.
func (s *Subject) HasCalls(calls []CallRecord, anyOrder bool) {
	s.t.Helper()
	if !s.allow("HasCalls") {
		return
	}
	s.resolve()
	expected := make([]any, len(calls))
	for i, c := range calls {
		expected[i] = c
	}
	suffix := historySuffix(s.double.CallHistory())
	ordered := s.containsAll(historyOf(s.double), expected, "contains all elements in", repr.List(expected), suffix)
	if !anyOrder {
		ordered.InOrder()
	}
}

// HasExactlyCalls checks that the recorded calls are exactly calls, in any
// order. Call InOrder on the result to require the same order.
func (s *Subject) HasExactlyCalls(calls ...CallRecord) *Ordered {
	s.t.Helper()
	if !s.allow("HasExactlyCalls") {
		return inOrder()
	}
	s.resolve()
	expected := make([]any, len(calls))
	for i, c := range calls {
		expected[i] = c
	}
	suffix := historySuffix(s.double.CallHistory())
	return s.containsExactly(historyOf(s.double), expected, repr.List(expected), false, suffix)
}

// Method returns a subject for the calls of the named method only.
func (s *Subject) Method(name string) *Subject {
	s.t.Helper()
	if !s.allow("Method") {
		return s
	}
	s.resolve()

	var narrowed CallDouble = narrowedDouble{CallDouble: s.double, target: name}
	if d, ok := s.double.(*mockDouble); ok && d.method == "" {
		narrowed = &mockDouble{mock: d.mock, name: d.name, method: name}
	}
	sub := newSubject(s.truth, s.value, callDoubleKind)
	sub.double = narrowed
	return sub
}

// CalledSubject refines a double known to have been called. It is resolved
// when created: further checks are optional.
type CalledSubject struct {
	subject *Subject
	// all is the full history; calls the part matching the With scope.
	all     []CallRecord
	calls   []CallRecord
	pattern *CallRecord
	muted   bool
}

func mutedCalls(s *Subject) *CalledSubject {
	return &CalledSubject{subject: s, muted: true}
}

func (c *CalledSubject) fail(msg string) {
	c.subject.t.Helper()
	c.subject.truth.fail(msg + historySuffix(c.all))
}

func (c *CalledSubject) name() string {
	name := c.subject.double.DisplayName()
	if c.pattern != nil {
		name += " with (" + c.pattern.argList() + ")"
	}
	return name
}

// Times checks the number of calls in scope: every call, or the calls
// matched by With.
func (c *CalledSubject) Times(n int) *CalledSubject {
	c.subject.t.Helper()
	if c.muted {
		return c
	}
	if len(c.calls) != n {
		c.fail(fmt.Sprintf("Expected %s to have been called %s, but it was called %s.",
			c.name(), times(n), times(len(c.calls))))
	}
	return c
}

func (c *CalledSubject) Once() *CalledSubject {
	c.subject.t.Helper()
	return c.Times(1)
}

// With checks that at least one call had args as positional arguments. The
// returned subject counts only those calls.
func (c *CalledSubject) With(args ...any) *CalledSubject {
	c.subject.t.Helper()
	return c.WithCall(CallRecord{Args: args})
}

// WithCall is With for a record carrying named arguments. The record's
// Target is ignored.
func (c *CalledSubject) WithCall(rec CallRecord) *CalledSubject {
	c.subject.t.Helper()
	if c.muted {
		return c
	}
	var matching []CallRecord
	for _, call := range c.calls {
		if call.sameArgs(rec) {
			matching = append(matching, call)
		}
	}
	if len(matching) == 0 {
		c.fail(fmt.Sprintf("Expected %s to have been called with (%s), but no matching call was found.",
			c.name(), rec.argList()))
		return &CalledSubject{subject: c.subject, muted: true}
	}
	return &CalledSubject{subject: c.subject, all: c.all, calls: matching, pattern: &rec}
}

// LastWith checks the arguments of the most recent call in scope.
func (c *CalledSubject) LastWith(args ...any) {
	c.subject.t.Helper()
	c.LastWithCall(CallRecord{Args: args})
}

func (c *CalledSubject) LastWithCall(rec CallRecord) {
	c.subject.t.Helper()
	if c.muted || len(c.calls) == 0 {
		return
	}
	last := c.calls[len(c.calls)-1]
	if !last.sameArgs(rec) {
		c.fail(fmt.Sprintf("Expected %s to have been last called with (%s), but it was last called with (%s).",
			c.name(), rec.argList(), last.argList()))
	}
}

func times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}
