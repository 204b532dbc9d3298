package truth

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/truth/internal/capability"
	"github.com/gnoswap-labs/truth/internal/containment"
	"github.com/gnoswap-labs/truth/internal/equality"
	"github.com/gnoswap-labs/truth/internal/repr"
	"github.com/gnoswap-labs/truth/internal/site"
	tt "github.com/gnoswap-labs/truth/internal/types"
)

// Subject wraps a value under test. Obtain one with Assert; the propositions
// it accepts depend on the value, see Vocabulary.
type Subject struct {
	handle

	truth *Truth
	t     TestingT
	kind  kind
	caps  capability.Set
	value any
	name  string

	// double is set for call-double subjects.
	double CallDouble
}

// handle tracks an object that must be evaluated before the checkpoint.
type handle struct {
	resolved atomic.Bool
	site     tt.Site
}

func (h *handle) track(owner fmt.Stringer) {
	h.site = site.Capture(0)
	tracker.Register(owner, h.site)
	log().Debug("subject created", zap.Stringer("subject", owner), zap.Stringer("site", h.site))
}

// resolve marks the owner as evaluated. It never reverts.
func (h *handle) resolve(owner fmt.Stringer) {
	if h.resolved.CompareAndSwap(false, true) {
		tracker.Resolve(owner)
	}
}

func newSubject(tr *Truth, value any, k kind) *Subject {
	s := &Subject{truth: tr, t: tr.t, kind: k, caps: kinds[k].caps, value: value}
	if k == numericKind && capability.IsComplex(reflect.TypeOf(value)) {
		s.caps &^= capability.Comparable
	}
	s.track(s)
	return s
}

// Named sets a label shown next to the value in failure messages.
func (s *Subject) Named(name string) *Subject {
	s.name = name
	return s
}

// String renders the subject as it appears in lifecycle reports.
func (s *Subject) String() string {
	return fmt.Sprintf("%s(%s)", kinds[s.kind].name, s.display())
}

func (s *Subject) display() string {
	v := s.valueRepr()
	if s.name != "" {
		return fmt.Sprintf("%s(<%s>)", s.name, v)
	}
	return "<" + v + ">"
}

func (s *Subject) valueRepr() string {
	if s.double != nil {
		return s.double.DisplayName()
	}
	return repr.Value(s.value)
}

// actual is the resolving accessor: every proposition reads the value
// through it.
func (s *Subject) actual() any {
	s.resolve()
	return s.value
}

func (s *Subject) resolve() {
	s.handle.resolve(s)
}

// allow reports whether the subject supports the named proposition, raising
// a UsageError when it does not.
func (s *Subject) allow(name string) bool {
	s.t.Helper()
	return s.gate(name, required[name])
}

func (s *Subject) gate(name string, need capability.Set) bool {
	s.t.Helper()
	if s.caps.Has(need) {
		return true
	}
	if s.kind == noneKind {
		s.truth.misuse(fmt.Sprintf("Invalid operation on nil subject: <%s>."+
			" Check that the actual value of the subject is not nil,"+
			" or Assert the subject IsNil()/IsNotNil()", name))
		return false
	}
	s.truth.misuse(fmt.Sprintf("Invalid operation on %s: %s requires a subject with capability %s",
		s, name, need))
	return false
}

func (s *Subject) failComparingValues(verb, other string) {
	s.t.Helper()
	s.failWithProposition(fmt.Sprintf("%s <%s>", verb, other), "")
}

func (s *Subject) failWithBadResults(verb, other, failVerb, actual, suffix string) {
	s.t.Helper()
	s.failWithProposition(fmt.Sprintf("%s <%s>. It %s <%s>", verb, other, failVerb, actual), suffix)
}

func (s *Subject) failWithProposition(proposition, suffix string) {
	s.t.Helper()
	s.truth.fail(fmt.Sprintf("Not true that %s %s.%s", s.display(), proposition, suffix))
}

func (s *Subject) failWithSubject(verb string) {
	s.t.Helper()
	s.truth.fail(fmt.Sprintf("%s %s.", s.display(), verb))
}

func (s *Subject) IsEqualTo(other any) {
	s.t.Helper()
	if !s.allow("IsEqualTo") {
		return
	}
	actual := s.actual()
	if !equality.Equal(actual, other) {
		s.failWithProposition(fmt.Sprintf("is equal to <%s>", repr.Value(other)), diffSuffix(other, actual))
	}
}

// diffSuffix explains mismatches between composite values of the same type.
func diffSuffix(want, got any) string {
	if want == nil || got == nil || reflect.TypeOf(want) != reflect.TypeOf(got) {
		return ""
	}
	switch reflect.TypeOf(got).Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map, reflect.Pointer:
	default:
		return ""
	}
	if d := equality.Diff(want, got); d != "" {
		return " Diff (-expected +actual):\n" + d
	}
	return ""
}

func (s *Subject) IsNotEqualTo(other any) {
	s.t.Helper()
	if !s.allow("IsNotEqualTo") {
		return
	}
	if equality.Equal(s.actual(), other) {
		s.failComparingValues("is not equal to", repr.Value(other))
	}
}

// IsNil checks for untyped nil or a nil pointer, map, slice, channel or
// function.
func (s *Subject) IsNil() {
	s.t.Helper()
	if !s.allow("IsNil") {
		return
	}
	if !capability.IsNil(s.actual()) {
		s.failWithProposition("is nil", "")
	}
}

func (s *Subject) IsNotNil() {
	s.t.Helper()
	if !s.allow("IsNotNil") {
		return
	}
	if capability.IsNil(s.actual()) {
		s.failWithProposition("is not nil", "")
	}
}

// IsIn checks that the value is an element of iterable. For a string
// iterable it checks for a substring, for a map, a key.
func (s *Subject) IsIn(iterable any) {
	s.t.Helper()
	if !s.allow("IsIn") {
		return
	}
	if _, found, ok := s.indexIn("IsIn", iterable); ok && !found {
		s.failComparingValues("is equal to any of", repr.Value(iterable))
	}
}

func (s *Subject) IsNotIn(iterable any) {
	s.t.Helper()
	if !s.allow("IsNotIn") {
		return
	}
	s.isNotIn("IsNotIn", iterable, repr.Value(iterable))
}

func (s *Subject) IsAnyOf(values ...any) {
	s.t.Helper()
	if !s.allow("IsAnyOf") {
		return
	}
	if containment.Index(values, s.actual()) < 0 {
		s.failComparingValues("is equal to any of", repr.List(values))
	}
}

func (s *Subject) IsNoneOf(values ...any) {
	s.t.Helper()
	if !s.allow("IsNoneOf") {
		return
	}
	s.isNotIn("IsNoneOf", values, repr.List(values))
}

func (s *Subject) isNotIn(name string, iterable any, shown string) {
	s.t.Helper()
	idx, found, ok := s.indexIn(name, iterable)
	if !ok || !found {
		return
	}
	if idx < 0 {
		s.failWithProposition("is not in "+shown, "")
		return
	}
	s.failWithProposition(fmt.Sprintf("is not in %s. It was found at index %d", shown, idx), "")
}

// indexIn finds the value in iterable. idx is -1 for containers without
// positions. ok is false when iterable is not iterable.
func (s *Subject) indexIn(name string, iterable any) (idx int, found, ok bool) {
	s.t.Helper()
	actual := s.actual()

	if str, isString := stringOf(iterable); isString {
		if sub, isSub := stringOf(actual); isSub {
			i := strings.Index(str, sub)
			if i < 0 {
				return -1, false, true
			}
			return utf8.RuneCountInString(str[:i]), true, true
		}
	}
	if iterable != nil && reflect.TypeOf(iterable).Kind() == reflect.Map {
		_, found := lookup(reflect.ValueOf(iterable), actual)
		return -1, found, true
	}

	elems, ok := capability.Elements(iterable)
	if !ok {
		s.truth.misuse(fmt.Sprintf("%s requires an iterable argument, got %s", name, repr.Value(iterable)))
		return -1, false, false
	}
	i := containment.Index(elems, actual)
	return i, i >= 0, true
}

// IsInstanceOf checks that the value's dynamic type is assignable to t:
// either t itself or an interface it implements.
func (s *Subject) IsInstanceOf(t reflect.Type) {
	s.t.Helper()
	if !s.allow("IsInstanceOf") {
		return
	}
	actual := s.actual()
	if !instanceOf(actual, t) {
		s.failWithBadResults("is an instance of", t.String(), "is an instance of", typeName(actual), "")
	}
}

func (s *Subject) IsNotInstanceOf(t reflect.Type) {
	s.t.Helper()
	if !s.allow("IsNotInstanceOf") {
		return
	}
	if instanceOf(s.actual(), t) {
		s.failWithSubject(fmt.Sprintf("expected not to be an instance of %s, but was", t))
	}
}

func instanceOf(v any, t reflect.Type) bool {
	return v != nil && t != nil && reflect.TypeOf(v).AssignableTo(t)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// IsSameAs checks identity: the same pointer, map, channel or function, the
// same slice header, or an equal comparable value of the same type.
func (s *Subject) IsSameAs(other any) {
	s.t.Helper()
	if !s.allow("IsSameAs") {
		return
	}
	if !capability.SameInstance(s.actual(), other) {
		s.failComparingValues("is the same instance as", repr.Value(other))
	}
}

func (s *Subject) IsNotSameAs(other any) {
	s.t.Helper()
	if !s.allow("IsNotSameAs") {
		return
	}
	if capability.SameInstance(s.actual(), other) {
		s.failComparingValues("is not the same instance as", repr.Value(other))
	}
}

// IsTruthy checks that the value is neither nil, zero nor empty.
func (s *Subject) IsTruthy() {
	s.t.Helper()
	if !s.allow("IsTruthy") {
		return
	}
	if !capability.Truthy(s.actual()) {
		s.failWithProposition("is truthy", "")
	}
}

func (s *Subject) IsFalsy() {
	s.t.Helper()
	if !s.allow("IsFalsy") {
		return
	}
	if capability.Truthy(s.actual()) {
		s.failWithProposition("is falsy", "")
	}
}

// IsTrue checks that a boolean subject is true. It always fails for other
// values, which may call IsTruthy instead.
func (s *Subject) IsTrue() {
	s.t.Helper()
	if !s.allow("IsTrue") {
		return
	}
	actual := s.actual()
	if s.caps.Has(capability.Boolean) {
		if !reflect.ValueOf(actual).Bool() {
			s.failWithSubject(fmt.Sprintf("was expected to be true, but was %v", actual))
		}
		return
	}
	suffix := ""
	if capability.Truthy(actual) {
		suffix = " However, it is truthy. Did you mean to call IsTruthy() instead?"
	}
	s.failWithProposition("is true", suffix)
}

func (s *Subject) IsFalse() {
	s.t.Helper()
	if !s.allow("IsFalse") {
		return
	}
	actual := s.actual()
	if s.caps.Has(capability.Boolean) {
		if reflect.ValueOf(actual).Bool() {
			s.failWithSubject(fmt.Sprintf("was expected to be false, but was %v", actual))
		}
		return
	}
	suffix := ""
	if !capability.Truthy(actual) {
		suffix = " However, it is falsy. Did you mean to call IsFalsy() instead?"
	}
	s.failWithProposition("is false", suffix)
}

// HasAttribute checks that the value has a field or method called name.
func (s *Subject) HasAttribute(name string) {
	s.t.Helper()
	if !s.allow("HasAttribute") {
		return
	}
	if !capability.HasAttribute(s.actual(), name) {
		s.failComparingValues("has attribute", repr.Value(name))
	}
}

func (s *Subject) DoesNotHaveAttribute(name string) {
	s.t.Helper()
	if !s.allow("DoesNotHaveAttribute") {
		return
	}
	if capability.HasAttribute(s.actual(), name) {
		s.failComparingValues("does not have attribute", repr.Value(name))
	}
}

func (s *Subject) IsCallable() {
	s.t.Helper()
	if !s.allow("IsCallable") {
		return
	}
	if !capability.IsCallable(s.actual()) {
		s.failWithProposition("is callable", "")
	}
}

func (s *Subject) IsNotCallable() {
	s.t.Helper()
	if !s.allow("IsNotCallable") {
		return
	}
	if capability.IsCallable(s.actual()) {
		s.failWithProposition("is not callable", "")
	}
}

// Run is only valid on the scope returned by IsRaised. Calling it on the
// subject itself is a UsageError and fn is not called.
func (s *Subject) Run(fn func() error) {
	s.t.Helper()
	if s.caps.Has(capability.Exception | capability.ExceptionClass) {
		s.truth.misuse("Exception subject was initiated but not resolved." +
			" Did you forget to call IsRaised()?")
		return
	}
	s.gate("Run", capability.Exception|capability.ExceptionClass)
}

func stringOf(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}
