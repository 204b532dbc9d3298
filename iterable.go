package truth

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gnoswap-labs/truth/internal/capability"
	"github.com/gnoswap-labs/truth/internal/containment"
	"github.com/gnoswap-labs/truth/internal/repr"
)

// Ordered is returned by propositions that establish membership. Calling
// InOrder additionally requires the elements to appear in the expected
// order. It needs no further evaluation.
type Ordered struct {
	subject  *Subject
	inOrder  bool
	check    string
	expected string
	suffix   string
}

func inOrder() *Ordered {
	return &Ordered{inOrder: true}
}

// InOrder fails unless the elements were found in the expected order.
func (o *Ordered) InOrder() {
	if o.inOrder {
		return
	}
	o.subject.t.Helper()
	o.subject.failWithProposition(fmt.Sprintf("%s <%s>", o.check, o.expected), o.suffix)
}

func (s *Subject) ordered(in bool, check, expected, suffix string) *Ordered {
	return &Ordered{subject: s, inOrder: in, check: check, expected: expected, suffix: suffix}
}

// elements materializes the subject's elements: runes of a string as
// one-rune strings, sorted keys of a map, values of a sequence.
func (s *Subject) elements() []any {
	elems, _ := capability.Elements(s.actual())
	return elems
}

// argElements materializes an iterable argument, raising a UsageError for
// anything else.
func (s *Subject) argElements(name string, iterable any) ([]any, bool) {
	s.t.Helper()
	elems, ok := capability.Elements(iterable)
	if !ok {
		s.truth.misuse(fmt.Sprintf("%s requires an iterable argument, got %s", name, repr.Value(iterable)))
	}
	return elems, ok
}

func (s *Subject) HasSize(size int) {
	s.t.Helper()
	if !s.allow("HasSize") {
		return
	}
	if n, _ := capability.Len(s.actual()); n != size {
		s.failWithBadResults("has a size of", strconv.Itoa(size), "is", strconv.Itoa(n), "")
	}
}

func (s *Subject) IsEmpty() {
	s.t.Helper()
	if !s.allow("IsEmpty") {
		return
	}
	if n, _ := capability.Len(s.actual()); n != 0 {
		s.failWithProposition("is empty", "")
	}
}

func (s *Subject) IsNotEmpty() {
	s.t.Helper()
	if !s.allow("IsNotEmpty") {
		return
	}
	if n, _ := capability.Len(s.actual()); n == 0 {
		s.failWithProposition("is not empty", "")
	}
}

// Contains checks for an element. On a string subject it checks for a
// substring, on a map subject for a key.
func (s *Subject) Contains(element any) {
	s.t.Helper()
	if !s.allow("Contains") {
		return
	}
	if !s.has(element) {
		s.failWithSubject(fmt.Sprintf("should have contained <%s>", repr.Value(element)))
	}
}

func (s *Subject) DoesNotContain(element any) {
	s.t.Helper()
	if !s.allow("DoesNotContain") {
		return
	}
	if s.has(element) {
		s.failWithSubject(fmt.Sprintf("should not have contained <%s>", repr.Value(element)))
	}
}

func (s *Subject) has(element any) bool {
	actual := s.actual()
	if str, ok := stringOf(actual); ok {
		sub, ok := stringOf(element)
		return ok && strings.Contains(str, sub)
	}
	if s.caps.Has(capability.Mapping) {
		_, found := lookup(reflect.ValueOf(actual), element)
		return found
	}
	return containment.Index(s.elements(), element) >= 0
}

// ContainsNoDuplicates reports every element seen more than once. Maps pass
// trivially.
func (s *Subject) ContainsNoDuplicates() {
	s.t.Helper()
	if !s.allow("ContainsNoDuplicates") {
		return
	}
	if s.caps.Has(capability.Mapping) {
		s.resolve()
		return
	}
	if dups := containment.Duplicates(s.elements()); dups.Len() > 0 {
		s.failWithSubject(fmt.Sprintf("has the following duplicates: <%s>", dups))
	}
}

// ContainsAllIn checks that every element of expected is present, counting
// duplicates. Extra elements are allowed.
func (s *Subject) ContainsAllIn(expected any) *Ordered {
	s.t.Helper()
	if !s.allow("ContainsAllIn") {
		return inOrder()
	}
	elems, ok := s.argElements("ContainsAllIn", expected)
	if !ok {
		return inOrder()
	}
	return s.containsAll(s.elements(), elems, "contains all elements in", repr.Value(expected), "")
}

func (s *Subject) ContainsAllOf(expected ...any) *Ordered {
	s.t.Helper()
	if !s.allow("ContainsAllOf") {
		return inOrder()
	}
	return s.containsAll(s.elements(), expected, "contains all of", repr.List(expected), "")
}

func (s *Subject) containsAll(actual, expected []any, verb, shown, suffix string) *Ordered {
	s.t.Helper()
	missing, in := containment.AllOf(actual, expected)
	if missing.Len() > 0 {
		s.failWithBadResults(verb, shown, "is missing", missing.String(), suffix)
		return inOrder()
	}
	return s.ordered(in, "contains all elements in order", shown, suffix)
}

// ContainsAnyIn checks that at least one element of expected is present.
func (s *Subject) ContainsAnyIn(expected any) {
	s.t.Helper()
	if !s.allow("ContainsAnyIn") {
		return
	}
	if elems, ok := s.argElements("ContainsAnyIn", expected); ok {
		s.containsAny(elems, "contains any element in", repr.Value(expected))
	}
}

func (s *Subject) ContainsAnyOf(expected ...any) {
	s.t.Helper()
	if !s.allow("ContainsAnyOf") {
		return
	}
	s.containsAny(expected, "contains any of", repr.List(expected))
}

func (s *Subject) containsAny(expected []any, verb, shown string) {
	s.t.Helper()
	if !containment.AnyOf(s.elements(), expected) {
		s.failComparingValues(verb, shown)
	}
}

// ContainsExactly checks that the subject holds exactly these elements, in
// any order. On a map subject the arguments are alternating keys and values.
func (s *Subject) ContainsExactly(expected ...any) *Ordered {
	s.t.Helper()
	if !s.allow("ContainsExactly") {
		return inOrder()
	}
	if s.caps.Has(capability.Mapping) {
		return s.containsExactlyPairs(expected)
	}
	warn := len(expected) == 1 && expected[0] != nil && capability.IsIterable(reflect.TypeOf(expected[0]))
	return s.containsExactly(s.elements(), expected, repr.List(expected), warn, "")
}

// ContainsExactlyElementsIn checks that the subject and expected hold the
// same elements with the same multiplicities.
func (s *Subject) ContainsExactlyElementsIn(expected any) *Ordered {
	s.t.Helper()
	if !s.allow("ContainsExactlyElementsIn") {
		return inOrder()
	}
	elems, ok := s.argElements("ContainsExactlyElementsIn", expected)
	if !ok {
		return inOrder()
	}
	return s.containsExactly(s.elements(), elems, repr.Value(expected), false, "")
}

const singleIterableWarning = " Passing a single iterable to ContainsExactly(expected...) is often" +
	" not the correct thing to do. Did you mean to call" +
	" ContainsExactlyElementsIn(iterable) instead?"

func (s *Subject) containsExactly(actual, expected []any, shown string, warn bool, suffix string) *Ordered {
	s.t.Helper()
	if len(expected) == 0 {
		if len(actual) > 0 {
			s.failWithProposition("is empty", suffix)
		}
		return inOrder()
	}

	if warn {
		suffix = singleIterableWarning + suffix
	}
	r := containment.Exactly(actual, expected)
	missing, extra := r.Missing.Len() > 0, r.Extra.Len() > 0
	switch {
	case missing && extra:
		s.failWithProposition(fmt.Sprintf("contains exactly <%s>. It is missing <%s> and has unexpected items <%s>",
			shown, r.Missing, r.Extra), suffix)
		return inOrder()
	case missing:
		s.failWithBadResults("contains exactly", shown, "is missing", r.Missing.String(), suffix)
		return inOrder()
	case extra:
		s.failWithBadResults("contains exactly", shown, "has unexpected items", r.Extra.String(), suffix)
		return inOrder()
	}
	return s.ordered(r.InOrder, "contains exactly these elements in order", shown, suffix)
}

// ContainsNoneIn reports every element of excluded that is present.
func (s *Subject) ContainsNoneIn(excluded any) {
	s.t.Helper()
	if !s.allow("ContainsNoneIn") {
		return
	}
	if elems, ok := s.argElements("ContainsNoneIn", excluded); ok {
		s.containsNone(elems, "contains no elements in", repr.Value(excluded))
	}
}

func (s *Subject) ContainsNoneOf(excluded ...any) {
	s.t.Helper()
	if !s.allow("ContainsNoneOf") {
		return
	}
	s.containsNone(excluded, "contains none of", repr.List(excluded))
}

func (s *Subject) containsNone(excluded []any, verb, shown string) {
	s.t.Helper()
	if present := containment.NoneOf(s.elements(), excluded); len(present) > 0 {
		s.failWithBadResults(verb, shown, "contains", repr.List(present), "")
	}
}

// IsOrdered checks that each element is at least its predecessor. Elements
// must be mutually ordered: numbers, strings, or values with a Compare or
// Cmp method.
func (s *Subject) IsOrdered() {
	s.t.Helper()
	if !s.allow("IsOrdered") {
		return
	}
	s.pairwise("IsOrdered", nil, false)
}

// IsOrderedAccordingTo is IsOrdered with a three-way comparator.
func (s *Subject) IsOrderedAccordingTo(compare func(a, b any) int) {
	s.t.Helper()
	if !s.allow("IsOrderedAccordingTo") {
		return
	}
	s.pairwise("IsOrderedAccordingTo", compare, false)
}

func (s *Subject) IsStrictlyOrdered() {
	s.t.Helper()
	if !s.allow("IsStrictlyOrdered") {
		return
	}
	s.pairwise("IsStrictlyOrdered", nil, true)
}

func (s *Subject) IsStrictlyOrderedAccordingTo(compare func(a, b any) int) {
	s.t.Helper()
	if !s.allow("IsStrictlyOrderedAccordingTo") {
		return
	}
	s.pairwise("IsStrictlyOrderedAccordingTo", compare, true)
}

func (s *Subject) pairwise(name string, compare func(a, b any) int, strict bool) {
	s.t.Helper()
	var cmpErr error
	if compare == nil {
		compare = func(a, b any) int {
			c, err := capability.Compare(a, b)
			if err != nil && cmpErr == nil {
				cmpErr = err
			}
			return c
		}
	}

	elems := s.elements()
	i := containment.Unordered(elems, func(prev, cur any) bool {
		if strict {
			return compare(prev, cur) < 0
		}
		return compare(prev, cur) <= 0
	})
	if cmpErr != nil {
		s.truth.misuse(fmt.Sprintf("%s: %v", name, cmpErr))
		return
	}
	if i < 0 {
		return
	}
	verb := "is ordered"
	if strict {
		verb = "is strictly ordered"
	}
	s.failComparingValues(verb, fmt.Sprintf("(%s, %s)", repr.Value(elems[i-1]), repr.Value(elems[i])))
}
