package truth

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/gnoswap-labs/truth/internal/capability"
	"github.com/gnoswap-labs/truth/internal/repr"
)

func (s *Subject) IsAtLeast(other any) {
	s.t.Helper()
	if c, ok := s.compareTo("IsAtLeast", other); ok && c < 0 {
		s.failComparingValues("is at least", repr.Value(other))
	}
}

func (s *Subject) IsAtMost(other any) {
	s.t.Helper()
	if c, ok := s.compareTo("IsAtMost", other); ok && c > 0 {
		s.failComparingValues("is at most", repr.Value(other))
	}
}

func (s *Subject) IsGreaterThan(other any) {
	s.t.Helper()
	if c, ok := s.compareTo("IsGreaterThan", other); ok && c <= 0 {
		s.failComparingValues("is greater than", repr.Value(other))
	}
}

func (s *Subject) IsLessThan(other any) {
	s.t.Helper()
	if c, ok := s.compareTo("IsLessThan", other); ok && c >= 0 {
		s.failComparingValues("is less than", repr.Value(other))
	}
}

// compareTo orders the value against other. Operands that cannot be ordered,
// nil included, are a UsageError.
func (s *Subject) compareTo(name string, other any) (int, bool) {
	s.t.Helper()
	if !s.allow(name) {
		return 0, false
	}
	if other == nil {
		s.truth.misuse(fmt.Sprintf("It is illegal to compare using %s(nil)", name))
		return 0, false
	}
	c, err := capability.Compare(s.actual(), other)
	if err != nil {
		s.truth.misuse(fmt.Sprintf("%s: %v", name, err))
		return 0, false
	}
	return c, true
}

// number reads the value of a numeric subject as a complex number, so that
// every numeric kind shares one code path.
func (s *Subject) number(name string) (complex128, bool) {
	s.t.Helper()
	if !s.allow(name) {
		return 0, false
	}
	c, _ := capability.Complex(s.actual())
	return c, true
}

func (s *Subject) IsZero() {
	s.t.Helper()
	if n, ok := s.number("IsZero"); ok && n != 0 {
		s.failWithProposition("is zero", "")
	}
}

func (s *Subject) IsNonZero() {
	s.t.Helper()
	if n, ok := s.number("IsNonZero"); ok && n == 0 {
		s.failWithProposition("is non-zero", "")
	}
}

func (s *Subject) IsFinite() {
	s.t.Helper()
	if n, ok := s.number("IsFinite"); ok && (cmplx.IsInf(n) || cmplx.IsNaN(n)) {
		s.failWithSubject("should have been finite")
	}
}

func (s *Subject) IsPositiveInfinity() {
	s.t.Helper()
	if n, ok := s.number("IsPositiveInfinity"); ok && !(imag(n) == 0 && math.IsInf(real(n), 1)) {
		s.failComparingValues("is equal to", "+Inf")
	}
}

func (s *Subject) IsNegativeInfinity() {
	s.t.Helper()
	if n, ok := s.number("IsNegativeInfinity"); ok && !(imag(n) == 0 && math.IsInf(real(n), -1)) {
		s.failComparingValues("is equal to", "-Inf")
	}
}

func (s *Subject) IsNaN() {
	s.t.Helper()
	if n, ok := s.number("IsNaN"); ok && !cmplx.IsNaN(n) {
		s.failComparingValues("is equal to", "NaN")
	}
}

func (s *Subject) IsNotNaN() {
	s.t.Helper()
	if n, ok := s.number("IsNotNaN"); ok && cmplx.IsNaN(n) {
		s.failWithSubject("should not have been <NaN>")
	}
}

// IsWithin starts a tolerance check; complete it with Of.
//
//	truth.Assert(0.1 + 0.2).IsWithin(1e-9).Of(0.3)
func (s *Subject) IsWithin(tolerance float64) *TolerantSubject {
	s.t.Helper()
	return s.tolerant("IsWithin", tolerance, true)
}

func (s *Subject) IsNotWithin(tolerance float64) *TolerantSubject {
	s.t.Helper()
	return s.tolerant("IsNotWithin", tolerance, false)
}

func (s *Subject) tolerant(name string, tolerance float64, within bool) *TolerantSubject {
	s.t.Helper()
	ts := &TolerantSubject{subject: s, tolerance: tolerance, within: within}
	n, ok := s.number(name)
	if !ok {
		ts.muted = true
		return ts
	}
	ts.actual = n
	ts.track(ts)
	return ts
}

// TolerantSubject is a number waiting for the value it should (or should
// not) be close to. It is unresolved until Of is called.
type TolerantSubject struct {
	handle

	subject   *Subject
	actual    complex128
	tolerance float64
	within    bool
	muted     bool
}

func (ts *TolerantSubject) String() string {
	return "TolerantSubject(" + ts.subject.display() + ")"
}

// Of compares the value with expected. The tolerance must be a finite,
// non-negative number.
func (ts *TolerantSubject) Of(expected any) {
	t := ts.subject.t
	t.Helper()
	if ts.muted {
		return
	}
	ts.resolve(ts)

	tr := ts.subject.truth
	switch tol := ts.tolerance; {
	case math.IsNaN(tol):
		tr.misuse("tolerance cannot be <NaN>")
		return
	case tol < 0:
		tr.misuse("tolerance cannot be negative")
		return
	case math.IsInf(tol, 1):
		tr.misuse("tolerance cannot be positive infinity")
		return
	}
	want, ok := capability.Complex(expected)
	if !ok {
		tr.misuse(fmt.Sprintf("Of requires a number, got %s", repr.Value(expected)))
		return
	}

	near := cmplx.Abs(ts.actual-want) <= ts.tolerance
	if near == ts.within {
		return
	}
	not := ""
	if !ts.within {
		not = "not "
	}
	ts.subject.failWithSubject(fmt.Sprintf("and <%s> should %shave been within <%s> of each other",
		repr.Value(expected), not, repr.Value(ts.tolerance)))
}
