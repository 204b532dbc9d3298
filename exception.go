package truth

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/gnoswap-labs/truth/internal/capability"
	"github.com/gnoswap-labs/truth/internal/repr"
)

// IsSubtypeOf checks that the type is assignable to t: t itself, or an
// interface the type implements.
func (s *Subject) IsSubtypeOf(t reflect.Type) {
	s.t.Helper()
	if !s.allow("IsSubtypeOf") {
		return
	}
	actual, _ := s.actual().(reflect.Type)
	if t == nil || !actual.AssignableTo(t) {
		s.failComparingValues("is a subtype of", repr.Value(t))
	}
}

// message returns the error's message. A nil error pointer has none.
func message(err error) string {
	if capability.IsNil(err) {
		return ""
	}
	return err.Error()
}

func (s *Subject) HasMessage(expected string) {
	s.t.Helper()
	if !s.allow("HasMessage") {
		return
	}
	dispatch(s.truth, message(s.actual().(error))).IsEqualTo(expected)
}

// HasMessageThat returns a string subject for the error's message.
func (s *Subject) HasMessageThat() *Subject {
	s.t.Helper()
	if !s.allow("HasMessageThat") {
		return s
	}
	return dispatch(s.truth, message(s.actual().(error)))
}

// HasArgsThat returns an iterable subject over the data the error carries:
// its exported fields and unexported fields of basic kinds, in declaration
// order.
func (s *Subject) HasArgsThat() *Subject {
	s.t.Helper()
	if !s.allow("HasArgsThat") {
		return s
	}
	return dispatch(s.truth, argsOf(s.actual()))
}

func argsOf(v any) []any {
	if fields := capability.Fields(v); fields != nil {
		return fields
	}
	return []any{}
}

// IsRaised returns a scope that expects an error of the subject's type. For a
// reflect.Type subject any error assignable to that type matches; for an
// error subject the raised error must also have the same message and data.
//
//	truth.Assert(reflect.TypeFor[*fs.PathError]()).IsRaised().Run(func() error {
//		_, err := os.Open("missing")
//		return err
//	})
func (s *Subject) IsRaised() *Scope {
	s.t.Helper()
	if !s.allow("IsRaised") {
		return &Scope{subject: s, muted: true}
	}
	sc := &Scope{subject: s}
	switch v := s.actual().(type) {
	case reflect.Type:
		sc.typ = v
		if v.Kind() != reflect.Interface && !v.Implements(errorType) {
			sc.typ = reflect.PointerTo(v)
		}
	case error:
		sc.template = v
		sc.typ = reflect.TypeOf(v)
	}
	sc.track(sc)
	return sc
}

// Scope guards a block that is expected to fail with a particular error.
// Nothing raised inside the block escapes it: the error, or a recovered
// panic, is either accepted or turned into an AssertionFailure.
//
// Run must be called; an unrun Scope is reported as unresolved.
type Scope struct {
	handle

	subject    *Subject
	typ        reflect.Type
	template   error
	matching   []any
	containing []string
	muted      bool
}

func (sc *Scope) String() string {
	return "Scope(" + sc.subject.display() + ")"
}

// Matching additionally requires the message to contain a match for
// pattern, a string or *regexp.Regexp.
func (sc *Scope) Matching(pattern any) *Scope {
	sc.matching = append(sc.matching, pattern)
	return sc
}

// Containing additionally requires the message to contain substr.
func (sc *Scope) Containing(substr string) *Scope {
	sc.containing = append(sc.containing, substr)
	return sc
}

// Run calls fn and checks what it raised: its returned error, or the value
// it panicked with.
func (sc *Scope) Run(fn func() error) {
	s := sc.subject
	s.t.Helper()
	if sc.muted {
		return
	}
	sc.resolve(sc)

	err := guard(fn)
	if err == nil {
		s.failWithSubject("should have been raised, but was not")
		return
	}
	log().Debug("guarded block raised")

	target := reflect.New(sc.typ)
	if !errors.As(err, target.Interface()) {
		s.failWithSubject(fmt.Sprintf("should have been raised, but caught <%s>", repr.Value(err)))
		return
	}
	raised, _ := target.Elem().Interface().(error)

	for _, p := range sc.matching {
		dispatch(s.truth, message(raised)).ContainsMatch(p)
	}
	for _, sub := range sc.containing {
		dispatch(s.truth, message(raised)).Contains(sub)
	}
	if sc.template != nil {
		r := dispatch(s.truth, raised)
		r.HasMessage(message(sc.template))
		r.HasArgsThat().ContainsExactlyElementsIn(argsOf(sc.template)).InOrder()
	}
}

// guard runs fn, turning a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok {
				err = e
				return
			}
			err = errors.Newf("panic: %v", v)
		}
	}()
	return fn()
}
