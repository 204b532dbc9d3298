package truth

import (
	"reflect"

	"github.com/stretchr/testify/mock"

	"github.com/gnoswap-labs/truth/internal/capability"
)

type kind int

const (
	defaultKind kind = iota
	booleanKind
	classKind
	exceptionClassKind
	exceptionKind
	comparableKind
	numericKind
	iterableKind
	comparableIterableKind
	dictionaryKind
	stringKind
	callDoubleKind
	noneKind
)

var kinds = [...]struct {
	name string
	caps capability.Set
}{
	defaultKind:            {"DefaultSubject", capability.Generic},
	booleanKind:            {"BooleanSubject", capability.Generic | capability.Boolean},
	classKind:              {"ClassSubject", capability.Generic | capability.Class},
	exceptionClassKind:     {"ExceptionClassSubject", capability.Generic | capability.Class | capability.ExceptionClass},
	exceptionKind:          {"ExceptionSubject", capability.Generic | capability.Exception},
	comparableKind:         {"ComparableSubject", capability.Generic | capability.Comparable},
	numericKind:            {"NumericSubject", capability.Generic | capability.Comparable | capability.Numeric},
	iterableKind:           {"IterableSubject", capability.Generic | capability.Iterable},
	comparableIterableKind: {"ComparableIterableSubject", capability.Generic | capability.Comparable | capability.Iterable},
	dictionaryKind:         {"DictionarySubject", capability.Generic | capability.Iterable | capability.Mapping},
	stringKind:             {"StringSubject", capability.Generic | capability.Comparable | capability.Iterable | capability.String},
	callDoubleKind:         {"CallDoubleSubject", capability.Generic | capability.CallDouble},
	noneKind:               {"NoneSubject", capability.Generic},
}

var (
	errorType      = reflect.TypeFor[error]()
	callDoubleType = reflect.TypeFor[CallDouble]()
	mockType       = reflect.TypeFor[mock.Mock]()
)

// explicitKind binds a base type to a subject kind. descriptor is nil for
// the untyped nil entry.
type explicitKind struct {
	descriptor reflect.Type
	matches    func(t reflect.Type) bool
	kind       kind
}

// explicitKinds is consulted in order against the value's dynamic type. No
// descriptor may be assignable to, or implement, another one.
var explicitKinds = []explicitKind{
	{errorType, implements(errorType), exceptionKind},
	{reflect.TypeFor[string](), kindOf(reflect.String), stringKind},
	{callDoubleType, implements(callDoubleType), callDoubleKind},
	{reflect.TypeFor[bool](), kindOf(reflect.Bool), booleanKind},
	{reflect.TypeFor[map[any]any](), kindOf(reflect.Map), dictionaryKind},
	{nil, func(t reflect.Type) bool { return t == nil }, noneKind},
}

func implements(iface reflect.Type) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		return t != nil && t.Implements(iface)
	}
}

func kindOf(k reflect.Kind) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		return t != nil && t.Kind() == k
	}
}

// dispatch creates the subject matching value's capabilities. It never fails:
// values with no specific capability get a default subject.
func dispatch(tr *Truth, value any) *Subject {
	if t, ok := value.(reflect.Type); ok && t != nil {
		if isErrorType(t) {
			return newSubject(tr, value, exceptionClassKind)
		}
		return newSubject(tr, value, classKind)
	}

	t := reflect.TypeOf(value)
	for _, e := range explicitKinds {
		if !e.matches(t) {
			continue
		}
		s := newSubject(tr, value, e.kind)
		if e.kind == callDoubleKind {
			s.double = value.(CallDouble)
		}
		return s
	}

	if m, ok := mockOf(value); ok {
		s := newSubject(tr, value, callDoubleKind)
		s.double = &mockDouble{mock: m, name: t.String()}
		return s
	}

	ordered, iterable := capability.IsOrdered(t), capability.IsIterable(t)
	switch {
	case capability.IsNumeric(t):
		return newSubject(tr, value, numericKind)
	case ordered && iterable:
		return newSubject(tr, value, comparableIterableKind)
	case ordered:
		return newSubject(tr, value, comparableKind)
	case iterable:
		return newSubject(tr, value, iterableKind)
	}
	return newSubject(tr, value, defaultKind)
}

// isErrorType reports whether t, or a pointer to t, implements error.
func isErrorType(t reflect.Type) bool {
	return t.Implements(errorType) || reflect.PointerTo(t).Implements(errorType)
}

// mockOf returns the testify mock behind v: v itself, or the mock.Mock
// embedded in the struct v points to.
func mockOf(v any) (*mock.Mock, bool) {
	if m, ok := v.(*mock.Mock); ok {
		return m, m != nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.Anonymous {
			continue
		}
		switch f.Type {
		case mockType:
			return rv.Field(i).Addr().Interface().(*mock.Mock), true
		case reflect.PointerTo(mockType):
			if m := rv.Field(i); !m.IsNil() {
				return m.Interface().(*mock.Mock), true
			}
		}
	}
	return nil, false
}
