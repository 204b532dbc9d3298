package truth

import (
	"fmt"
	"reflect"

	"github.com/gnoswap-labs/truth/internal/capability"
	"github.com/gnoswap-labs/truth/internal/equality"
	"github.com/gnoswap-labs/truth/internal/repr"
)

// Item is a key/value pair of a map.
type Item struct {
	Key   any
	Value any
}

func (i Item) GoString() string {
	return fmt.Sprintf("(%s, %s)", repr.Value(i.Key), repr.Value(i.Value))
}

// lookup returns m[key]. A key whose type cannot index m is absent.
func lookup(m reflect.Value, key any) (any, bool) {
	kt := m.Type().Key()
	var k reflect.Value
	switch {
	case key == nil:
		switch kt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			k = reflect.Zero(kt)
		default:
			return nil, false
		}
	case reflect.TypeOf(key).AssignableTo(kt):
		k = reflect.ValueOf(key)
	default:
		return nil, false
	}
	v := m.MapIndex(k)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// items returns the entries of m ordered by key.
func items(m reflect.Value) []any {
	keys := capability.SortedKeys(m)
	out := make([]any, len(keys))
	for i, k := range keys {
		v, _ := lookup(m, k)
		out[i] = Item{Key: k, Value: v}
	}
	return out
}

func (s *Subject) mapValue() reflect.Value {
	return reflect.ValueOf(s.actual())
}

func (s *Subject) ContainsKey(key any) {
	s.t.Helper()
	if !s.allow("ContainsKey") {
		return
	}
	if _, ok := lookup(s.mapValue(), key); !ok {
		s.failWithProposition(fmt.Sprintf("contains key <%s>", repr.Value(key)), "")
	}
}

func (s *Subject) DoesNotContainKey(key any) {
	s.t.Helper()
	if !s.allow("DoesNotContainKey") {
		return
	}
	if _, ok := lookup(s.mapValue(), key); ok {
		s.failWithProposition(fmt.Sprintf("does not contain key <%s>", repr.Value(key)), "")
	}
}

// ContainsItem checks that key maps to value. Failures point out a
// different value for key, or other keys mapped to value.
func (s *Subject) ContainsItem(key, value any) {
	s.t.Helper()
	if !s.allow("ContainsItem") {
		return
	}
	m := s.mapValue()
	item := Item{Key: key, Value: value}

	if v, ok := lookup(m, key); ok {
		if equality.Equal(v, value) {
			return
		}
		s.failWithProposition(fmt.Sprintf("contains item <%#v>. However, it has a mapping from <%s> to <%s>",
			item, repr.Value(key), repr.Value(v)), "")
		return
	}

	var others []any
	for _, it := range items(m) {
		if it := it.(Item); equality.Equal(it.Value, value) {
			others = append(others, it.Key)
		}
	}
	if len(others) > 0 {
		s.failWithProposition(fmt.Sprintf("contains item <%#v>. However, the following keys are mapped to <%s>: %s",
			item, repr.Value(value), repr.List(others)), "")
		return
	}
	s.failWithProposition(fmt.Sprintf("contains item <%#v>", item), "")
}

func (s *Subject) DoesNotContainItem(key, value any) {
	s.t.Helper()
	if !s.allow("DoesNotContainItem") {
		return
	}
	if v, ok := lookup(s.mapValue(), key); ok && equality.Equal(v, value) {
		s.failWithProposition(fmt.Sprintf("does not contain item <%#v>", Item{Key: key, Value: value}), "")
	}
}

// containsExactlyPairs is ContainsExactly for maps: kv alternates keys and
// values, and the expected order is the argument order.
func (s *Subject) containsExactlyPairs(kv []any) *Ordered {
	s.t.Helper()
	if len(kv)%2 != 0 {
		s.truth.misuse(fmt.Sprintf("There must be an equal number of key/value pairs"+
			" (i.e., the number of key/value parameters (%d) must be even).", len(kv)))
		return inOrder()
	}
	expected := make([]any, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		expected = append(expected, Item{Key: kv[i], Value: kv[i+1]})
	}
	return s.containsExactly(items(s.mapValue()), expected, repr.List(expected), false, "")
}

// ContainsExactlyItemsIn checks that the subject has exactly the entries of
// the map expected.
func (s *Subject) ContainsExactlyItemsIn(expected any) *Ordered {
	s.t.Helper()
	if !s.allow("ContainsExactlyItemsIn") {
		return inOrder()
	}
	if expected == nil || reflect.TypeOf(expected).Kind() != reflect.Map {
		s.truth.misuse(fmt.Sprintf("ContainsExactlyItemsIn requires a map argument, got %s", repr.Value(expected)))
		return inOrder()
	}
	want := items(reflect.ValueOf(expected))
	return s.containsExactly(items(s.mapValue()), want, repr.List(want), false, "")
}
