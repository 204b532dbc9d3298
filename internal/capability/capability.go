// Package capability classifies runtime values by what can be verified about
// them and provides the reflective operations behind each capability.
package capability

import (
	"strings"
)

// Set is a bit set of capabilities.
type Set uint16

const (
	Generic Set = 1 << iota
	Boolean
	Comparable
	Numeric
	Iterable
	Mapping
	String
	Class
	Exception
	ExceptionClass
	CallDouble
)

var names = []struct {
	set  Set
	name string
}{
	{Generic, "generic"},
	{Boolean, "boolean"},
	{Comparable, "comparable"},
	{Numeric, "numeric"},
	{Iterable, "iterable"},
	{Mapping, "mapping"},
	{String, "string"},
	{Class, "class"},
	{Exception, "exception"},
	{ExceptionClass, "exception-class"},
	{CallDouble, "call-double"},
}

// Has reports whether s shares at least one capability with other.
func (s Set) Has(other Set) bool {
	return s&other != 0
}

// Names returns the names of the capabilities in s, in declaration order.
func (s Set) Names() []string {
	var out []string
	for _, n := range names {
		if s&n.set != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

func (s Set) String() string {
	return strings.Join(s.Names(), "|")
}

// All returns every single capability, in declaration order.
func All() []Set {
	out := make([]Set, len(names))
	for i, n := range names {
		out[i] = n.set
	}
	return out
}
