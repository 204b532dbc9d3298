package truth

import (
	"github.com/gnoswap-labs/truth/internal/capability"
)

type proposition struct {
	name string
	caps capability.Set
}

// propositions lists every proposition with the capabilities that allow it.
// A subject may call a proposition when it has at least one of them.
var propositions = []proposition{
	{"IsEqualTo", capability.Generic},
	{"IsNotEqualTo", capability.Generic},
	{"IsNil", capability.Generic},
	{"IsNotNil", capability.Generic},
	{"IsIn", capability.Generic},
	{"IsNotIn", capability.Generic},
	{"IsAnyOf", capability.Generic},
	{"IsNoneOf", capability.Generic},
	{"IsInstanceOf", capability.Generic},
	{"IsNotInstanceOf", capability.Generic},
	{"IsSameAs", capability.Generic},
	{"IsNotSameAs", capability.Generic},
	{"IsTruthy", capability.Generic},
	{"IsFalsy", capability.Generic},
	{"IsTrue", capability.Generic},
	{"IsFalse", capability.Generic},
	{"HasAttribute", capability.Generic},
	{"DoesNotHaveAttribute", capability.Generic},
	{"IsCallable", capability.Generic},
	{"IsNotCallable", capability.Generic},

	{"IsAtLeast", capability.Comparable},
	{"IsAtMost", capability.Comparable},
	{"IsGreaterThan", capability.Comparable},
	{"IsLessThan", capability.Comparable},

	{"IsZero", capability.Numeric},
	{"IsNonZero", capability.Numeric},
	{"IsFinite", capability.Numeric},
	{"IsPositiveInfinity", capability.Numeric},
	{"IsNegativeInfinity", capability.Numeric},
	{"IsNaN", capability.Numeric},
	{"IsNotNaN", capability.Numeric},
	{"IsWithin", capability.Numeric},
	{"IsNotWithin", capability.Numeric},

	{"HasSize", capability.Iterable},
	{"IsEmpty", capability.Iterable},
	{"IsNotEmpty", capability.Iterable},
	{"Contains", capability.Iterable},
	{"DoesNotContain", capability.Iterable},
	{"ContainsNoDuplicates", capability.Iterable},
	{"ContainsAllIn", capability.Iterable},
	{"ContainsAllOf", capability.Iterable},
	{"ContainsAnyIn", capability.Iterable},
	{"ContainsAnyOf", capability.Iterable},
	{"ContainsExactly", capability.Iterable},
	{"ContainsExactlyElementsIn", capability.Iterable},
	{"ContainsNoneIn", capability.Iterable},
	{"ContainsNoneOf", capability.Iterable},
	{"IsOrdered", capability.Iterable},
	{"IsOrderedAccordingTo", capability.Iterable},
	{"IsStrictlyOrdered", capability.Iterable},
	{"IsStrictlyOrderedAccordingTo", capability.Iterable},

	{"ContainsKey", capability.Mapping},
	{"DoesNotContainKey", capability.Mapping},
	{"ContainsItem", capability.Mapping},
	{"DoesNotContainItem", capability.Mapping},
	{"ContainsExactlyItemsIn", capability.Mapping},

	{"HasLength", capability.String},
	{"StartsWith", capability.String},
	{"EndsWith", capability.String},
	{"Matches", capability.String},
	{"DoesNotMatch", capability.String},
	{"ContainsMatch", capability.String},
	{"DoesNotContainMatch", capability.String},

	{"IsSubtypeOf", capability.Class},

	{"HasMessage", capability.Exception},
	{"HasMessageThat", capability.Exception},
	{"HasArgsThat", capability.Exception},
	{"IsRaised", capability.Exception | capability.ExceptionClass},

	{"WasCalled", capability.CallDouble},
	{"WasNotCalled", capability.CallDouble},
	{"HasCalls", capability.CallDouble},
	{"HasExactlyCalls", capability.CallDouble},
	{"Method", capability.CallDouble},
}

var required = func() map[string]capability.Set {
	m := make(map[string]capability.Set, len(propositions))
	for _, p := range propositions {
		m[p.name] = p.caps
	}
	return m
}()

// VocabularyGroup is the set of propositions unlocked by one capability.
type VocabularyGroup struct {
	Capability   string   `yaml:"capability"`
	Propositions []string `yaml:"propositions"`
}

// Vocabulary returns every proposition name grouped by the capability that
// unlocks it. A proposition unlocked by several capabilities appears in each
// group.
func Vocabulary() []VocabularyGroup {
	var groups []VocabularyGroup
	for _, c := range capability.All() {
		g := VocabularyGroup{Capability: c.String()}
		for _, p := range propositions {
			if p.caps.Has(c) {
				g.Propositions = append(g.Propositions, p.name)
			}
		}
		if len(g.Propositions) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
