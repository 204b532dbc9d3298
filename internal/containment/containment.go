// Package containment holds the multiset and ordering reconciliation behind
// the "contains" family of propositions. It works on materialized element
// slices and reports what is missing, extra or out of order; turning that
// into failure messages is left to the caller.
package containment

import (
	"github.com/gnoswap-labs/truth/internal/counter"
	"github.com/gnoswap-labs/truth/internal/equality"
)

// Exact is the outcome of comparing actual against expected as multisets.
type Exact struct {
	Missing *counter.Counter
	Extra   *counter.Counter
	// InOrder is true only when both sequences are element-wise equal.
	InOrder bool
}

// Matched reports whether actual and expected hold the same multiset.
func (e Exact) Matched() bool {
	return e.Missing.Len() == 0 && e.Extra.Len() == 0
}

// Exactly compares actual with expected. Pairs are walked while they are
// equal; from the first mismatch (or the end of either side) the remaining
// expected elements seed Missing and every remaining actual element is
// either taken out of Missing or added to Extra.
func Exactly(actual, expected []any) Exact {
	i := 0
	for i < len(actual) && i < len(expected) && equality.Equal(actual[i], expected[i]) {
		i++
	}

	result := Exact{
		Missing: counter.Of(expected[i:]),
		Extra:   counter.New(),
		InOrder: i == len(actual) && i == len(expected),
	}
	for _, a := range actual[i:] {
		if result.Missing.Contains(a) {
			result.Missing.Decrement(a)
			continue
		}
		result.Extra.Increment(a)
	}
	return result
}

// AllOf checks that every expected element occurs in actual, counting
// duplicates independently. It returns every missing element and whether
// the found elements appear in actual in the expected relative order.
//
// Elements skipped while searching for the next expected element move to an
// out-of-order pool; an expected element found only in that pool is present
// but breaks the ordering.
func AllOf(actual, expected []any) (missing *counter.Counter, inOrder bool) {
	work := actual
	pool := counter.New()
	missing = counter.New()
	inOrder = true

	for _, e := range expected {
		if idx := Index(work, e); idx >= 0 {
			for _, skipped := range work[:idx] {
				pool.Increment(skipped)
			}
			work = work[idx+1:]
			continue
		}
		if pool.Contains(e) {
			pool.Decrement(e)
			inOrder = false
			continue
		}
		missing.Increment(e)
	}
	return missing, inOrder
}

// AnyOf reports whether at least one expected element occurs in actual.
func AnyOf(actual, expected []any) bool {
	if len(expected) == 1 {
		return Index(actual, expected[0]) >= 0
	}
	present := counter.Of(actual)
	for _, e := range expected {
		if present.Contains(e) {
			return true
		}
	}
	return false
}

// NoneOf returns every excluded element that occurs in actual, in the order
// of excluded.
func NoneOf(actual, excluded []any) []any {
	present := counter.Of(actual)
	var found []any
	for _, e := range excluded {
		if present.Contains(e) {
			found = append(found, e)
		}
	}
	return found
}

// Duplicates returns the elements of actual seen more than once, with their
// total counts.
func Duplicates(actual []any) *counter.Counter {
	seen := counter.Of(actual)
	dups := counter.New()
	seen.Each(func(x any, count int) {
		if count < 2 {
			return
		}
		for range count {
			dups.Increment(x)
		}
	})
	return dups
}

// Unordered returns the index of the first element that does not satisfy
// inOrder against its predecessor, or -1 when every adjacent pair does.
func Unordered(actual []any, inOrder func(prev, cur any) bool) int {
	for i := 1; i < len(actual); i++ {
		if !inOrder(actual[i-1], actual[i]) {
			return i
		}
	}
	return -1
}

// Index returns the position of the first element of values equal to x, or
// -1.
func Index(values []any, x any) int {
	for i, v := range values {
		if equality.Equal(v, x) {
			return i
		}
	}
	return -1
}
