// Package counter implements the duplicate-aware multiset used to report
// missing, extra and duplicated elements.
package counter

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gnoswap-labs/truth/internal/equality"
	"github.com/gnoswap-labs/truth/internal/repr"
)

// Counter is an ordered multiset. Hashable elements are kept in insertion
// order in a map and cost O(1) per operation; other elements live in an
// ordered slice and are found by a linear equality scan.
//
// Counts are always positive: an element whose count reaches zero is
// removed, and re-adding it places it last.
type Counter struct {
	hashable   *orderedmap.OrderedMap[any, int]
	unhashable []entry
}

type entry struct {
	value any
	count int
}

// New returns an empty Counter.
func New() *Counter {
	return &Counter{hashable: orderedmap.New[any, int]()}
}

// Of returns a Counter holding every element of values.
func Of(values []any) *Counter {
	c := New()
	for _, v := range values {
		c.Increment(v)
	}
	return c
}

// Increment adds one occurrence of x.
func (c *Counter) Increment(x any) {
	if equality.Hashable(x) {
		n, _ := c.hashable.Get(x)
		c.hashable.Set(x, n+1)
		return
	}
	if i := c.find(x); i >= 0 {
		c.unhashable[i].count++
		return
	}
	c.unhashable = append(c.unhashable, entry{value: x, count: 1})
}

// Decrement removes one occurrence of x. It does nothing when x is absent.
func (c *Counter) Decrement(x any) {
	if equality.Hashable(x) {
		n, ok := c.hashable.Get(x)
		if !ok {
			return
		}
		if n <= 1 {
			c.hashable.Delete(x)
			return
		}
		c.hashable.Set(x, n-1)
		return
	}
	i := c.find(x)
	if i < 0 {
		return
	}
	if c.unhashable[i].count <= 1 {
		c.unhashable = append(c.unhashable[:i], c.unhashable[i+1:]...)
		return
	}
	c.unhashable[i].count--
}

// Contains reports whether at least one occurrence of x is present.
func (c *Counter) Contains(x any) bool {
	return c.Count(x) > 0
}

// Count returns the number of occurrences of x.
func (c *Counter) Count(x any) int {
	if equality.Hashable(x) {
		n, _ := c.hashable.Get(x)
		return n
	}
	if i := c.find(x); i >= 0 {
		return c.unhashable[i].count
	}
	return 0
}

// Len returns the number of distinct elements.
func (c *Counter) Len() int {
	return c.hashable.Len() + len(c.unhashable)
}

// Each calls fn for every distinct element with its count: hashable
// elements first, in insertion order, then the others.
func (c *Counter) Each(fn func(x any, count int)) {
	for pair := c.hashable.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
	for _, e := range c.unhashable {
		fn(e.value, e.count)
	}
}

// String renders the multiset, annotating repeated elements:
//
//	["a" [2 copies], "b"]
func (c *Counter) String() string {
	parts := make([]string, 0, c.Len())
	c.Each(func(x any, count int) {
		if count == 1 {
			parts = append(parts, repr.Value(x))
			return
		}
		parts = append(parts, fmt.Sprintf("%s [%d copies]", repr.Value(x), count))
	})
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *Counter) find(x any) int {
	for i, e := range c.unhashable {
		if equality.Equal(e.value, x) {
			return i
		}
	}
	return -1
}
