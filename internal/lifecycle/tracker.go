// Package lifecycle keeps track of subjects that were created but not yet
// evaluated by any proposition.
package lifecycle

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	tt "github.com/gnoswap-labs/truth/internal/types"
)

// Tracker is a registry of unresolved subjects keyed by identity. The zero
// value is not usable; use New.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	pending map[fmt.Stringer]entry
}

type entry struct {
	seq  uint64
	site tt.Site
}

func New() *Tracker {
	return &Tracker{pending: make(map[fmt.Stringer]entry)}
}

// Register records subject as unresolved. subject must be a pointer so that
// distinct subjects never collide.
func (t *Tracker) Register(subject fmt.Stringer, site tt.Site) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	t.pending[subject] = entry{seq: t.seq, site: site}
}

// Resolve removes subject from the registry. It reports whether the subject
// was pending.
func (t *Tracker) Resolve(subject fmt.Stringer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.pending[subject]
	delete(t.pending, subject)
	return ok
}

// ResolveAll clears the registry.
func (t *Tracker) ResolveAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.pending)
}

// Len returns the number of pending subjects.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending)
}

// Pending returns the unresolved subjects in creation order.
func (t *Tracker) Pending() []tt.Unresolved {
	t.mu.Lock()
	type pendingSubject struct {
		subject fmt.Stringer
		entry
	}
	all := make([]pendingSubject, 0, len(t.pending))
	for s, e := range t.pending {
		all = append(all, pendingSubject{s, e})
	}
	t.mu.Unlock()

	slices.SortFunc(all, func(a, b pendingSubject) int {
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]tt.Unresolved, len(all))
	for i, p := range all {
		// Not under t.mu.
		out[i] = tt.Unresolved{Subject: p.subject.String(), Site: p.site}
	}
	return out
}
