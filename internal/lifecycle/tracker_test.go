package lifecycle

import (
	"fmt"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	tt "github.com/gnoswap-labs/truth/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSubject struct{ name string }

func (f *fakeSubject) String() string { return f.name }

func siteAt(line int) tt.Site {
	return tt.Site{Function: "pkg.TestX", Position: token.Position{Filename: "x_test.go", Line: line}}
}

func TestTrackerOrder(t *testing.T) {
	t.Parallel()

	tr := New()
	a, b, c := &fakeSubject{"a"}, &fakeSubject{"b"}, &fakeSubject{"c"}
	tr.Register(a, siteAt(1))
	tr.Register(b, siteAt(2))
	tr.Register(c, siteAt(3))

	assert.True(t, tr.Resolve(b))
	assert.False(t, tr.Resolve(b))

	pending := tr.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].Subject)
	assert.Equal(t, 1, pending[0].Site.Position.Line)
	assert.Equal(t, "c", pending[1].Subject)

	tr.ResolveAll()
	assert.Zero(t, tr.Len())
	assert.Empty(t, tr.Pending())
}

func TestTrackerIdentity(t *testing.T) {
	t.Parallel()

	tr := New()
	x, y := &fakeSubject{"same"}, &fakeSubject{"same"}
	tr.Register(x, siteAt(1))
	tr.Register(y, siteAt(2))
	assert.Equal(t, 2, tr.Len())

	tr.Resolve(x)
	pending := tr.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Site.Position.Line)
}

func TestTrackerConcurrent(t *testing.T) {
	t.Parallel()

	const workers, perWorker = 8, 200
	tr := New()

	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for i := range perWorker {
				s := &fakeSubject{fmt.Sprintf("%d/%d", w, i)}
				tr.Register(s, siteAt(i+1))
				if i%2 == 0 && !tr.Resolve(s) {
					return fmt.Errorf("subject %s was not pending", s)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, workers*perWorker/2, tr.Len())
	assert.Len(t, tr.Pending(), workers*perWorker/2)
}
