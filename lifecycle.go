package truth

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/truth/formatter"
	"github.com/gnoswap-labs/truth/internal/config"
	"github.com/gnoswap-labs/truth/internal/lifecycle"
	"github.com/gnoswap-labs/truth/internal/site"
	tt "github.com/gnoswap-labs/truth/internal/types"
)

// tracker holds every subject created by this process that no proposition
// has evaluated yet.
var tracker = lifecycle.New()

// Unresolved describes a subject that was created but never evaluated.
type Unresolved = tt.Unresolved

const unresolvedHeader = "The following assertions were unresolved." +
	` Perhaps you called "Assert(thing.IsEmpty())" instead of "Assert(thing).IsEmpty()".`

// CheckUnresolved returns a *LifecycleError listing every subject not yet
// evaluated, in creation order, or nil when there is none. It does not
// resolve them: a second call reports the same subjects.
func CheckUnresolved() error {
	pending := tracker.Pending()
	if len(pending) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(unresolvedHeader)
	for _, u := range pending {
		fmt.Fprintf(&b, "\n    * %s created at %s", u.Subject, u.Site)
		if u.Site.Function != "" {
			fmt.Fprintf(&b, " in %s", u.Site.Function)
		}
		if line := site.Line(u.Site.Position.Filename, u.Site.Position.Line); line != "" {
			fmt.Fprintf(&b, ":\n      %s", line)
		}
	}
	log().Warn("unresolved assertions", zap.Int("count", len(pending)))
	return withStack(&LifecycleError{Message: b.String(), Unresolved: pending})
}

// ResolveAll marks every pending subject as resolved. Harnesses that leave
// subjects unevaluated on purpose call it before the checkpoint.
func ResolveAll() {
	tracker.ResolveAll()
}

// TestingM is satisfied by *testing.M.
type TestingM interface {
	Run() int
}

var exit = os.Exit

// VerifyTestMain runs the tests, then reports the subjects they left
// unevaluated and exits. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		truth.VerifyTestMain(m)
//	}
//
// The lifecycle key of .truth.yaml decides whether unresolved subjects fail
// the run (the default), are only printed, or are ignored.
func VerifyTestMain(m TestingM) {
	code := m.Run()
	exit(verify(code, settings().Config))
}

func verify(code int, c config.Config) int {
	if c.Lifecycle == config.LifecycleOff {
		return code
	}
	pending := tracker.Pending()
	if len(pending) == 0 {
		return code
	}

	formatter.UseColor(c.Color)
	fmt.Fprintf(os.Stderr, "truth: %d unresolved assertion(s)\n\n", len(pending))
	if err := formatter.Render(os.Stderr, pending); err != nil {
		log().Error("rendering unresolved assertions", zap.Error(err))
	}
	if c.Lifecycle == config.LifecycleFail && code == 0 {
		return 1
	}
	return code
}

// VerifyNone fails t if any subject is unresolved, then resolves them all so
// that later checks start clean. Subjects created by parallel tests are
// included; call it from tests that do not run in parallel.
func VerifyNone(t TestingT) {
	t.Helper()
	if err := CheckUnresolved(); err != nil {
		t.Error(err)
	}
	ResolveAll()
}
