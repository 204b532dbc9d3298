package truth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringPass(t *testing.T) {
	t.Parallel()

	Assert("héllo").HasLength(5)
	Assert("hello").StartsWith("he")
	Assert("hello").EndsWith("lo")
	Assert("hello").Matches("h.l")
	Assert("hello").Matches(regexp.MustCompile(`h.*o$`))
	Assert("hello").DoesNotMatch("ell")
	Assert("hello").ContainsMatch("l{2}")
	Assert("hello").ContainsMatch(regexp.MustCompile(`o$`))
	Assert("hello").DoesNotContainMatch(`\d`)
	Assert(label("x")).StartsWith("x")
}

func TestStringFail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       func()
		fragment string
	}{
		{"HasLength", func() { Assert("abc").HasLength(2) }, `Not true that <"abc"> has a length of 2. It is 3.`},
		{"StartsWith", func() { Assert("abc").StartsWith("b") }, `Not true that <"abc"> starts with <"b">.`},
		{"EndsWith", func() { Assert("abc").EndsWith("b") }, `Not true that <"abc"> ends with <"b">.`},
		{"Matches is anchored", func() { Assert("abc").Matches("b") }, `Not true that <"abc"> matches <b>.`},
		{"DoesNotMatch", func() { Assert("abc").DoesNotMatch("a|x") }, `Not true that <"abc"> fails to match <a|x>.`},
		{"ContainsMatch", func() { Assert("abc").ContainsMatch(`\d`) }, `<"abc"> should have contained a match for <\d>.`},
		{"DoesNotContainMatch", func() { Assert("abc").DoesNotContainMatch("b") }, `<"abc"> should not have contained a match for <b>.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requireFailure(t, tt.fn, tt.fragment)
		})
	}
}

func TestPatternMisuse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern any
		msg     string
	}{
		{"invalid", "(", "ContainsMatch: error parsing regexp"},
		{"wrong type", 3, "ContainsMatch: pattern must be a string or *regexp.Regexp, got 3"},
		{"nil regexp", (*regexp.Regexp)(nil), "ContainsMatch: nil pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := misuseOf("abc", func(s *Subject) { s.ContainsMatch(tt.pattern) })
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUsage)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
