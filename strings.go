package truth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gnoswap-labs/truth/internal/repr"
)

// str returns the value of a string subject, gating on name.
func (s *Subject) str(name string) (string, bool) {
	s.t.Helper()
	if !s.allow(name) {
		return "", false
	}
	v, _ := stringOf(s.actual())
	return v, true
}

// HasLength checks the length in runes.
func (s *Subject) HasLength(n int) {
	s.t.Helper()
	v, ok := s.str("HasLength")
	if !ok {
		return
	}
	if got := utf8.RuneCountInString(v); got != n {
		s.failWithProposition(fmt.Sprintf("has a length of %d. It is %d", n, got), "")
	}
}

func (s *Subject) StartsWith(prefix string) {
	s.t.Helper()
	if v, ok := s.str("StartsWith"); ok && !strings.HasPrefix(v, prefix) {
		s.failComparingValues("starts with", repr.Value(prefix))
	}
}

func (s *Subject) EndsWith(suffix string) {
	s.t.Helper()
	if v, ok := s.str("EndsWith"); ok && !strings.HasSuffix(v, suffix) {
		s.failComparingValues("ends with", repr.Value(suffix))
	}
}

// Matches checks that pattern matches at the start of the value. pattern is
// a string or a *regexp.Regexp.
func (s *Subject) Matches(pattern any) {
	s.t.Helper()
	v, re, ok := s.match("Matches", pattern, true)
	if ok && !re.MatchString(v) {
		s.failWithProposition(fmt.Sprintf("matches <%s>", patternOf(pattern)), "")
	}
}

func (s *Subject) DoesNotMatch(pattern any) {
	s.t.Helper()
	v, re, ok := s.match("DoesNotMatch", pattern, true)
	if ok && re.MatchString(v) {
		s.failWithProposition(fmt.Sprintf("fails to match <%s>", patternOf(pattern)), "")
	}
}

// ContainsMatch checks that pattern matches anywhere in the value.
func (s *Subject) ContainsMatch(pattern any) {
	s.t.Helper()
	v, re, ok := s.match("ContainsMatch", pattern, false)
	if ok && !re.MatchString(v) {
		s.failWithSubject(fmt.Sprintf("should have contained a match for <%s>", patternOf(pattern)))
	}
}

func (s *Subject) DoesNotContainMatch(pattern any) {
	s.t.Helper()
	v, re, ok := s.match("DoesNotContainMatch", pattern, false)
	if ok && re.MatchString(v) {
		s.failWithSubject(fmt.Sprintf("should not have contained a match for <%s>", patternOf(pattern)))
	}
}

func (s *Subject) match(name string, pattern any, anchored bool) (string, *regexp.Regexp, bool) {
	s.t.Helper()
	v, ok := s.str(name)
	if !ok {
		return "", nil, false
	}
	re, err := compilePattern(pattern, anchored)
	if err != nil {
		s.truth.misuse(fmt.Sprintf("%s: %v", name, err))
		return "", nil, false
	}
	return v, re, true
}

func compilePattern(pattern any, anchored bool) (*regexp.Regexp, error) {
	var expr string
	switch p := pattern.(type) {
	case string:
		expr = p
	case *regexp.Regexp:
		if p == nil {
			return nil, fmt.Errorf("nil pattern")
		}
		if !anchored {
			return p, nil
		}
		expr = p.String()
	default:
		return nil, fmt.Errorf("pattern must be a string or *regexp.Regexp, got %s", repr.Value(pattern))
	}
	if anchored {
		expr = `^(?:` + expr + `)`
	}
	return regexp.Compile(expr)
}

func patternOf(pattern any) string {
	if re, ok := pattern.(*regexp.Regexp); ok {
		return re.String()
	}
	return fmt.Sprint(pattern)
}
