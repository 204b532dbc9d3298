package types

import (
	"fmt"
	"go/token"
)

// Site is the place in a test file where a subject was created.
type Site struct {
	Function string
	Position token.Position
}

func (s Site) String() string {
	if !s.Position.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", s.Position.Filename, s.Position.Line)
}

// Unresolved describes a subject that was created but never evaluated.
type Unresolved struct {
	// Subject is the display form of the subject, e.g. `StringSubject("abc")`.
	Subject string
	Site    Site
}
