// Package formatter renders unresolved subjects as compiler-style
// diagnostics pointing at the line that created them.
package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnoswap-labs/truth/internal/config"
	"github.com/gnoswap-labs/truth/internal/site"
	tt "github.com/gnoswap-labs/truth/internal/types"
)

const tabWidth = 8

// Rule is the diagnostic name of an unresolved subject.
const Rule = "unresolved-assertion"

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

const issueTemplate = `{{header .MaxLineNumWidth .Filename .Line -}}
{{snippet .Source .Line .MaxLineNumWidth .Padding -}}
{{underlineAndMessage .Message .Padding .Source -}}
{{note .Function}}
`

var tmpl = template.Must(template.New("unresolved").Funcs(template.FuncMap{
	"header":              header,
	"snippet":             codeSnippet,
	"underlineAndMessage": underlineAndMessage,
	"note":                note,
}).Parse(issueTemplate))

// UseColor applies the color setting of the configuration file. In auto
// mode color is enabled only for terminals.
func UseColor(mode config.ColorMode) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

type IssueData struct {
	Filename        string
	Line            int
	Function        string
	Message         string
	Source          string
	MaxLineNumWidth int
	Padding         string
}

// Format renders every unresolved subject, reading the source line of each
// creation site when the file is available.
func Format(unresolved []tt.Unresolved) string {
	var b strings.Builder
	for _, u := range unresolved {
		b.WriteString(buildIssue(u, site.Line(u.Site.Position.Filename, u.Site.Position.Line)))
	}
	return b.String()
}

// Render writes Format(unresolved) to w.
func Render(w io.Writer, unresolved []tt.Unresolved) error {
	_, err := io.WriteString(w, Format(unresolved))
	return err
}

func buildIssue(u tt.Unresolved, source string) string {
	width := calculateMaxLineNumWidth(u.Site.Position.Line)
	data := IssueData{
		Filename:        u.Site.Position.Filename,
		Line:            u.Site.Position.Line,
		Function:        u.Site.Function,
		Message:         u.Subject + " was created but never evaluated",
		Source:          source,
		MaxLineNumWidth: width,
		Padding:         strings.Repeat(" ", width+1),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v\n", err)
	}
	return buf.String()
}

func header(maxLineNumWidth int, filename string, line int) string {
	s := errorStyle.Sprint("error: ") + ruleStyle.Sprintf("%s\n", Rule)
	s += lineStyle.Sprintf("%s--> ", strings.Repeat(" ", maxLineNumWidth))
	if filename == "" {
		return s + fileStyle.Sprint("<unknown>\n")
	}
	return s + fileStyle.Sprintf("%s:%d\n", filename, line)
}

func codeSnippet(source string, line, maxLineNumWidth int, padding string) string {
	if source == "" {
		return ""
	}
	s := lineStyle.Sprintf("%s|\n", padding)
	s += lineStyle.Sprintf("%*d | ", maxLineNumWidth, line) + source + "\n"
	return s
}

func underlineAndMessage(message, padding, source string) string {
	var s string
	if source != "" {
		s = lineStyle.Sprintf("%s| ", padding)
		s += messageStyle.Sprintf("%s\n", strings.Repeat("~", visualWidth(source)))
	}
	s += lineStyle.Sprintf("%s= ", padding)
	s += messageStyle.Sprintf("%s\n", message)
	return s
}

func note(function string) string {
	if function == "" {
		return ""
	}
	return noteStyle.Sprint("Note: ") + lineStyle.Sprintf("created in %s\n", function)
}

func calculateMaxLineNumWidth(line int) int {
	return len(fmt.Sprintf("%d", line))
}

// visualWidth is the number of columns line occupies, expanding tabs.
func visualWidth(line string) int {
	w := 0
	for _, ch := range line {
		if ch == '\t' {
			w += tabWidth - (w % tabWidth)
		} else {
			w++
		}
	}
	return w
}
