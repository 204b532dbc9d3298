// Package site locates where in a test a subject was created and reads the
// corresponding source line for reports.
package site

import (
	"go/token"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	tt "github.com/gnoswap-labs/truth/internal/types"
)

const modulePath = "github.com/gnoswap-labs/truth"

// Capture returns the first caller frame outside this module's non-test
// code. skip is the number of frames to ignore above Capture's caller.
func Capture(skip int) tt.Site {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !isLibraryFrame(frame) {
			return tt.Site{
				Function: frame.Function,
				Position: token.Position{Filename: frame.File, Line: frame.Line},
			}
		}
		if !more {
			return tt.Site{}
		}
	}
}

func isLibraryFrame(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	return strings.HasPrefix(f.Function, modulePath+".") ||
		strings.HasPrefix(f.Function, modulePath+"/internal/")
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines        []string
	LastModified time.Time
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines, LastModified: info.ModTime()}, nil
}

var files = struct {
	sync.RWMutex
	entries map[string]*SourceCode
}{entries: make(map[string]*SourceCode)}

// Source returns the cached content of filename, reloading it when the file
// changed on disk.
func Source(filename string) (*SourceCode, error) {
	files.RLock()
	entry, ok := files.entries[filename]
	files.RUnlock()

	if ok {
		info, err := os.Stat(filename)
		if err == nil && info.ModTime().Equal(entry.LastModified) {
			return entry, nil
		}
	}

	src, err := ReadSourceCode(filename)
	if err != nil {
		return nil, err
	}

	files.Lock()
	files.entries[filename] = src
	files.Unlock()
	return src, nil
}

// Line returns the trimmed text of line n (1-based) of filename, or "" when
// it cannot be read.
func Line(filename string, n int) string {
	if filename == "" || n < 1 {
		return ""
	}
	src, err := Source(filename)
	if err != nil || n > len(src.Lines) {
		return ""
	}
	return strings.TrimSpace(src.Lines[n-1])
}
