package simplelogger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// EnvLogFile names the environment variable holding the log file path.
const EnvLogFile = "CORYDIFF_LOG_FILE"

var (
	mu     sync.Mutex
	mirror io.Writer
)

// Log is a minimal printf-style logger. It appends formatted output to the file specified by the CORYDIFF_LOG_FILE environment variable, and to the mirror writer
// if one was set with SetMirror.
//
// If CORYDIFF_LOG_FILE is unset/empty or the path can't be opened as a file, nothing is written to a file.
func Log(format string, args ...any) {
	write("", format, args...)
}

// SetMirror sets a writer (typically stderr, for --verbose) that receives a copy of every log line. Pass nil to stop mirroring.
func SetMirror(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	mirror = w
}

// Logger prefixes every line with the name of the component that logged it.
type Logger struct {
	component string
}

// For returns a Logger for component. Loggers are cheap values; packages usually keep one in a package-level var.
func For(component string) Logger {
	return Logger{component: component}
}

// Log formats and writes one line, prefixed with "[component] ".
func (l Logger) Log(format string, args ...any) {
	write(l.component, format, args...)
}

func write(component, format string, args ...any) {
	path := os.Getenv(EnvLogFile)

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	if path == "" && mirror == nil {
		return
	}

	var b bytes.Buffer
	if component != "" {
		_, _ = fmt.Fprintf(&b, "[%s] ", component)
	}
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}

	if mirror != nil {
		_, _ = mirror.Write(b.Bytes())
	}
	if path == "" {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(b.Bytes())
}
