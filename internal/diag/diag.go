// Package diag carries the process-wide logging surface: a leveled logger
// for worker progress and colored status lines for terminal summaries.
package diag

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/ll"
)

// Logger wraps the leveled logger used by the batch worker pool so per-file
// progress lines never interleave mid-line across workers.
type Logger struct {
	base    *ll.Logger
	verbose bool
}

// New returns a Logger. Debug output is emitted only when verbose is set.
func New(verbose bool) *Logger {
	return &Logger{
		base:    ll.New("hwp2tree").Enable(),
		verbose: verbose,
	}
}

func (l *Logger) Infof(format string, args ...any)  { l.base.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.base.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.base.Errorf(format, args...) }

func (l *Logger) Debugf(format string, args ...any) {
	if l.verbose {
		l.base.Debugf(format, args...)
	}
}

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
)

// Successf prints a green status line.
func Successf(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

// Warnf prints a yellow status line.
func Warnf(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}

// Failf prints a red status line.
func Failf(w io.Writer, format string, args ...any) {
	failColor.Fprintf(w, format+"\n", args...)
}
