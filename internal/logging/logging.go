package logging

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Logger provides leveled output for the conversion run. Verbose and
// debug messages go to stdout only when enabled; warnings and errors
// always go to stderr.
type Logger struct {
	verbose bool
	debug   bool
}

// New creates a Logger. Debug implies verbose.
func New(verbose, debug bool) *Logger {
	return &Logger{verbose: verbose || debug, debug: debug}
}

// Verbosef prints an informational message when verbose mode is on.
func (l *Logger) Verbosef(format string, args ...any) {
	if l.verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// Debugf prints a diagnostic message when debug mode is on.
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		debugColor.Printf("DEBUG: "+format+"\n", args...)
	}
}

// Warnf prints a warning to stderr.
func (l *Logger) Warnf(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}

// Errorf prints an error to stderr. The run continues; fatal conditions
// are surfaced as returned errors instead.
func (l *Logger) Errorf(format string, args ...any) {
	errorColor.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}
