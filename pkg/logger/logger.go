package logger

import (
	"io"
	"log"
	"os"
)

// Logger writes leveled diagnostics. Stdout is left to the command's own
// output, so everything here goes to stderr unless redirected.
type Logger struct {
	verbose bool
	logger  *log.Logger
}

func New(verbose bool) *Logger {
	return NewWithWriter(os.Stderr, verbose)
}

func NewWithWriter(w io.Writer, verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
		logger:  log.New(w, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops all output. Useful in tests.
func Discard() *Logger {
	return NewWithWriter(io.Discard, false)
}

func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// Verbose reports whether Debug messages are emitted.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Printf("[INFO] "+format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger.Printf("[WARN] "+format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		l.logger.Printf("[DEBUG] "+format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Printf("[ERROR] "+format, args...)
}
