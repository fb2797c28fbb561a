// Package log provides context-aware logging for weaseltree.
//
// Diagnostics go to stderr. Debug and command lines only appear with
// --verbose, and --quiet silences everything. When a log file is attached
// the same entries are also recorded there as JSON, regardless of verbosity.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ctxKey struct{}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	file    *zap.Logger
}

// New creates a new logger.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// AttachFile mirrors debug and command entries into z.
func (l *Logger) AttachFile(z *zap.Logger) {
	l.file = z
}

// WithFlags returns a copy of l with new verbosity, keeping its writer and
// attached file.
func (l *Logger) WithFlags(verbose, quiet bool) *Logger {
	return &Logger{out: l.out, verbose: verbose, quiet: quiet, file: l.file}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Debug logs a message with key/value pairs in verbose mode.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if l.file != nil {
		l.file.Sugar().Debugw(msg, pairs(keyvals)...)
	}
	if !l.IsVerbose() {
		return
	}

	var b strings.Builder
	b.WriteString(msg)
	kv := pairs(keyvals)
	for i := 0; i < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Command logs an external command execution.
// The returned func records how long it took; call it when the command exits.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	return func(took time.Duration) {
		if l.file != nil {
			l.file.Debug("exec",
				zap.String("dir", dir),
				zap.String("cmd", line),
				zap.Duration("took", took),
			)
		}
		if !l.IsVerbose() {
			return
		}
		if dir != "" {
			fmt.Fprintf(l.out, "[%s] $ %s (%s)\n", dir, line, took.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(l.out, "$ %s (%s)\n", line, took.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose output is enabled and not silenced.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func pairs(keyvals []any) []any {
	if len(keyvals)%2 != 0 {
		return keyvals[:len(keyvals)-1]
	}
	return keyvals
}
