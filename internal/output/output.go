// Package output provides context-aware output for weaseltree.
// Stdout carries the primary result of a command (status lines, tables,
// paths, JSON). Diagnostics go through the log package on stderr.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Field writes an indented "Label: value" status line.
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.w, "  %s: %s\n", label, value)
}

// Mark writes a per-mapping result line: "  <symbol> <rel>: <detail>".
// Batch commands (sync --all, fix) print one per entry.
func (p *Printer) Mark(symbol, rel, detail string) {
	fmt.Fprintf(p.w, "  %s %s: %s\n", symbol, rel, detail)
}

// JSON writes v as two-space indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
