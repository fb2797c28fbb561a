package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSetASCII(t *testing.T) {
	// Test default (unicode)
	SetASCII(false)
	if OKSymbol() != "✓" || WarnSymbol() != "⚠" || FailSymbol() != "✗" {
		t.Errorf("unexpected default symbols %+v", CurrentSymbols())
	}

	SetASCII(true)
	if OKSymbol() != "ok" || FailSymbol() != "xx" {
		t.Errorf("unexpected ascii symbols %+v", CurrentSymbols())
	}

	// Reset
	SetASCII(false)
}

func TestFormatState(t *testing.T) {
	t.Parallel()

	tests := []string{StateOK, StateMissingWSL, StateMissingWindows, StateMissing, "custom"}
	for _, state := range tests {
		t.Run(state, func(t *testing.T) {
			t.Parallel()
			got := ansi.Strip(FormatState(state))
			if !strings.Contains(got, state) {
				t.Errorf("FormatState(%q) = %q, want it to contain the state", state, got)
			}
		})
	}
}
