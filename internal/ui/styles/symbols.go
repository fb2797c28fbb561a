package styles

// Symbols holds the status markers printed before result lines
type Symbols struct {
	OK   string
	Warn string
	Fail string
}

var defaultSymbols = Symbols{
	OK:   "✓",
	Warn: "⚠",
	Fail: "✗",
}

// ASCII symbols for terminals without unicode fonts
var asciiSymbols = Symbols{
	OK:   "ok",
	Warn: "!!",
	Fail: "xx",
}

var currentSymbols = defaultSymbols

// SetASCII switches between unicode and ASCII symbols
func SetASCII(enabled bool) {
	if enabled {
		currentSymbols = asciiSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the active symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// OKSymbol returns the success marker
func OKSymbol() string {
	return currentSymbols.OK
}

// WarnSymbol returns the warning marker
func WarnSymbol() string {
	return currentSymbols.Warn
}

// FailSymbol returns the failure marker
func FailSymbol() string {
	return currentSymbols.Fail
}

// Mapping states shown by "weaseltree list"
const (
	StateOK             = "ok"
	StateMissingWSL     = "missing wsl"
	StateMissingWindows = "missing windows"
	StateMissing        = "missing"
)

// FormatState colors a mapping state. Unknown states are left plain.
func FormatState(state string) string {
	switch state {
	case StateOK:
		return SuccessStyle.Render(state)
	case StateMissingWSL, StateMissingWindows:
		return WarningStyle.Render(state)
	case StateMissing:
		return ErrorStyle.Render(state)
	default:
		return state
	}
}
