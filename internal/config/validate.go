package config

import (
	"fmt"
	"strings"
)

// validateBinary rejects binary names containing shell syntax. The value is
// executed directly, never through a shell, so such characters would only
// ever produce a confusing "not found" error later.
func validateBinary(name, field string) error {
	if strings.ContainsAny(name, ";|&<>`$\n") {
		return fmt.Errorf("invalid %s %q: must be a single executable name or path", field, name)
	}
	return nil
}
