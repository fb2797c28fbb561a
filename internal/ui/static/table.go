// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as tables.
package static

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/weaseltree/weaseltree/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// MappingHeaders are the columns of "weaseltree list".
var MappingHeaders = []string{"PATH", "BRANCH", "STATE", "WINDOWS", "WSL", "UPDATED"}

// MappingRow is one line of "weaseltree list".
type MappingRow struct {
	Rel         string
	Branch      string
	State       string
	WindowsPath string
	WSLPath     string
	UpdatedAt   time.Time
}

// Cells renders the row for RenderTable. now is the reference for the age
// column.
func (r MappingRow) Cells(now time.Time) []string {
	return []string{
		r.Rel,
		r.Branch,
		styles.FormatState(r.State),
		r.WindowsPath,
		r.WSLPath,
		Age(r.UpdatedAt, now),
	}
}

// Age formats how long ago t was, coarsely.
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
