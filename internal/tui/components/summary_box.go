package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow is one labelled line of a SummaryBox.
type SummaryRow struct {
	Key   string
	Value string
}

// SummaryBox renders labelled values inside a rounded border, keys aligned to
// the longest label. Rows with an empty value are left out.
type SummaryBox struct {
	Title string
	Rows  []SummaryRow

	KeyStyle    lipgloss.Style
	ValueStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewSummaryBox builds a box titled title.
func NewSummaryBox(title string, rows []SummaryRow, keyStyle, valueStyle, borderStyle lipgloss.Style) SummaryBox {
	return SummaryBox{Title: title, Rows: rows, KeyStyle: keyStyle, ValueStyle: valueStyle, BorderStyle: borderStyle}
}

// View renders the box sized to a terminal of the given width.
func (s SummaryBox) View(width int) string {
	keyWidth := 0
	for _, r := range s.Rows {
		if r.Value != "" {
			keyWidth = max(keyWidth, lipgloss.Width(r.Key))
		}
	}

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(s.ValueStyle.Bold(true).Render(s.Title))
		b.WriteString("\n\n")
	}
	for _, r := range s.Rows {
		if r.Value == "" {
			continue
		}
		b.WriteString(s.KeyStyle.Width(keyWidth + 2).Render(r.Key))
		b.WriteString(s.ValueStyle.Render(r.Value))
		b.WriteByte('\n')
	}

	inner := strings.TrimSuffix(b.String(), "\n")
	return "  " + s.BorderStyle.Width(max(width-8, 30)).Render(inner)
}
