package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jskinn96/signup/form"
	"github.com/jskinn96/signup/wizard"
)

// Step is the interface that all wizard steps must implement.
type Step interface {
	// Title returns the step's display title.
	Title() string
	// Description returns the line shown under the title.
	Description() string
	// Init returns the initial command for this step.
	Init() tea.Cmd
	// Update handles messages and returns the updated step and command.
	Update(msg tea.Msg) (Step, tea.Cmd)
	// View renders the step content.
	View(width int) string
	// Summary returns a one-line summary for the collapsed view.
	Summary() string
	// Sync copies values and error messages from the store into the step's
	// controls.
	Sync(state wizard.State)
	// Focus moves the cursor to f when the step owns it.
	Focus(f form.Field) bool
}

// RenderProgress renders the step list with completed, active and pending
// badges, followed by a progress bar.
func RenderProgress(steps []Step, current int, progress float64, styles *StyleSet, width int) string {
	var out string

	for i, s := range steps {
		n := i + 1
		switch {
		case n < current:
			badge := styles.StepBadgeComplete.Render(" ✓ ")
			title := styles.PrimaryTxt.Bold(true).Render(s.Title())
			out += fmt.Sprintf("  %s  %s\n", badge, title)
			if summary := s.Summary(); summary != "" {
				out += fmt.Sprintf("       %s\n", styles.SecondaryTxt.Render(summary))
			}
			out += "\n"
		case n == current:
			numStr := fmt.Sprintf(" %d ", n)
			badge := styles.StepBadgeActive.Render(numStr)
			title := styles.PrimaryTxt.Bold(true).Render(s.Title())
			dividerLen := width - 10 - lipgloss.Width(numStr) - lipgloss.Width(s.Title())
			if dividerLen < 2 {
				dividerLen = 2
			}
			divider := styles.DimTxt.Render(" " + strings.Repeat("─", dividerLen))
			out += fmt.Sprintf("  %s  %s%s\n", badge, title, divider)
			out += fmt.Sprintf("       %s\n", styles.SecondaryTxt.Render(s.Description()))
		default:
			badge := styles.StepBadgePending.Render(fmt.Sprintf(" %d ", n))
			out += fmt.Sprintf("  %s  %s\n", badge, styles.DimTxt.Render(s.Title()))
		}
	}

	return out + "\n  " + RenderProgressBar(progress, styles, width) + "\n"
}

// RenderProgressBar draws a bar filled to progress, a fraction in [0,1].
func RenderProgressBar(progress float64, styles *StyleSet, width int) string {
	barWidth := width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 50 {
		barWidth = 50
	}
	progress = math.Max(0, math.Min(1, progress))
	filled := int(math.Round(progress * float64(barWidth)))

	bar := styles.ProgressFilled.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled))
	return bar + styles.DimTxt.Render(fmt.Sprintf(" %3d%%", int(math.Round(progress*100))))
}
