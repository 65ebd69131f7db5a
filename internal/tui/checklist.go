package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/certimatch/internal/domain"
)

// RenderChecklist draws the document checklist with a progress bar of the
// given width.
func RenderChecklist(title string, result domain.ChecklistResult, width int) string {
	if width < 10 {
		width = 10
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(width), progress.WithoutPercentage())

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(bar.ViewAs(float64(result.Percent) / 100))
	sb.WriteString(fmt.Sprintf(" %d%% (%d/%d)\n\n", result.Percent, result.DoneCount, result.TotalRequired))

	if result.TotalRequired == 0 {
		sb.WriteString(missingStyle.Render("필수 서류 목록이 없습니다."))
		return panelStyle.Render(sb.String())
	}

	rows := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.Done() {
			rows = append(rows, doneStyle.Render("✔ "+e.RequiredLabel)+missingStyle.Render("  ← "+*e.MatchedFilename))
		} else {
			rows = append(rows, missingStyle.Render("○ "+e.RequiredLabel))
		}
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return panelStyle.Render(sb.String())
}
