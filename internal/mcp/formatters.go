package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/playbook"
	"github.com/rcliao/certimatch/internal/service"
)

// FormatResult renders a command result as tool text. Known result types
// become markdown; anything else is serialized as JSON.
func FormatResult(result interface{}) (string, error) {
	switch r := result.(type) {
	case string:
		return r, nil
	case []*domain.Project:
		return FormatProjectsAsMarkdown(r), nil
	case []*domain.UploadedFile:
		return FormatFilesAsMarkdown(r), nil
	case domain.ChecklistResult:
		return FormatChecklistAsMarkdown(r), nil
	case *TriageResult:
		return FormatTriageAsMarkdown(r.Market, r.Items), nil
	case domain.Playbook:
		return playbook.Render(r), nil
	case *ChatResult:
		return r.Reply.Text, nil
	case *LabRanking:
		return FormatLabsAsMarkdown(r.Criterion, r.Labs), nil
	case *service.Dashboard:
		return FormatDashboardAsMarkdown(r), nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatProjectsAsMarkdown formats a list of projects as markdown
func FormatProjectsAsMarkdown(projects []*domain.Project) string {
	if len(projects) == 0 {
		return "📁 **No projects found**\n\nCreate a new project with `certimatch.project.create`"
	}

	var sb strings.Builder
	sb.WriteString("# 📁 Projects\n\n")

	for i, project := range projects {
		sb.WriteString(fmt.Sprintf("## %d. %s", i+1, project.Name))
		if len(project.ID) > 8 {
			sb.WriteString(fmt.Sprintf(" `[%s]`", project.ID[:8]))
		}
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("**Market:** %s\n\n", project.Market.Label()))
		sb.WriteString(fmt.Sprintf("**Created:** %s\n\n", project.CreatedAt.Format("Jan 2, 2006")))
		sb.WriteString("---\n\n")
	}

	return strings.TrimSpace(sb.String())
}

func FormatFilesAsMarkdown(files []*domain.UploadedFile) string {
	if len(files) == 0 {
		return "🗂️ **No files uploaded**\n\nUpload a file with `certimatch.file.upload`"
	}

	var sb strings.Builder
	sb.WriteString("# 🗂️ Repository\n\n")
	for _, f := range files {
		sb.WriteString(fmt.Sprintf("- %s (%s) `%s`\n", f.Name, service.HumanSize(f.SizeBytes), shortID(f.ID)))
	}
	return strings.TrimSpace(sb.String())
}

// FormatChecklistAsMarkdown lists required documents with a check mark for
// each matched upload.
func FormatChecklistAsMarkdown(result domain.ChecklistResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# 📑 Document Checklist (%d/%d, %d%%)\n\n", result.DoneCount, result.TotalRequired, result.Percent))

	if result.TotalRequired == 0 {
		sb.WriteString("No fixed document list for this market.")
		return sb.String()
	}

	for _, e := range result.Entries {
		if e.Done() {
			sb.WriteString(fmt.Sprintf("- ✅ %s ← `%s`\n", e.RequiredLabel, *e.MatchedFilename))
		} else {
			sb.WriteString(fmt.Sprintf("- ⬜ %s\n", e.RequiredLabel))
		}
	}
	return strings.TrimSpace(sb.String())
}

func FormatTriageAsMarkdown(market domain.Market, items []domain.RemediationItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("🎉 **No open action items for %s**", market.Label())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# 🛠️ Open Action Items (%s)\n\n", market.Label()))
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s **[%s]** %s `%s`\n", i+1, getStatusEmoji(item.Status), orDash(string(item.Priority)), item.Task, item.ID))
	}
	return strings.TrimSpace(sb.String())
}

func FormatLabsAsMarkdown(criterion domain.LabCriterion, labs []domain.Lab) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# 🔬 Testing Labs (by %s)\n\n", criterion))

	for i, lab := range labs {
		sb.WriteString(fmt.Sprintf("## %d. %s (%d)\n\n", i+1, lab.Name, lab.Score(criterion)))
		if len(lab.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(lab.Tags, ", ")))
		}
		sb.WriteString(fmt.Sprintf("- Chamber: %s\n", lab.Chamber))
		sb.WriteString(fmt.Sprintf("- Accreditation: %s\n", lab.Accreditation))
		sb.WriteString(fmt.Sprintf("- Distance: %s, Cost: %s, Lead time: %s\n", lab.Distance, lab.Cost, lab.LeadTime))
		if lab.Reason != "" {
			sb.WriteString(fmt.Sprintf("\n> %s\n", lab.Reason))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

func FormatDashboardAsMarkdown(d *service.Dashboard) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# 📊 %s\n\n", d.Project.Name))
	sb.WriteString(fmt.Sprintf("**Documents:** %d/%d (%d%%), %d files in repository\n\n",
		d.Checklist.DoneCount, d.Checklist.TotalRequired, d.Checklist.Percent, d.FileCount))

	for _, mp := range d.Markets {
		sb.WriteString(fmt.Sprintf("## %s: %d%% complete (%d/%d)\n\n", mp.Label, mp.CompletionRate, mp.Counts.Done, mp.Counts.Total))
		for i, item := range mp.TopOpen {
			sb.WriteString(fmt.Sprintf("%d. **[%s]** %s\n", i+1, orDash(string(item.Priority)), item.Task))
		}
		if len(mp.TopOpen) > 0 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## 💡 Recommendations\n\n")
	for _, rec := range d.Recommendations {
		sb.WriteString(fmt.Sprintf("- %s\n", rec))
	}
	return strings.TrimSpace(sb.String())
}

func getStatusEmoji(status domain.RemediationStatus) string {
	switch status {
	case domain.RemediationInProgress:
		return "🔄"
	case domain.RemediationDone:
		return "✅"
	default:
		return "⏳"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
