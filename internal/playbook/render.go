package playbook

import (
	"fmt"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// Render formats a playbook as chat-ready markdown text.
func Render(pb domain.Playbook) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s**\n\n", pb.Title)
	fmt.Fprintf(&sb, "- 상태: %s\n", pb.Summary.Status)
	fmt.Fprintf(&sb, "- 우선순위: %s\n", pb.Summary.Priority)
	fmt.Fprintf(&sb, "- 유형: %s\n", pb.Summary.Type)
	if pb.Summary.StandardGuess != nil {
		fmt.Fprintf(&sb, "- 관련 표준(추정): %s\n", *pb.Summary.StandardGuess)
	}

	for i, sec := range pb.Sections {
		fmt.Fprintf(&sb, "\n%d) %s\n", i+1, sec.Title)
		if len(sec.Bullets) == 0 {
			sb.WriteString("- -\n")
			continue
		}
		for _, b := range sec.Bullets {
			fmt.Fprintf(&sb, "- %s\n", b)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
