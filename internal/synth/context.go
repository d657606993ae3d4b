package synth

import (
	"strings"

	"github.com/attendai/attendai/internal/models"
)

// BuildContext condenses the trailing window of prior turns into a compact
// text block for the query-synthesis prompt. It feeds only that prompt;
// classification and guarding never see it.
func BuildContext(history []models.Turn, window int) string {
	if window <= 0 || len(history) == 0 {
		return ""
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}

	lines := make([]string, 0, len(history))
	for _, t := range history {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		role := "USER"
		if strings.EqualFold(t.Role, "assistant") {
			role = "ASSISTANT"
		}
		lines = append(lines, role+": "+text)
	}
	return strings.Join(lines, "\n")
}
