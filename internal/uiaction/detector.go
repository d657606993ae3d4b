package uiaction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/attendai/attendai/internal/models"
)

// Command-shaped utterances are anchored at both ends: a free-text question
// that merely mentions sorting or filtering must fall through to the query
// pipeline.
var (
	reMoveEdge = regexp.MustCompile(`^(?:move|put|reorder)\s+(?:the\s+)?(.+?)(?:\s+column)?\s+to\s+(?:the\s+)?(front|start|beginning|left|back|end|right)$`)
	reMovePos  = regexp.MustCompile(`^(?:move|put|reorder)\s+(?:the\s+)?(.+?)(?:\s+column)?\s+to\s+position\s+(\d+)$`)
	reMoveRel  = regexp.MustCompile(`^(?:move|put|reorder)\s+(?:the\s+)?(.+?)(?:\s+column)?\s+(before|after)\s+(?:the\s+)?(.+?)(?:\s+column)?$`)

	reSort = regexp.MustCompile(`^(?:sort|order)\s+(?:by\s+)?(?:the\s+)?(.+?)(?:\s+column)?(?:\s+(?:in\s+)?(asc|ascending|desc|descending)(?:\s+order)?)?$`)

	reFilter = regexp.MustCompile(`^(?:filter|show\s+only|show\s+where)\s+(?:rows?\s+)?(?:where\s+)?(?:the\s+)?(.+?)\s+(?:is|=|equals?|to|contains)\s+(.+)$`)

	reClearFilter = regexp.MustCompile(`^(?:clear|remove|reset)\s+(?:the\s+|all\s+)?filters?(?:\s+on\s+(?:the\s+)?(.+?)(?:\s+column)?)?$`)
	reClearSort   = regexp.MustCompile(`^(?:clear|remove|reset)\s+(?:the\s+)?sort(?:ing)?$`)
	reResetCols   = regexp.MustCompile(`^reset\s+(?:the\s+)?(?:columns?|view|table|layout)$`)

	reRemoveCol    = regexp.MustCompile(`^(?:remove|hide|drop)\s+(?:the\s+)?(.+?)\s+column$`)
	reRemoveColAlt = regexp.MustCompile(`^(?:remove|hide)\s+column\s+(.+)$`)
)

const positionLast = -1

// Detect pattern-matches a command-style utterance into a structured UI
// action and a canned confirmation string. On a match the rest of the
// pipeline does not run: no classification, no guard, no query.
func Detect(question string) (*models.UIAction, string, bool) {
	q := strings.ToLower(strings.TrimSpace(question))
	q = strings.TrimRight(q, ".!?")
	q = strings.TrimSpace(q)

	// Clear/reset commands first: "clear sort" would otherwise match the
	// sort grammar.
	if reClearSort.MatchString(q) {
		return &models.UIAction{Type: models.ActionClearSort}, "Sorting cleared.", true
	}
	if reResetCols.MatchString(q) {
		return &models.UIAction{Type: models.ActionResetColumns}, "Columns reset to default.", true
	}
	if m := reClearFilter.FindStringSubmatch(q); m != nil {
		if m[1] == "" {
			return &models.UIAction{Type: models.ActionClearFilter}, "All filters cleared.", true
		}
		col := NormalizeColumn(m[1])
		return &models.UIAction{Type: models.ActionClearFilter, Column: col},
			fmt.Sprintf("Filter on %s cleared.", col), true
	}

	if m := reMovePos.FindStringSubmatch(q); m != nil {
		col := NormalizeColumn(m[1])
		pos, _ := strconv.Atoi(m[2])
		return &models.UIAction{Type: models.ActionReorderColumn, Column: col, Position: &pos},
			fmt.Sprintf("Moved %s to position %d.", col, pos), true
	}
	if m := reMoveEdge.FindStringSubmatch(q); m != nil {
		col := NormalizeColumn(m[1])
		pos := 0
		where := "front"
		switch m[2] {
		case "back", "end", "right":
			pos = positionLast
			where = "end"
		}
		return &models.UIAction{Type: models.ActionReorderColumn, Column: col, Position: &pos},
			fmt.Sprintf("Moved %s to the %s.", col, where), true
	}
	if m := reMoveRel.FindStringSubmatch(q); m != nil {
		col := NormalizeColumn(m[1])
		ref := NormalizeColumn(m[3])
		a := &models.UIAction{Type: models.ActionReorderColumn, Column: col}
		if m[2] == "before" {
			a.BeforeColumn = ref
		} else {
			a.AfterColumn = ref
		}
		return a, fmt.Sprintf("Moved %s %s %s.", col, m[2], ref), true
	}

	if m := reRemoveCol.FindStringSubmatch(q); m != nil {
		col := NormalizeColumn(m[1])
		return &models.UIAction{Type: models.ActionRemoveColumn, Column: col},
			fmt.Sprintf("Removed column %s.", col), true
	}
	if m := reRemoveColAlt.FindStringSubmatch(q); m != nil {
		col := NormalizeColumn(m[1])
		return &models.UIAction{Type: models.ActionRemoveColumn, Column: col},
			fmt.Sprintf("Removed column %s.", col), true
	}

	// The sort grammar is loose enough to swallow free text ("sort out the
	// duplicates"); it only counts as a command when the phrase names a
	// known column.
	if m := reSort.FindStringSubmatch(q); m != nil {
		if col, ok := ResolveColumn(m[1]); ok {
			dir := "asc"
			if strings.HasPrefix(m[2], "desc") {
				dir = "desc"
			}
			return &models.UIAction{Type: models.ActionSort, Column: col, Direction: dir},
				fmt.Sprintf("Sorted by %s (%sending).", col, dir), true
		}
	}

	if m := reFilter.FindStringSubmatch(q); m != nil {
		col := NormalizeColumn(m[1])
		val := strings.Trim(strings.TrimSpace(m[2]), `"'`)
		return &models.UIAction{Type: models.ActionFilter, Column: col, Value: val},
			fmt.Sprintf("Filtered %s to %q.", col, val), true
	}

	return nil, "", false
}
