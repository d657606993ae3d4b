package security

import (
	"strings"
)

// GuardResult is the outcome of scanning one piece of text.
type GuardResult struct {
	Blocked bool
	Reason  string // matched keyword, for audit logging only
}

// PIIGuard is a stateless predicate over arbitrary text: blocked if the text
// contains any forbidden column name or PII-indicative substring. It runs
// twice per request — once on the question, once on the synthesized SQL.
type PIIGuard struct {
	keywords []string
}

func NewPIIGuard(keywordLists ...[]string) *PIIGuard {
	seen := make(map[string]bool)
	var merged []string
	for _, list := range keywordLists {
		for _, k := range list {
			lower := strings.ToLower(k)
			if lower == "" || seen[lower] {
				continue
			}
			seen[lower] = true
			merged = append(merged, lower)
		}
	}
	return &PIIGuard{keywords: merged}
}

// Scan returns a blocked result with the first matched keyword, or a clean
// result. Matching is case-insensitive substring containment.
func (g *PIIGuard) Scan(text string) GuardResult {
	lower := strings.ToLower(text)
	for _, kw := range g.keywords {
		if strings.Contains(lower, kw) {
			return GuardResult{Blocked: true, Reason: kw}
		}
	}
	return GuardResult{}
}
