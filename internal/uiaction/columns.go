package uiaction

import "strings"

// columnAliases maps natural phrases to canonical dataset identifiers.
// Unrecognized names fall back to whitespace→underscore conversion.
var columnAliases = map[string]string{
	"name":                "full_name",
	"attendee":            "full_name",
	"attendee name":       "full_name",
	"full name":           "full_name",
	"company":             "company_name",
	"organization":        "company_name",
	"organisation":        "company_name",
	"employer":            "company_name",
	"job":                 "job_title",
	"title":               "job_title",
	"job title":           "job_title",
	"role":                "job_title",
	"type":                "attendee_type",
	"attendee type":       "attendee_type",
	"country":             "country",
	"nationality":         "country",
	"status":              "registration_status",
	"registration":        "registration_status",
	"registration status": "registration_status",
	"registration date":   "registration_date",
	"signup date":         "registration_date",
	"arrival":             "arrival_date",
	"arrival date":        "arrival_date",
	"departure":           "departure_date",
	"departure date":      "departure_date",
	"hotel":               "hotel_name",
}

// canonicalColumns are the dataset identifiers themselves, accepted verbatim.
var canonicalColumns = map[string]bool{
	"id":                  true,
	"full_name":           true,
	"company_name":        true,
	"job_title":           true,
	"country":             true,
	"attendee_type":       true,
	"registration_status": true,
	"registration_date":   true,
	"arrival_date":        true,
	"departure_date":      true,
	"hotel_name":          true,
}

func normalizeKey(phrase string) string {
	key := strings.ToLower(strings.TrimSpace(phrase))
	key = strings.TrimPrefix(key, "the ")
	key = strings.TrimSuffix(key, " column")
	return strings.TrimSpace(key)
}

// NormalizeColumn resolves a natural-language column phrase to its canonical
// identifier.
func NormalizeColumn(phrase string) string {
	key := normalizeKey(phrase)
	if canonical, ok := columnAliases[key]; ok {
		return canonical
	}
	return strings.Join(strings.Fields(key), "_")
}

// ResolveColumn resolves a phrase only when it names a known column, either
// through an alias or as the canonical identifier itself. Grammars loose
// enough to swallow free text use this to tell a command from a question.
func ResolveColumn(phrase string) (string, bool) {
	key := normalizeKey(phrase)
	if canonical, ok := columnAliases[key]; ok {
		return canonical, true
	}
	joined := strings.Join(strings.Fields(key), "_")
	if canonicalColumns[joined] {
		return joined, true
	}
	return "", false
}
