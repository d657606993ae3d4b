package security

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailColRe    = regexp.MustCompile(`(?i)email`)
	phoneColRe    = regexp.MustCompile(`(?i)phone`)
	fullMaskColRe = regexp.MustCompile(`(?i)password|passport|ssn|credit_card|card_number|token`)
)

// DataMasker is defense in depth behind the PII guard and the forbidden-column
// prompt rule: if a sensitive-looking column slips into result rows anyway,
// its values are masked before answer synthesis ever sees them.
type DataMasker struct {
	sensitiveColumns []string
}

func NewDataMasker(sensitiveColumns []string) *DataMasker {
	return &DataMasker{sensitiveColumns: sensitiveColumns}
}

// MaskRows applies masking to rows returned from the data store.
func (m *DataMasker) MaskRows(rows []map[string]interface{}) []map[string]interface{} {
	masked := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		masked[i] = m.maskRow(row)
	}
	return masked
}

func (m *DataMasker) maskRow(row map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(row))
	for col, val := range row {
		if m.isSensitive(col) {
			result[col] = m.maskValue(col, fmt.Sprintf("%v", val))
		} else {
			result[col] = val
		}
	}
	return result
}

func (m *DataMasker) isSensitive(col string) bool {
	lower := strings.ToLower(col)
	for _, s := range m.sensitiveColumns {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return fullMaskColRe.MatchString(col)
}

func (m *DataMasker) maskValue(col, val string) string {
	switch {
	case emailColRe.MatchString(col):
		return maskEmail(val)
	case phoneColRe.MatchString(col):
		return maskPhone(val)
	default:
		return "***"
	}
}

// maskEmail: "ana.silva@example.com" → "an***@***.com"
func maskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***"
	}
	local, domain := parts[0], parts[1]

	visible := 2
	if len(local) < visible {
		visible = len(local)
	}
	domainParts := strings.Split(domain, ".")
	ext := domainParts[len(domainParts)-1]
	return fmt.Sprintf("%s***@***.%s", local[:visible], ext)
}

// maskPhone: any phone → "***-***-1234" (last 4 digits visible)
func maskPhone(phone string) string {
	digits := ""
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			digits += string(c)
		}
	}
	if len(digits) < 4 {
		return "***-***-****"
	}
	return fmt.Sprintf("***-***-%s", digits[len(digits)-4:])
}
