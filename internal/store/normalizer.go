package store

import (
	"regexp"
	"time"
)

const canonicalDateLayout = "2006-01-02"

// isoTemporalRe matches canonical dates and ISO-ish timestamps whose first
// ten characters are the calendar date.
var isoTemporalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)

// NormalizeRows rewrites every temporal field to a canonical calendar-date
// string using the value's own local components. A timestamp is never routed
// through a UTC conversion that could shift the date by one day. Idempotent:
// an already-canonical string passes through unchanged.
func NormalizeRows(rows []map[string]interface{}) []map[string]interface{} {
	for _, row := range rows {
		for col, val := range row {
			row[col] = normalizeValue(val)
		}
	}
	return rows
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		// Format reads the value's own location; no zone conversion happens.
		return t.Format(canonicalDateLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(canonicalDateLayout)
	case string:
		if isoTemporalRe.MatchString(t) {
			return t[:len(canonicalDateLayout)]
		}
	}
	return v
}
