package security

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/attendai/attendai/internal/models"
)

// sqlDangerousPatterns are injection shapes rejected outright even when the
// statement otherwise looks like a plain SELECT.
var sqlDangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bUNION\s+SELECT\b`),
	regexp.MustCompile(`(?i)\bINTO\s+OUTFILE\b`),
	regexp.MustCompile(`(?i)\bINTO\s+DUMPFILE\b`),
	regexp.MustCompile(`(?i)\bLOAD_FILE\s*\(`),
	regexp.MustCompile(`(?i)\bPG_SLEEP\s*\(`),
	regexp.MustCompile(`(?i)\bSLEEP\s*\(`),
	regexp.MustCompile(`(?i)\bBENCHMARK\s*\(`),
	regexp.MustCompile(`(?i)\bor\s+1\s*=\s*1\b`),
	regexp.MustCompile(`(?i)\bor\s+'1'\s*=\s*'1'`),
}

var limitClauseRe = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)`)

// SQLEnforcer structurally validates and clamps candidate statements.
// It never trusts the synthesizer: a statement reaches the executor only
// after passing every check here. Violations abort the request; the only
// repair ever applied is the row-limit clamp.
type SQLEnforcer struct {
	rowLimit int
}

func NewSQLEnforcer(rowLimit int) *SQLEnforcer {
	return &SQLEnforcer{rowLimit: rowLimit}
}

// RowLimit returns the enforced ceiling.
func (e *SQLEnforcer) RowLimit() int {
	return e.rowLimit
}

// Enforce returns the statement safe to execute, or an error wrapping
// models.ErrUnsafeQuery. Checks run in order: exactly one statement, no
// comment tokens, read-only verb, no injection patterns, then the limit
// clamp (lower proposed limits are preserved, higher or absent limits are
// overwritten with the ceiling).
func (e *SQLEnforcer) Enforce(sql string) (string, error) {
	stmt := strings.TrimSpace(sql)
	// A single trailing terminator is benign; anything after it is not.
	stmt = strings.TrimSuffix(stmt, ";")
	stmt = strings.TrimSpace(stmt)

	if stmt == "" {
		return "", fmt.Errorf("%w: empty statement", models.ErrUnsafeQuery)
	}
	if strings.Contains(stmt, ";") {
		return "", fmt.Errorf("%w: multiple statements", models.ErrUnsafeQuery)
	}
	if strings.Contains(stmt, "--") || strings.Contains(stmt, "/*") {
		return "", fmt.Errorf("%w: comment token", models.ErrUnsafeQuery)
	}

	upper := strings.ToUpper(stmt)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "", fmt.Errorf("%w: not a read-only statement", models.ErrUnsafeQuery)
	}

	for _, pattern := range sqlDangerousPatterns {
		if pattern.MatchString(stmt) {
			return "", fmt.Errorf("%w: injection pattern %s", models.ErrUnsafeQuery, pattern.String())
		}
	}

	return e.clampLimit(stmt), nil
}

// clampLimit rewrites the last LIMIT clause down to the ceiling, or appends
// one when the statement has none. A LIMIT that only exists inside a
// subquery does not bound the outer statement, so one is appended.
// Idempotent.
func (e *SQLEnforcer) clampLimit(stmt string) string {
	matches := limitClauseRe.FindAllStringSubmatchIndex(stmt, -1)
	if len(matches) == 0 {
		return fmt.Sprintf("%s LIMIT %d", stmt, e.rowLimit)
	}

	// The last LIMIT at depth zero is the outer statement's; inner ones
	// stay untouched.
	m := matches[len(matches)-1]
	if parenDepthAt(stmt, m[0]) > 0 {
		return fmt.Sprintf("%s LIMIT %d", stmt, e.rowLimit)
	}
	proposed, err := strconv.Atoi(stmt[m[2]:m[3]])
	if err != nil || proposed > e.rowLimit {
		return stmt[:m[0]] + fmt.Sprintf("LIMIT %d", e.rowLimit) + stmt[m[1]:]
	}
	return stmt
}

func parenDepthAt(s string, pos int) int {
	depth := 0
	for i := 0; i < pos; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth
}
