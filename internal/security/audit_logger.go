package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger records security-relevant pipeline events. Question and SQL
// text is logged verbatim only for blocked requests (PII hits, unsafe
// statements) so rejections stay auditable; successful requests log hashed
// identifiers only.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogPIIBlock records a PII guard hit. stage is "question" or "sql".
func (a *AuditLogger) LogPIIBlock(conversationID, stage, text, keyword string) {
	if !a.enabled {
		return
	}
	log.Warn().
		Str("event", "pii_block").
		Str("conversation_id", conversationID).
		Str("stage", stage).
		Str("keyword", keyword).
		Str("text", text).
		Msg("pii guard hit")
}

// LogUnsafeQuery records a statement rejected by the SQL enforcer.
func (a *AuditLogger) LogUnsafeQuery(conversationID, sql, reason string) {
	if !a.enabled {
		return
	}
	log.Warn().
		Str("event", "unsafe_query").
		Str("conversation_id", conversationID).
		Str("sql", sql).
		Str("reason", reason).
		Msg("sql enforcer rejection")
}

// LogScopeRejection records an out-of-scope classification.
func (a *AuditLogger) LogScopeRejection(conversationID, outOfScopeType string) {
	if !a.enabled {
		return
	}
	log.Info().
		Str("event", "scope_rejection").
		Str("conversation_id", conversationID).
		Str("out_of_scope_type", outOfScopeType).
		Msg("question rejected")
}

// LogAnswer records a completed request with hashed question/SQL identifiers.
func (a *AuditLogger) LogAnswer(conversationID, question, sql string, rowCount int, elapsedMs int64) {
	if !a.enabled {
		return
	}
	sqlHash := ""
	if sql != "" {
		sqlHash = hashStr(sql)[:16]
	}
	log.Info().
		Str("event", "answer_audit").
		Str("conversation_id", conversationID).
		Str("question_hash", hashStr(question)[:16]).
		Str("sql_hash", sqlHash).
		Int("row_count", rowCount).
		Int64("elapsed_ms", elapsedMs).
		Msg("audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
