package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/scope"
	"github.com/attendai/attendai/internal/security"
	"github.com/attendai/attendai/internal/store"
	"github.com/attendai/attendai/internal/synth"
	"github.com/attendai/attendai/internal/uiaction"
	"github.com/rs/zerolog/log"
)

// QueryExecutor runs one enforced statement under the execution budget.
type QueryExecutor interface {
	Execute(ctx context.Context, sql string) (*store.ExecutionResult, error)
}

// SchemaSource supplies the schema text block for the synthesis prompt.
type SchemaSource interface {
	SchemaBlock(ctx context.Context) string
}

// Deps wires the pipeline's collaborators. All of them are request-safe and
// shared; the pipeline itself holds no per-request state.
type Deps struct {
	QuerySynth    *synth.QuerySynthesizer
	AnswerSynth   *synth.AnswerSynthesizer
	PIIGuard      *security.PIIGuard
	Enforcer      *security.SQLEnforcer
	Masker        *security.DataMasker
	Audit         *security.AuditLogger
	Executor      QueryExecutor
	Schema        SchemaSource
	HistoryWindow int
	MaskResults   bool
}

// Pipeline turns one question into one AnswerPayload. It is a linear state
// machine with short-circuit exits; every stage's rejection is a terminal,
// successful response, and internal failures collapse into the fallback
// envelope with Ok still true.
type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// Run never returns an error: every outcome, including internal failure, is
// an AnswerPayload.
func (p *Pipeline) Run(ctx context.Context, req *models.AskRequest) *models.AnswerPayload {
	start := time.Now()
	question := strings.TrimSpace(req.Question)

	// UI command detection takes precedence over everything: no
	// classification, no guard, no query.
	if action, confirmation, ok := uiaction.Detect(question); ok {
		return &models.AnswerPayload{
			Ok:     true,
			Answer: confirmation,
			Action: action,
			Meta:   models.AnswerMeta{Scope: models.ScopeUIAction, ElapsedMs: sinceMs(start)},
		}
	}

	// Scope classification happens before any external call.
	decision := scope.Classify(question)
	if decision.Scope == scope.OutOfScope {
		p.deps.Audit.LogScopeRejection(req.ConversationID, decision.OutOfScopeType)
		return &models.AnswerPayload{
			Ok:     true,
			Answer: refusalFor(decision.OutOfScopeType),
			Meta:   models.AnswerMeta{Scope: models.ScopeOutOfScope, ElapsedMs: sinceMs(start)},
		}
	}
	category := string(decision.Category)

	if g := p.deps.PIIGuard.Scan(question); g.Blocked {
		p.deps.Audit.LogPIIBlock(req.ConversationID, "question", question, g.Reason)
		return p.piiPayload(category, start)
	}

	schemaBlock := p.deps.Schema.SchemaBlock(ctx)
	contextBlock := synth.BuildContext(req.History, p.deps.HistoryWindow)

	candidate, err := p.deps.QuerySynth.Synthesize(ctx, question, schemaBlock, contextBlock)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("query synthesis failed")
		return p.fallback(category, FallbackMessage, start)
	}

	// The synthesized statement is untrusted text; it gets the same guard
	// treatment as user input before the enforcer ever sees it.
	if g := p.deps.PIIGuard.Scan(candidate.SQL); g.Blocked {
		p.deps.Audit.LogPIIBlock(req.ConversationID, "sql", candidate.SQL, g.Reason)
		return p.piiPayload(category, start)
	}

	safeSQL, err := p.deps.Enforcer.Enforce(candidate.SQL)
	if err != nil {
		p.deps.Audit.LogUnsafeQuery(req.ConversationID, candidate.SQL, err.Error())
		return p.fallback(category, FallbackMessage, start)
	}

	result, err := p.deps.Executor.Execute(ctx, safeSQL)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("execution failed")
		if errors.Is(err, models.ErrExecutionTimeout) {
			return p.fallback(category, TimeoutMessage, start)
		}
		return p.fallback(category, FallbackMessage, start)
	}

	rows := store.NormalizeRows(result.Rows)
	if p.deps.MaskResults {
		rows = p.deps.Masker.MaskRows(rows)
	}

	answer, err := p.deps.AnswerSynth.Synthesize(ctx, question, rows)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("answer synthesis failed")
		return p.fallback(category, FallbackMessage, start)
	}

	elapsed := sinceMs(start)
	p.deps.Audit.LogAnswer(req.ConversationID, question, safeSQL, len(rows), elapsed)

	return &models.AnswerPayload{
		Ok:     true,
		Answer: strings.TrimSpace(answer),
		SQL:    safeSQL,
		Rows:   rows,
		Meta: models.AnswerMeta{
			Scope:     models.ScopeInScope,
			Category:  category,
			Intent:    candidate.Intent,
			ElapsedMs: elapsed,
		},
	}
}

func (p *Pipeline) piiPayload(category string, start time.Time) *models.AnswerPayload {
	return &models.AnswerPayload{
		Ok:     true,
		Answer: PIIPolicyMessage,
		Meta:   models.AnswerMeta{Scope: models.ScopePIIBlocked, Category: category, ElapsedMs: sinceMs(start)},
	}
}

// fallback is the single envelope for synthesis, safety, store, and network
// failures. Ok stays true: the conversational surface is always responsive.
func (p *Pipeline) fallback(category, message string, start time.Time) *models.AnswerPayload {
	return &models.AnswerPayload{
		Ok:     true,
		Answer: message,
		Meta:   models.AnswerMeta{Scope: models.ScopeFallbackError, Category: category, ElapsedMs: sinceMs(start)},
	}
}

func sinceMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
