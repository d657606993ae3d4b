package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/attendai/attendai/internal/models"
)

// Completer is the completion-service dependency shared by both synthesis
// stages. Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// SynthesizedQuery is the untrusted candidate statement produced by the
// completion service. It must pass the PII guard and the SQL enforcer before
// anything executes it.
type SynthesizedQuery struct {
	SQL    string `json:"sql"`
	Intent string `json:"intent,omitempty"`
}

// QuerySynthesizer turns a question plus schema and rules into exactly one
// candidate statement via a single completion call.
type QuerySynthesizer struct {
	completer Completer
	rowLimit  int
	forbidden []string
}

func NewQuerySynthesizer(completer Completer, rowLimit int, forbiddenColumns []string) *QuerySynthesizer {
	return &QuerySynthesizer{
		completer: completer,
		rowLimit:  rowLimit,
		forbidden: forbiddenColumns,
	}
}

const queryRules = `RULES:
1. Produce exactly ONE PostgreSQL SELECT statement. Never any other verb.
2. Do not end the statement with a semicolon.
3. Numeric safety: wrap every denominator in NULLIF(x, 0) and cast operands
   with ::float before any division.
4. Name matching is fuzzy: split multi-part person names and match each part
   with ILIKE '%part%' against full_name.
5. Status vocabulary: "confirmed"/"attending" -> 'confirmed',
   "cancelled"/"canceled" -> 'cancelled', "pending"/"waitlisted" -> 'pending'.
6. The forbidden columns listed below must never appear in the statement.
   Omit them; never substitute or fabricate replacements.
7. Respond with a strict JSON object and nothing else:
   {"sql": "<the statement>", "intent": "<short description>"}`

func (s *QuerySynthesizer) buildInstruction(schemaBlock string) string {
	var sb strings.Builder
	sb.WriteString("You translate questions about a conference attendee dataset into a single bounded read query.\n\n")
	sb.WriteString("SCHEMA:\n")
	sb.WriteString(schemaBlock)
	sb.WriteString("\n\n")
	sb.WriteString(queryRules)
	sb.WriteString(fmt.Sprintf("\n8. Include LIMIT %d or lower in every statement.", s.rowLimit))
	sb.WriteString("\n\nFORBIDDEN COLUMNS: ")
	sb.WriteString(strings.Join(s.forbidden, ", "))
	return sb.String()
}

// Synthesize makes the completion call and defensively parses the response:
// first balanced JSON object, then unmarshal, then shape validation. Any
// parse failure is a synthesis error, distinct from later execution failures.
func (s *QuerySynthesizer) Synthesize(ctx context.Context, question, schemaBlock, contextBlock string) (*SynthesizedQuery, error) {
	var prompt strings.Builder
	if contextBlock != "" {
		prompt.WriteString("CONVERSATION SO FAR:\n")
		prompt.WriteString(contextBlock)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("QUESTION: ")
	prompt.WriteString(question)

	raw, err := s.completer.Complete(ctx, s.buildInstruction(schemaBlock), prompt.String())
	if err != nil {
		return nil, err
	}

	obj, ok := extractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in response", models.ErrSynthesis)
	}

	var q SynthesizedQuery
	if err := json.Unmarshal([]byte(obj), &q); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSynthesis, err)
	}
	if strings.TrimSpace(q.SQL) == "" {
		return nil, fmt.Errorf("%w: response has no sql field", models.ErrSynthesis)
	}
	return &q, nil
}
