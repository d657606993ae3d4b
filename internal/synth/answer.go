package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// EmptyResultAnswer is the mandated phrasing when a query returns no rows.
const EmptyResultAnswer = "No matching records were found for that question."

const answerInstruction = `You answer questions about conference attendees using ONLY the rows supplied in the prompt.

RULES:
1. Use only the supplied rows. Never add outside or general knowledge.
2. If the rows are empty, reply exactly: "` + EmptyResultAnswer + `"
3. For multiple rows, format the answer as a compact table.
4. For a single-entity lookup, answer in one direct sentence.
5. Do not mention SQL, queries, or how the data was obtained.`

// AnswerSynthesizer is the second, independent completion call. Its output
// is returned verbatim as the answer text; nothing re-parses or validates it.
type AnswerSynthesizer struct {
	completer Completer
}

func NewAnswerSynthesizer(completer Completer) *AnswerSynthesizer {
	return &AnswerSynthesizer{completer: completer}
}

func (s *AnswerSynthesizer) Synthesize(ctx context.Context, question string, rows []map[string]interface{}) (string, error) {
	rowJSON, err := json.Marshal(rows)
	if err != nil {
		rowJSON = []byte("[]")
	}

	var prompt strings.Builder
	prompt.WriteString("QUESTION: ")
	prompt.WriteString(question)
	prompt.WriteString("\n\nROWS (")
	prompt.WriteString(fmt.Sprintf("%d", len(rows)))
	prompt.WriteString("):\n")
	prompt.Write(rowJSON)

	return s.completer.Complete(ctx, answerInstruction, prompt.String())
}
