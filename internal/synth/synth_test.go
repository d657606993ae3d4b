package synth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/synth"
)

type fakeCompleter struct {
	response string
	err      error

	lastSystem string
	lastPrompt string
	calls      int
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.response, f.err
}

// ─── QuerySynthesizer ─────────────────────────────────────────────────────────

func TestQuerySynthesize(t *testing.T) {
	fc := &fakeCompleter{response: `{"sql": "SELECT count(*) FROM attendees", "intent": "count attendees"}`}
	s := synth.NewQuerySynthesizer(fc, 50, []string{"email", "phone"})

	q, err := s.Synthesize(context.Background(), "how many attendees", "TABLE attendees (id int)", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SQL != "SELECT count(*) FROM attendees" {
		t.Errorf("sql = %q", q.SQL)
	}
	if q.Intent != "count attendees" {
		t.Errorf("intent = %q", q.Intent)
	}
	if fc.calls != 1 {
		t.Errorf("calls = %d, want 1", fc.calls)
	}
	if !strings.Contains(fc.lastSystem, "TABLE attendees (id int)") {
		t.Error("schema block missing from instruction")
	}
	if !strings.Contains(fc.lastSystem, "LIMIT 50") {
		t.Error("row limit missing from instruction")
	}
	if !strings.Contains(fc.lastSystem, "email, phone") {
		t.Error("forbidden columns missing from instruction")
	}
	if !strings.Contains(fc.lastPrompt, "QUESTION: how many attendees") {
		t.Errorf("prompt = %q", fc.lastPrompt)
	}
}

func TestQuerySynthesizeExtractsFromProse(t *testing.T) {
	fc := &fakeCompleter{response: "Sure, here you go:\n```json\n{\"sql\": \"SELECT country FROM attendees\"}\n```"}
	s := synth.NewQuerySynthesizer(fc, 50, nil)

	q, err := s.Synthesize(context.Background(), "countries", "schema", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SQL != "SELECT country FROM attendees" {
		t.Errorf("sql = %q", q.SQL)
	}
}

func TestQuerySynthesizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no JSON", "I cannot answer that"},
		{"malformed JSON", `{"sql": SELECT}`},
		{"missing sql field", `{"intent": "count"}`},
		{"blank sql field", `{"sql": "   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{response: tt.response}
			s := synth.NewQuerySynthesizer(fc, 50, nil)
			if _, err := s.Synthesize(context.Background(), "q", "schema", ""); !errors.Is(err, models.ErrSynthesis) {
				t.Errorf("err = %v, want ErrSynthesis", err)
			}
		})
	}
}

func TestQuerySynthesizePropagatesNetworkError(t *testing.T) {
	fc := &fakeCompleter{err: models.ErrNetwork}
	s := synth.NewQuerySynthesizer(fc, 50, nil)
	if _, err := s.Synthesize(context.Background(), "q", "schema", ""); !errors.Is(err, models.ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
}

func TestQuerySynthesizeIncludesContext(t *testing.T) {
	fc := &fakeCompleter{response: `{"sql": "SELECT 1"}`}
	s := synth.NewQuerySynthesizer(fc, 50, nil)

	ctxBlock := "USER: top companies\nASSISTANT: Acme leads with 12."
	if _, err := s.Synthesize(context.Background(), "and second place?", "schema", ctxBlock); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fc.lastPrompt, "CONVERSATION SO FAR:\n"+ctxBlock) {
		t.Errorf("context block missing from prompt: %q", fc.lastPrompt)
	}
}

// ─── AnswerSynthesizer ────────────────────────────────────────────────────────

func TestAnswerSynthesize(t *testing.T) {
	fc := &fakeCompleter{response: "There are 42 confirmed attendees."}
	s := synth.NewAnswerSynthesizer(fc)

	rows := []map[string]interface{}{{"count": 42}}
	got, err := s.Synthesize(context.Background(), "how many confirmed", rows)
	if err != nil {
		t.Fatal(err)
	}
	if got != "There are 42 confirmed attendees." {
		t.Errorf("answer = %q", got)
	}
	if !strings.Contains(fc.lastPrompt, `"count":42`) {
		t.Errorf("rows missing from prompt: %q", fc.lastPrompt)
	}
	if !strings.Contains(fc.lastSystem, synth.EmptyResultAnswer) {
		t.Error("empty-result phrasing missing from instruction")
	}
}

// ─── BuildContext ─────────────────────────────────────────────────────────────

func TestBuildContext(t *testing.T) {
	history := []models.Turn{
		{Role: "user", Text: "first question"},
		{Role: "assistant", Text: "first answer"},
		{Role: "user", Text: "second question"},
		{Role: "assistant", Text: "second answer"},
	}

	got := synth.BuildContext(history, 6)
	want := "USER: first question\nASSISTANT: first answer\nUSER: second question\nASSISTANT: second answer"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildContextWindow(t *testing.T) {
	history := []models.Turn{
		{Role: "user", Text: "old"},
		{Role: "assistant", Text: "older answer"},
		{Role: "user", Text: "recent"},
	}

	got := synth.BuildContext(history, 2)
	want := "ASSISTANT: older answer\nUSER: recent"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if synth.BuildContext(history, 0) != "" {
		t.Error("zero window should produce empty context")
	}
	if synth.BuildContext(nil, 6) != "" {
		t.Error("nil history should produce empty context")
	}
}

func TestBuildContextSkipsBlankTurns(t *testing.T) {
	history := []models.Turn{
		{Role: "user", Text: "  "},
		{Role: "user", Text: "real question"},
	}
	if got := synth.BuildContext(history, 6); got != "USER: real question" {
		t.Errorf("got %q", got)
	}
}
