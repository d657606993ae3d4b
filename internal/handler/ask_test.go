package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/attendai/attendai/internal/handler"
	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/pipeline"
	"github.com/attendai/attendai/internal/security"
)

// UI commands and scope rejections resolve before any external dependency is
// touched, so a pipeline with only the audit logger wired is enough here.
func newAskHandler() *handler.AskHandler {
	pipe := pipeline.New(pipeline.Deps{Audit: security.NewAuditLogger(false)})
	return handler.NewAskHandler(pipe)
}

func postAsk(t *testing.T, h *handler.AskHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)
	return rec
}

func TestAskValidation(t *testing.T) {
	h := newAskHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"question": `},
		{"question too short", `{"question": "hi"}`},
		{"question too long", `{"question": "` + strings.Repeat("a", 401) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postAsk(t, h, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAskUICommand(t *testing.T) {
	rec := postAsk(t, newAskHandler(), `{"question": "move company to front"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload models.AnswerPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.Ok || payload.Meta.Scope != models.ScopeUIAction {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Action == nil || payload.Action.Type != models.ActionReorderColumn {
		t.Errorf("action = %+v", payload.Action)
	}
}

func TestAskOutOfScope(t *testing.T) {
	rec := postAsk(t, newAskHandler(), `{"question": "what is the capital of France"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload models.AnswerPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.Ok || payload.Meta.Scope != models.ScopeOutOfScope {
		t.Errorf("payload = %+v", payload)
	}
}

// A panic inside the pipeline must still produce a 200 envelope. The handler
// here has no guard wired, so an in-scope question panics past classification.
func TestAskPanicBecomesFallback(t *testing.T) {
	rec := postAsk(t, newAskHandler(), `{"question": "how many attendees are there"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload models.AnswerPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.Ok || payload.Meta.Scope != models.ScopeFallbackError {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Answer != pipeline.FallbackMessage {
		t.Errorf("answer = %q", payload.Answer)
	}
}
