package models

import (
	"encoding/json"
	"net/http"
)

// Scope values surfaced in AnswerMeta.Scope.
const (
	ScopeInScope       = "in_scope"
	ScopeOutOfScope    = "out_of_scope"
	ScopePIIBlocked    = "pii_blocked"
	ScopeUIAction      = "ui_action"
	ScopeFallbackError = "fallback_error"
)

// AnswerMeta describes how the pipeline disposed of the question.
type AnswerMeta struct {
	Scope     string `json:"scope"`
	Category  string `json:"category,omitempty"`
	Intent    string `json:"intent,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// AnswerPayload is the only externally visible artifact of a request.
// Ok is true even for rejections and internal fallbacks; the conversational
// surface never returns transport-level failures for pipeline outcomes.
type AnswerPayload struct {
	Ok     bool                     `json:"ok"`
	Answer string                   `json:"answer"`
	Action *UIAction                `json:"action,omitempty"`
	SQL    string                   `json:"sql,omitempty"`
	Rows   []map[string]interface{} `json:"rows,omitempty"`
	Meta   AnswerMeta               `json:"meta"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
