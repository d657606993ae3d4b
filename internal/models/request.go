package models

import (
	"fmt"
	"strings"
)

const (
	MinQuestionLen = 3
	MaxQuestionLen = 400
)

// Turn is a single prior exchange in the conversation history.
type Turn struct {
	Role string `json:"role"` // "user" | "assistant"
	Text string `json:"text"`
}

// AskRequest is the single inbound operation: one free-text question plus
// the trailing conversation history and an already-resolved dataset ID.
// Auth/session resolution happens upstream; the pipeline trusts DatasetID.
type AskRequest struct {
	ConversationID string `json:"conversation_id"`
	Question       string `json:"question"`
	History        []Turn `json:"history,omitempty"`
	DatasetID      string `json:"dataset_id"`
}

// Validate enforces boundary constraints before the pipeline runs.
func (r *AskRequest) Validate() error {
	q := strings.TrimSpace(r.Question)
	if len(q) < MinQuestionLen {
		return fmt.Errorf("question too short: %d chars (min %d)", len(q), MinQuestionLen)
	}
	if len(q) > MaxQuestionLen {
		return fmt.Errorf("question too long: %d chars (max %d)", len(q), MaxQuestionLen)
	}
	return nil
}
