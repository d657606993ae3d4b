package handler

import (
	"encoding/json"
	"net/http"

	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/pipeline"
	"github.com/rs/zerolog/log"
)

// AskHandler handles POST /api/v1/ask, the single inbound operation.
type AskHandler struct {
	pipe *pipeline.Pipeline
}

func NewAskHandler(pipe *pipeline.Pipeline) *AskHandler {
	return &AskHandler{pipe: pipe}
}

// Ask decodes the question, runs the pipeline, and always answers 200 with
// an envelope. Even an uncaught panic inside the pipeline becomes a generic
// fallback payload: pipeline outcomes never surface as transport failures.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload := h.runGuarded(r, &req)
	models.WriteJSON(w, http.StatusOK, payload)
}

func (h *AskHandler) runGuarded(r *http.Request, req *models.AskRequest) (payload *models.AnswerPayload) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("conversation_id", req.ConversationID).Msg("pipeline panic")
			payload = &models.AnswerPayload{
				Ok:     true,
				Answer: pipeline.FallbackMessage,
				Meta:   models.AnswerMeta{Scope: models.ScopeFallbackError},
			}
		}
	}()
	return h.pipe.Run(r.Context(), req)
}
