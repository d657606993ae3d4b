package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/attendai/attendai/internal/handler"
	"github.com/attendai/attendai/internal/llm"
	"github.com/attendai/attendai/internal/middleware"
	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/pipeline"
	"github.com/attendai/attendai/internal/security"
	"github.com/attendai/attendai/internal/store"
	"github.com/attendai/attendai/internal/synth"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// setupRoutes returns (router, store, error) so the store can be closed on
// shutdown.
func (s *Server) setupRoutes() (http.Handler, *store.Store, error) {
	cfg := s.cfg
	ctx := context.Background()

	var st *store.Store
	if cfg.DatabaseURL != "" {
		var stErr error
		st, stErr = store.New(ctx, cfg.DatabaseURL)
		if stErr != nil {
			log.Warn().Err(stErr).Msg("attendee data store unavailable")
			st = nil
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set - data store disabled")
	}

	if cfg.AnthropicAPIKey == "" {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - completion calls will fail")
	}

	log.Info().
		Bool("datastore_enabled", st != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("data_masking", cfg.EnableDataMasking).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Int("row_limit", cfg.RowLimit).
		Int("query_timeout_ms", cfg.QueryTimeoutMs).
		Msg("service configuration")

	// Security components: immutable, shared across requests.
	piiGuard := security.NewPIIGuard(cfg.ForbiddenColumns, cfg.PIIKeywords)
	enforcer := security.NewSQLEnforcer(cfg.RowLimit)
	masker := security.NewDataMasker(cfg.ForbiddenColumns)
	audit := security.NewAuditLogger(cfg.EnableAuditLogging)

	completer := llm.New(cfg.AnthropicAPIKey, cfg.Model, cfg.AnthropicBaseURL)
	querySynth := synth.NewQuerySynthesizer(completer, cfg.RowLimit, cfg.ForbiddenColumns)
	answerSynth := synth.NewAnswerSynthesizer(completer)

	schemaProvider := store.NewSchemaProvider(st, cfg.AttendeeTable, cfg.ForbiddenColumns)

	var executor pipeline.QueryExecutor
	if st != nil {
		executor = store.NewExecutor(st, cfg.QueryTimeout())
	} else {
		executor = unavailableExecutor{}
	}

	pipe := pipeline.New(pipeline.Deps{
		QuerySynth:    querySynth,
		AnswerSynth:   answerSynth,
		PIIGuard:      piiGuard,
		Enforcer:      enforcer,
		Masker:        masker,
		Audit:         audit,
		Executor:      executor,
		Schema:        schemaProvider,
		HistoryWindow: cfg.HistoryWindow,
		MaskResults:   cfg.EnableDataMasking,
	})

	askH := handler.NewAskHandler(pipe)
	healthH := handler.NewHealthHandler(st)

	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
		if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
			r.Use(middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/ask", askH.Ask)
		})
	})

	return r, st, nil
}

// unavailableExecutor stands in when no data store is configured; every
// execution resolves to the fallback envelope.
type unavailableExecutor struct{}

func (unavailableExecutor) Execute(ctx context.Context, sql string) (*store.ExecutionResult, error) {
	return &store.ExecutionResult{Status: store.StatusError},
		fmt.Errorf("%w: data store not configured", models.ErrExecution)
}
