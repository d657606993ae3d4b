package store

import (
	"context"
	"fmt"
	"time"

	"github.com/attendai/attendai/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Execution status values.
const (
	StatusOK      = "ok"
	StatusTimeout = "timeout"
	StatusError   = "error"
)

// ExecutionResult is the normalized outcome of one bounded execution.
type ExecutionResult struct {
	Rows      []map[string]interface{}
	RowCount  int
	ElapsedMs int64
	Status    string
}

type queryFunc func(ctx context.Context, sql string) ([]map[string]interface{}, error)

// Executor runs one enforced statement under a hard wall-clock budget.
// The query is raced against the budget: when the timer fires first the
// caller gets control back immediately and the abandoned call is cancelled
// through its context, never waited on.
type Executor struct {
	query   queryFunc
	timeout time.Duration
}

func NewExecutor(s *Store, timeout time.Duration) *Executor {
	return &Executor{
		query: func(ctx context.Context, sql string) ([]map[string]interface{}, error) {
			return runPoolQuery(ctx, s.pool, sql)
		},
		timeout: timeout,
	}
}

type queryOutcome struct {
	rows []map[string]interface{}
	err  error
}

// Execute runs the statement and returns the result. Timeout and store
// failures return a non-nil result with the matching status plus an error
// wrapping the taxonomy sentinel. A cancelled caller is a store error, not a
// timeout: only the budget expiring counts as one. No retries: a failed or
// timed-out execution is terminal for the request.
func (e *Executor) Execute(ctx context.Context, sql string) (*ExecutionResult, error) {
	qCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	// Buffered so the worker can always complete its send after abandonment.
	ch := make(chan queryOutcome, 1)

	go func() {
		rows, err := e.query(qCtx, sql)
		ch <- queryOutcome{rows: rows, err: err}
	}()

	select {
	case <-qCtx.Done():
		elapsed := time.Since(start).Milliseconds()
		if ctx.Err() != nil {
			return &ExecutionResult{Status: StatusError, ElapsedMs: elapsed},
				fmt.Errorf("%w: caller cancelled: %v", models.ErrExecution, ctx.Err())
		}
		log.Warn().Int64("elapsed_ms", elapsed).Dur("budget", e.timeout).Msg("query execution abandoned at budget")
		return &ExecutionResult{Status: StatusTimeout, ElapsedMs: elapsed},
			fmt.Errorf("%w: budget %s exceeded", models.ErrExecutionTimeout, e.timeout)
	case out := <-ch:
		elapsed := time.Since(start).Milliseconds()
		if out.err != nil {
			// The budget may have expired in the same instant the query
			// returned; report that as a timeout, not a store error.
			if ctx.Err() == nil && qCtx.Err() != nil {
				return &ExecutionResult{Status: StatusTimeout, ElapsedMs: elapsed},
					fmt.Errorf("%w: budget %s exceeded", models.ErrExecutionTimeout, e.timeout)
			}
			return &ExecutionResult{Status: StatusError, ElapsedMs: elapsed},
				fmt.Errorf("%w: %v", models.ErrExecution, out.err)
		}
		return &ExecutionResult{
			Rows:      out.rows,
			RowCount:  len(out.rows),
			ElapsedMs: elapsed,
			Status:    StatusOK,
		}, nil
	}
}

func runPoolQuery(ctx context.Context, pool *pgxpool.Pool, sql string) ([]map[string]interface{}, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	var out []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		m := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			m[col] = values[i]
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
