package models

import "errors"

// Pipeline error taxonomy. Scope rejection and PII blocking are not errors;
// they are modeled as stage results. Everything below is caught at the top
// of the pipeline and converted to the same generic fallback envelope —
// never retried, never surfaced verbatim to the user.
var (
	// ErrSynthesis: the completion service returned malformed or absent JSON.
	ErrSynthesis = errors.New("query synthesis failed")

	// ErrUnsafeQuery: the candidate statement failed structural safety checks.
	ErrUnsafeQuery = errors.New("unsafe query rejected")

	// ErrExecutionTimeout: the bounded executor's wall-clock budget expired.
	ErrExecutionTimeout = errors.New("query execution timed out")

	// ErrExecution: the data store reported a query-level failure.
	ErrExecution = errors.New("query execution failed")

	// ErrNetwork: the completion service was unreachable.
	ErrNetwork = errors.New("completion service unreachable")
)
