// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRowsWritten is returned by a store when an insert succeeded on the wire but reported no rows.
var ErrNoRowsWritten = errors.New("no rows written")

// ErrMissingConfig is returned when one or more required configuration keys are unset.
type ErrMissingConfig struct {
	Keys []string
}

func (e *ErrMissingConfig) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

// ErrGithubAPI is returned when a GitHub API call answers with a non-success status.
type ErrGithubAPI struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ErrGithubAPI) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("github %s: status %d", e.Op, e.StatusCode)
}

func (e *ErrGithubAPI) Unwrap() error { return e.Err }

// ErrLLM is returned when a language model provider rejects a completion request.
type ErrLLM struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ErrLLM) Error() string {
	return fmt.Sprintf("%s completion failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// ErrSchema is returned when model output is valid JSON but a field has the wrong shape.
type ErrSchema struct {
	Field string
	Err   error
}

func (e *ErrSchema) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unexpected model output schema: %v", e.Err)
	}
	return fmt.Sprintf("unexpected model output schema for %q: %v", e.Field, e.Err)
}

func (e *ErrSchema) Unwrap() error { return e.Err }

// ErrStore is returned when the datastore rejects an insert.
type ErrStore struct {
	Store      string
	StatusCode int
	Body       string
}

func (e *ErrStore) Error() string {
	return fmt.Sprintf("%s insert failed with status %d: %s", e.Store, e.StatusCode, e.Body)
}
