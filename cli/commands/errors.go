package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/chatstream/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitProvider   = 2
	ExitNetwork    = 3
)

var errNoAPIKey = errors.New("no API key: run 'chatstream keys set openai' or set OPENAI_API_KEY")

// handleError reports err on stderr and classifies it into an exit code.
func (a *App) handleError(err error) error {
	var provErr *core.ProviderError
	switch {
	case errors.Is(err, core.ErrMissingField):
		a.reportError("validation_error", err.Error(), nil)
		return reported(ExitValidation, err)

	case core.IsTransport(err):
		a.reportError("network_error", err.Error(), nil)
		return reported(ExitNetwork, err)

	case errors.As(err, &provErr):
		a.reportError(provErr.Code, provErr.Message, provErr)
		return reported(ExitProvider, err)

	default:
		a.reportError("error", err.Error(), nil)
		return reported(ExitProvider, err)
	}
}

func (a *App) reportError(errType, message string, provErr *core.ProviderError) {
	if a.jsonOutput {
		body := map[string]any{
			"type":    errType,
			"message": message,
		}
		if provErr != nil {
			body["provider"] = provErr.Provider
			body["status"] = provErr.Status
			body["request_id"] = provErr.RequestID
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": body})
		return
	}

	fmt.Fprintf(a.stderr, "Error: %s\n", message)
	if provErr != nil && provErr.RequestID != "" {
		fmt.Fprintf(a.stderr, "  Status: %d, Request ID: %s\n", provErr.Status, provErr.RequestID)
	}
}

// exitError wraps an error with an exit code.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// reported marks an exit error whose message was already written to stderr.
func reported(code int, err error) error {
	return &exitError{code: code, err: err, reported: true}
}
