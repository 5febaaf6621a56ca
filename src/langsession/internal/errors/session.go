package errors

import (
	stderr "errors"
	"fmt"
	"strings"
)

// SessionNotFoundError indicates that the session is not registered or its process is no longer alive.
type SessionNotFoundError struct {
	ID string
}

// Error is an implementation of the error interface.
func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found or not alive", e.ID)
}

// NotFoundSession returns the session id and true if SessionNotFoundError is part of the error chain.
func NotFoundSession(e error) (_ string, ok bool) {
	var nf *SessionNotFoundError
	if !stderr.As(e, &nf) {
		return "", false
	}
	return nf.ID, true
}

// ConfigurationError indicates that a backend could not be launched with the available configuration.
type ConfigurationError struct {
	Variant  string
	EnvVar   string
	Searched []string
	Reason   string
}

// Error is an implementation of the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s backend: %s", e.Variant, e.Reason)
	if len(e.Searched) > 0 {
		fmt.Fprintf(&b, " (searched %s)", strings.Join(e.Searched, ", "))
	}
	if e.EnvVar != "" {
		fmt.Fprintf(&b, "; set %s to the backend executable path", e.EnvVar)
	}
	return b.String()
}

// IsConfiguration reports whether a ConfigurationError is part of the error chain.
func IsConfiguration(e error) bool {
	var ce *ConfigurationError
	return stderr.As(e, &ce)
}

// ProcessFaultError wraps a failure to spawn or communicate with a backend process.
type ProcessFaultError struct {
	SessionID string
	Err       error
}

// Error is an implementation of the error interface.
func (e *ProcessFaultError) Error() string {
	return fmt.Sprintf("session %q process fault: %v", e.SessionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessFaultError) Unwrap() error {
	return e.Err
}

// ProcessExitedError is returned to every request still pending when the backend process exits.
type ProcessExitedError struct {
	SessionID string
	Code      int
}

// Error is an implementation of the error interface.
func (e *ProcessExitedError) Error() string {
	return fmt.Sprintf("session %q process exited with code %d", e.SessionID, e.Code)
}

// ExitCode returns the exit code and true if ProcessExitedError is part of the error chain.
func ExitCode(e error) (_ int, ok bool) {
	var pe *ProcessExitedError
	if !stderr.As(e, &pe) {
		return 0, false
	}
	return pe.Code, true
}
