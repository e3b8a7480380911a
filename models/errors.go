package models

import (
	"fmt"
	"strings"
)

// ConfigurationError reports broken or missing service configuration:
// unknown slugs, missing pricing keys, malformed discount tables. It is
// never silently defaulted into a zero price.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// FieldError is a single field-level validation failure at a wizard step.
type FieldError struct {
	Step    string `json:"step"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Step, e.Field, e.Message)
}

// ValidationErrors aggregates every field failure for a step so callers
// can present all problems at once instead of one at a time.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// ConflictError means the chosen worker is no longer free for the
// requested window. The caller can pick another worker and retry.
type ConflictError struct {
	WorkerID string
	Message  string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("worker %s is no longer available for the selected time", e.WorkerID)
}

// PaymentError means the gateway declined, errored or timed out. The
// booking row persists in payment_failed for audit but is not active.
type PaymentError struct {
	Reason string
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

func (e *PaymentError) Unwrap() error { return e.Err }

// IncompleteSessionError rejects a commit attempted before every
// required wizard step has been captured. Nothing is persisted.
type IncompleteSessionError struct {
	MissingSteps []string
}

func (e *IncompleteSessionError) Error() string {
	return fmt.Sprintf("booking session is incomplete, missing steps: %s", strings.Join(e.MissingSteps, ", "))
}
