// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"

	ErrCodeProjectNotFound  ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeFeedbackNotFound ErrorCode = "FEEDBACK_NOT_FOUND"

	ErrCodeChangeRequestNotFound     ErrorCode = "CHANGE_REQUEST_NOT_FOUND"
	ErrCodeChangeRequestInvalid      ErrorCode = "CHANGE_REQUEST_INVALID"
	ErrCodeApprovalTransitionInvalid ErrorCode = "APPROVAL_TRANSITION_INVALID"
	ErrCodeApproverNotAuthorized     ErrorCode = "APPROVER_NOT_AUTHORIZED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeCatalogPersistFailed     ErrorCode = "CATALOG_PERSIST_FAILED"
	ErrCodeCatalogCacheFailed       ErrorCode = "CATALOG_CACHE_FAILED"
	ErrCodeSearchIndexFailed        ErrorCode = "SEARCH_INDEX_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeDraftTimeout ErrorCode = "DRAFT_TIMEOUT"
	ErrCodeDraftFailed  ErrorCode = "DRAFT_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError finds a StandardError anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false, nil)
}

func NewProjectNotFoundError(projectID string) *StandardError {
	return newError(ErrCodeProjectNotFound, "Project not found", fmt.Sprintf("projectId: %s", projectID), false, nil).
		WithMetadata("projectId", projectID)
}

func NewFeedbackNotFoundError(feedbackID string) *StandardError {
	return newError(ErrCodeFeedbackNotFound, "Feedback not found", fmt.Sprintf("feedbackId: %s", feedbackID), false, nil).
		WithMetadata("feedbackId", feedbackID)
}

func NewChangeRequestNotFoundError(requestID string) *StandardError {
	return newError(ErrCodeChangeRequestNotFound, "Change request not found", fmt.Sprintf("requestId: %s", requestID), false, nil).
		WithMetadata("requestId", requestID)
}

// NewChangeRequestInvalidError wraps a payload validation failure.
func NewChangeRequestInvalidError(err error) *StandardError {
	return newError(ErrCodeChangeRequestInvalid, "Change request payload is invalid", err.Error(), false, err)
}

func NewApprovalTransitionInvalidError(requestID, from, action string) *StandardError {
	return newError(ErrCodeApprovalTransitionInvalid, "Approval transition not allowed",
		fmt.Sprintf("requestId: %s, status: %s, action: %s", requestID, from, action), false, nil)
}

func NewApproverNotAuthorizedError(approver, role, status string) *StandardError {
	return newError(ErrCodeApproverNotAuthorized, "Approver lacks the role for this level",
		fmt.Sprintf("approver: %s, role: %s, status: %s", approver, role, status), false, nil)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewCatalogPersistFailedError(err error) *StandardError {
	return newError(ErrCodeCatalogPersistFailed, "Failed to persist catalog", err.Error(), true, err)
}

func NewCatalogCacheFailedError(op string, err error) *StandardError {
	return newError(ErrCodeCatalogCacheFailed, "Catalog cache error",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), true, err)
}

func NewSearchIndexFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, "Search indexing failed",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true, err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Failed to send notification",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

func NewDraftTimeoutError() *StandardError {
	return newError(ErrCodeDraftTimeout, "Draft generation timed out", "", true, nil)
}

func NewDraftFailedError(err error) *StandardError {
	return newError(ErrCodeDraftFailed, "Draft generation failed", err.Error(), true, err)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true, err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true, err)
}

// NewInternalError is the fallback for errors without a code.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes the process
// models catch. Codes missing from the map are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:              "INVALID_INPUT",
	ErrCodeProjectNotFound:           "PROJECT_NOT_FOUND",
	ErrCodeFeedbackNotFound:          "FEEDBACK_NOT_FOUND",
	ErrCodeChangeRequestNotFound:     "CHANGE_REQUEST_NOT_FOUND",
	ErrCodeChangeRequestInvalid:      "CHANGE_REQUEST_INVALID",
	ErrCodeApprovalTransitionInvalid: "APPROVAL_TRANSITION_INVALID",
	ErrCodeApproverNotAuthorized:     "APPROVER_NOT_AUTHORIZED",
	ErrCodeDatabaseConnectionFailed:  "DATABASE_CONNECTION_FAILED",
	ErrCodeCatalogPersistFailed:      "CATALOG_PERSIST_FAILED",
	ErrCodeCatalogCacheFailed:        "CATALOG_CACHE_FAILED",
	ErrCodeSearchIndexFailed:         "SEARCH_INDEX_FAILED",
	ErrCodeNotificationSendFailed:    "NOTIFICATION_SEND_FAILED",
	ErrCodeDraftTimeout:              "DRAFT_TIMEOUT",
	ErrCodeDraftFailed:               "DRAFT_FAILED",
}

// GetRetryCount returns the retry budget for a code; 0 means throw.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeCatalogPersistFailed,
		ErrCodeCatalogCacheFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeDraftFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeTimeout:
		return 2

	case ErrCodeDraftTimeout:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CHANGE_REQUEST") || strings.HasPrefix(codeStr, "APPROV"):
		return "APPROVAL"
	case strings.HasPrefix(codeStr, "PROJECT") || strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.HasPrefix(codeStr, "DRAFT"):
		return "AI"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
