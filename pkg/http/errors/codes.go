package errors

// Error codes carried alongside the numeric status in error envelopes.
const (
	// Request shape errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeMissingField     = "missing_field"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Resource errors
	ErrCodeNotFound         = "not_found"
	ErrCodeQuestionNotFound = "question_not_found"
	ErrCodeCategoryNotFound = "category_not_found"

	// Processing errors
	ErrCodeUnprocessable    = "unprocessable"
	ErrCodeValidationFailed = "validation_failed"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)
