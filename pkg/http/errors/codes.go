package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"

	// Account errors
	ErrCodeRegistrationFailed = "registration_failed"
	ErrCodeLoginFailed        = "login_failed"
	ErrCodeRefreshFailed      = "refresh_failed"
	ErrCodeEmailTaken         = "email_taken"

	// Generation errors
	ErrCodeGenerationFailed  = "generation_failed"
	ErrCodeEvaluationFailed  = "evaluation_failed"
	ErrCodeMalformedResponse = "malformed_ai_response"
	ErrCodeEmptySubmission   = "empty_submission"

	// Insights errors
	ErrCodeInsightsFailed = "insights_failed"

	// Persistence errors
	ErrCodeSaveFailed       = "save_failed"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeNetworkError     = "network_error"

	// Progress errors
	ErrCodeProgressFetchFailed = "progress_fetch_failed"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeConnectionError    = "connection_error"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
	ErrCodeRateLimited        = "rate_limited"
)
