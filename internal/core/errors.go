package core

// Error codes surfaced to clients as protocol-level rejects. Core
// operations themselves never fail hard: malformed input is dropped,
// unknown connections are logged no-ops.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeRateLimited    = "rate_limited"
)
