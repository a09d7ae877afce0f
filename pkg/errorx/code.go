package errorx

type Code string

func (c Code) String() string {
	return string(c)
}

const (
	// Client errors (4xx)
	CodeMalformedJSON     Code = "MALFORMED_JSON"
	CodeNotFound          Code = "NOT_FOUND"
	CodeMethodNotAllowed  Code = "METHOD_NOT_ALLOWED"
	CodeDuplicateEntry    Code = "DUPLICATE_ENTRY"
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"

	// Verification codes
	CodeVerificationRejected Code = "VERIFICATION_CODE_REJECTED"

	// Server errors (5xx)
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeUpstreamError      Code = "UPSTREAM_SERVICE_ERROR"
	CodeUpstreamTimeout    Code = "UPSTREAM_TIMEOUT"
)
