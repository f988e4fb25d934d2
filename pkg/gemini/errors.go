package gemini

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrorKind is the closed set of extraction failure classes. The caller uses
// the kind to drive retry decisions; the pipeline itself never retries.
type ErrorKind string

const (
	// KindRateLimited: the API signaled throttling; retrying later may succeed.
	KindRateLimited ErrorKind = "RATE_LIMITED"
	// KindQuotaExhausted: the credential's quota is gone for good; the user
	// needs a different API key before re-invoking.
	KindQuotaExhausted ErrorKind = "QUOTA_EXHAUSTED"
	// KindSafetyBlocked: content rejected by safety filtering. Do not retry
	// with the same input.
	KindSafetyBlocked ErrorKind = "SAFETY_BLOCKED"
	// KindContextOverflow: the thread exceeded the model's context window.
	// This is independent of the validator's length check, which is looser.
	KindContextOverflow ErrorKind = "CONTEXT_OVERFLOW"
	// KindCredentialMismatch: the API key is invalid or does not resolve to a
	// valid project.
	KindCredentialMismatch ErrorKind = "CREDENTIAL_MISMATCH"
	// KindEmptyResponse: the model returned nothing, or something unparsable.
	KindEmptyResponse ErrorKind = "EMPTY_RESPONSE"
	// KindUnknown preserves the underlying message for diagnostics.
	KindUnknown ErrorKind = "UNKNOWN"
)

// ExtractError is a classified extraction failure
type ExtractError struct {
	Kind    ErrorKind
	Message string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

// UserMessage returns the actionable message shown to the user for this kind
func (e *ExtractError) UserMessage() string {
	switch e.Kind {
	case KindRateLimited:
		return "The AI service is rate limiting requests. Wait a moment and try again, or supply a different API key."
	case KindQuotaExhausted:
		return "Your API key's quota is exhausted. Supply a different API key and try again."
	case KindSafetyBlocked:
		return "The thread was rejected by content safety filtering. Retrying with the same text will not help."
	case KindContextOverflow:
		return "The thread is too long for the AI model. Split it into smaller parts and analyze them separately."
	case KindCredentialMismatch:
		return "The configured API key is invalid. Check the key or supply a different one."
	case KindEmptyResponse:
		return "The AI service returned an empty result. Try again."
	default:
		return "Analysis failed: " + e.Message
	}
}

// AsExtractError unwraps err into an *ExtractError if it is one
func AsExtractError(err error) (*ExtractError, bool) {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

var quotaIndicators = []string{
	"quota exceeded",
	"exceeded your current quota",
	"billing",
	"resource_exhausted",
}

var rateLimitIndicators = []string{
	"rate limit",
	"too many requests",
	"overloaded",
	"try again later",
	"unavailable",
	"503",
}

var safetyIndicators = []string{
	"safety",
	"blocked",
	"prohibited content",
	"finish_reason",
}

var overflowIndicators = []string{
	"token count",
	"tokens exceeds",
	"context length",
	"input too long",
	"exceeds the maximum",
}

var credentialIndicators = []string{
	"api key not valid",
	"api_key_invalid",
	"invalid api key",
	"permission denied",
	"unauthenticated",
	"project not found",
	"consumer",
}

// ClassifyError maps an error from the Gemini call into the closed taxonomy.
// Status codes from the API error are checked first; message indicators cover
// the cases the SDK reports as plain errors.
func ClassifyError(err error) *ExtractError {
	if err == nil {
		return nil
	}
	if ee, ok := AsExtractError(err); ok {
		return ee
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			// 429 covers both transient throttling and a spent quota; the
			// quota wording decides which one the user is looking at.
			if containsAny(lower, quotaIndicators) {
				return &ExtractError{Kind: KindQuotaExhausted, Message: msg}
			}
			return &ExtractError{Kind: KindRateLimited, Message: msg}
		case 400:
			if containsAny(lower, credentialIndicators) {
				return &ExtractError{Kind: KindCredentialMismatch, Message: msg}
			}
			if containsAny(lower, overflowIndicators) {
				return &ExtractError{Kind: KindContextOverflow, Message: msg}
			}
		case 401, 403:
			return &ExtractError{Kind: KindCredentialMismatch, Message: msg}
		}
	}

	switch {
	case containsAny(lower, quotaIndicators):
		return &ExtractError{Kind: KindQuotaExhausted, Message: msg}
	case containsAny(lower, rateLimitIndicators):
		return &ExtractError{Kind: KindRateLimited, Message: msg}
	case containsAny(lower, credentialIndicators):
		return &ExtractError{Kind: KindCredentialMismatch, Message: msg}
	case containsAny(lower, overflowIndicators):
		return &ExtractError{Kind: KindContextOverflow, Message: msg}
	case containsAny(lower, safetyIndicators):
		return &ExtractError{Kind: KindSafetyBlocked, Message: msg}
	default:
		return &ExtractError{Kind: KindUnknown, Message: msg}
	}
}

func containsAny(s string, indicators []string) bool {
	for _, indicator := range indicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
