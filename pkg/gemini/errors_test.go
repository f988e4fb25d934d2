package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/genai"
)

func TestClassifyErrorByMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"quota wording", errors.New("You exceeded your current quota, please check your plan and billing details"), KindQuotaExhausted},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), KindQuotaExhausted},
		{"rate limit", errors.New("rate limit exceeded, slow down"), KindRateLimited},
		{"overloaded model", errors.New("the model is overloaded, try again later"), KindRateLimited},
		{"invalid key", errors.New("API key not valid. Please pass a valid API key."), KindCredentialMismatch},
		{"unauthenticated", errors.New("UNAUTHENTICATED: request had invalid credentials"), KindCredentialMismatch},
		{"token overflow", errors.New("input token count 2097153 exceeds the maximum number of tokens allowed"), KindContextOverflow},
		{"context length", errors.New("request exceeds context length for this model"), KindContextOverflow},
		{"safety block", errors.New("response was blocked due to SAFETY"), KindSafetyBlocked},
		{"anything else", errors.New("dial tcp: connection refused"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.err.Error(), got.Message)
		})
	}
}

func TestClassifyErrorByStatusCode(t *testing.T) {
	tests := []struct {
		name string
		code int
		msg  string
		want ErrorKind
	}{
		{"429 plain", 429, "Too Many Requests", KindRateLimited},
		{"429 with quota wording", 429, "You exceeded your current quota", KindQuotaExhausted},
		{"400 bad key", 400, "API key not valid", KindCredentialMismatch},
		{"400 overflow", 400, "input too long", KindContextOverflow},
		{"401", 401, "invalid authentication", KindCredentialMismatch},
		{"403", 403, "forbidden", KindCredentialMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := genai.APIError{Code: tt.code, Message: tt.msg}
			got := ClassifyError(err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestClassifyErrorPassesThroughExtractError(t *testing.T) {
	original := &ExtractError{Kind: KindEmptyResponse, Message: "no candidates"}

	got := ClassifyError(original)
	assert.Same(t, original, got)

	// Also through a wrap
	got = ClassifyError(fmt.Errorf("extract: %w", original))
	assert.Same(t, original, got)
}

func TestClassifyErrorNil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestUserMessagesAreDistinctAndActionable(t *testing.T) {
	kinds := []ErrorKind{
		KindRateLimited,
		KindQuotaExhausted,
		KindSafetyBlocked,
		KindContextOverflow,
		KindCredentialMismatch,
		KindEmptyResponse,
		KindUnknown,
	}

	seen := make(map[string]ErrorKind)
	for _, kind := range kinds {
		msg := (&ExtractError{Kind: kind, Message: "raw detail"}).UserMessage()
		require.NotEmpty(t, msg)
		if prev, dup := seen[msg]; dup {
			t.Fatalf("kinds %s and %s share the user message %q", prev, kind, msg)
		}
		seen[msg] = kind
	}

	// Unknown keeps the underlying detail so the user has something to report
	assert.Contains(t, (&ExtractError{Kind: KindUnknown, Message: "raw detail"}).UserMessage(), "raw detail")
}
