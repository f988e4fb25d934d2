package ai

import (
	"context"

	"emailsmart-backend/pkg/gemini"
)

// Payload aliases so callers of the extractor interface do not need to import
// the provider package directly.
type (
	ReportPayload        = gemini.ReportPayload
	ActionItemPayload    = gemini.ActionItemPayload
	StakeholderPayload   = gemini.StakeholderPayload
	TimelineEventPayload = gemini.TimelineEventPayload
	KeyQuotePayload      = gemini.KeyQuotePayload
	BudgetPayload        = gemini.BudgetPayload
)

// ThreadExtractor is the interface for the external structured-extraction
// capability. Implement this interface to add new providers.
//
// One call issues one outbound request and awaits its single response; there
// are no internal retries. Callers bound latency with the context.
type ThreadExtractor interface {
	ExtractReport(ctx context.Context, rawThread string) (*ReportPayload, error)
}

// ProviderType represents the extraction provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
)
