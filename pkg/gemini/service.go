package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the default Gemini model for thread extraction
const DefaultModel = "gemini-2.5-flash"

// DefaultThinkingBudget bounds the model's reasoning effort per request
const DefaultThinkingBudget = int32(1024)

// Service performs structured thread extraction against the Gemini API.
// Construct one per extraction call: the client is built from the supplied
// key on first use, so a credential changed between calls is always honored.
type Service struct {
	apiKey         string
	model          string
	thinkingBudget int32
}

// NewService creates a Service bound to the given API key. Empty model or
// thinkingBudget fall back to the defaults.
func NewService(apiKey, model string, thinkingBudget int32) *Service {
	if model == "" {
		model = DefaultModel
	}
	if thinkingBudget <= 0 {
		thinkingBudget = DefaultThinkingBudget
	}
	return &Service{
		apiKey:         apiKey,
		model:          model,
		thinkingBudget: thinkingBudget,
	}
}

// ExtractReport sends the raw thread to Gemini with the report response
// schema and parses the structured payload. Failures come back classified as
// *ExtractError; no retries happen here.
func (s *Service) ExtractReport(ctx context.Context, rawThread string) (*ReportPayload, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ClassifyError(fmt.Errorf("failed to create Gemini client: %w", err))
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: rawThread}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: ExtractionPrompt}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   ReportSchema(),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(s.thinkingBudget),
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, ClassifyError(err)
	}

	text := resp.Text()
	if text == "" {
		return nil, &ExtractError{Kind: KindEmptyResponse, Message: "model returned no content"}
	}

	var payload ReportPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &ExtractError{Kind: KindEmptyResponse, Message: fmt.Sprintf("unparsable model output: %v", err)}
	}

	return &payload, nil
}
