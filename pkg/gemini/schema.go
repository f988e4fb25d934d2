package gemini

import "google.golang.org/genai"

// ExtractionPrompt is the fixed system instruction for thread analysis.
// The heuristics ("X should do Y" -> owner X, "we need X by Friday" ->
// deadline Friday) steer the model toward the ownership partition and
// deadline fields the schema requires.
const ExtractionPrompt = `You are an expert email analyst. Your job is to extract and summarize critical information from email threads so busy professionals can understand what happened WITHOUT reading all emails.

Analyze the thread and identify key decisions, action items, stakeholders, and timeline. Output ONLY valid JSON conforming to the response schema.

Extraction heuristics:
- "X should do Y" or "X will do Y" means owner X has action item Y.
- "we need X by Friday" means an action item with deadline Friday.
- Action items addressed to the primary recipient go in your_action_items; everything else goes in others_action_items with an owner.
- Assume the user receiving this summary is the primary recipient.
- confidence_score is 0-100: how certain you are the extraction reflects the thread.
- extraction_accuracy lists short notes on anything you were unsure about.
- Rate priority URGENT only when the thread itself signals urgency.`

// ReportSchema returns the Gemini response_schema for thread intelligence
// reports. It is the single source of truth for the payload structure: it
// constrains the model's output and ReportPayload mirrors it field for field.
func ReportSchema() *genai.Schema {
	actionItem := func(withOwner bool) *genai.Schema {
		props := map[string]*genai.Schema{
			"task":     {Type: genai.TypeString},
			"deadline": {Type: genai.TypeString, Description: "Free text deadline, empty if unspecified"},
			"priority": {
				Type: genai.TypeString,
				Enum: []string{"URGENT", "HIGH", "NORMAL", "LOW"},
			},
			"status": {
				Type: genai.TypeString,
				Enum: []string{"PENDING", "IN_PROGRESS", "COMPLETED", "BLOCKED"},
			},
			"assigned_by":   {Type: genai.TypeString},
			"time_estimate": {Type: genai.TypeString},
			"dependencies": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		}
		if withOwner {
			props["owner"] = &genai.Schema{Type: genai.TypeString, Description: "Who owns this item"}
		}
		return &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   []string{"task", "priority", "status"},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"thread_title": {Type: genai.TypeString},
			"summary":      {Type: genai.TypeString, Description: "Synopsis of the whole thread"},
			"status": {
				Type: genai.TypeString,
				Enum: []string{"DECISION_MADE", "PENDING_DECISION", "ACTION_REQUIRED", "BLOCKED", "FYI"},
			},
			"key_decision": {Type: genai.TypeString},
			"decision_reasoning": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"expected_outcome": {Type: genai.TypeString},
			"decided_by":       {Type: genai.TypeString},
			"decided_at":       {Type: genai.TypeString},
			"next_steps":       {Type: genai.TypeString},
			"unresolved_questions": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"email_count":       {Type: genai.TypeInteger},
			"participant_count": {Type: genai.TypeInteger},
			"time_span":         {Type: genai.TypeString, Description: "e.g. '3 days', 'Oct 2 - Oct 9'"},
			"confidence_score":  {Type: genai.TypeInteger, Description: "0-100"},
			"extraction_accuracy": {
				Type:        genai.TypeArray,
				Description: "Verification notes on extraction certainty",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"your_action_items": {
				Type:  genai.TypeArray,
				Items: actionItem(false),
			},
			"others_action_items": {
				Type:  genai.TypeArray,
				Items: actionItem(true),
			},
			"stakeholders": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {Type: genai.TypeString},
						"role": {Type: genai.TypeString},
						"involvement_level": {
							Type: genai.TypeString,
							Enum: []string{"HIGH", "MEDIUM", "LOW"},
						},
						"status": {Type: genai.TypeString},
					},
					Required: []string{"name", "involvement_level"},
				},
			},
			"timeline": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date":       {Type: genai.TypeString},
						"time":       {Type: genai.TypeString},
						"event":      {Type: genai.TypeString},
						"is_pending": {Type: genai.TypeBoolean, Description: "true for projected future events"},
					},
					Required: []string{"date", "event"},
				},
			},
			"key_quotes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"quote":   {Type: genai.TypeString},
						"author":  {Type: genai.TypeString},
						"context": {Type: genai.TypeString},
					},
					Required: []string{"quote", "author"},
				},
			},
			"budget": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"original_amount": {Type: genai.TypeString},
					"approved_amount": {Type: genai.TypeString},
					"currency":        {Type: genai.TypeString},
					"category":        {Type: genai.TypeString},
				},
			},
		},
		Required: []string{"thread_title", "summary", "status", "key_decision", "confidence_score"},
	}
}
