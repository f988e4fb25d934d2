package gemini

// ActionItemPayload is one extracted action item as emitted by the model,
// before enum coercion and normalization into the domain model.
type ActionItemPayload struct {
	Task         string   `json:"task"`
	Deadline     string   `json:"deadline"`
	Priority     string   `json:"priority"`
	Status       string   `json:"status"`
	Owner        string   `json:"owner,omitempty"`
	AssignedBy   string   `json:"assigned_by,omitempty"`
	TimeEstimate string   `json:"time_estimate,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// StakeholderPayload mirrors the stakeholder record in the response schema
type StakeholderPayload struct {
	Name             string `json:"name"`
	Role             string `json:"role"`
	InvolvementLevel string `json:"involvement_level"`
	Status           string `json:"status,omitempty"`
}

// TimelineEventPayload mirrors the timeline record in the response schema
type TimelineEventPayload struct {
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Event     string `json:"event"`
	IsPending bool   `json:"is_pending,omitempty"`
}

// KeyQuotePayload mirrors the key quote record in the response schema
type KeyQuotePayload struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Context string `json:"context,omitempty"`
}

// BudgetPayload mirrors the optional budget record in the response schema
type BudgetPayload struct {
	OriginalAmount string `json:"original_amount,omitempty"`
	ApprovedAmount string `json:"approved_amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Category       string `json:"category,omitempty"`
}

// ReportPayload is the raw structured payload returned by the extraction
// capability, shaped exactly like the response schema in schema.go. The model
// is not trusted to honor the schema, so the report usecase re-checks and
// normalizes every field before it becomes a domain Report.
type ReportPayload struct {
	ThreadTitle         string                 `json:"thread_title"`
	Summary             string                 `json:"summary"`
	Status              string                 `json:"status"`
	KeyDecision         string                 `json:"key_decision"`
	DecisionReasoning   []string               `json:"decision_reasoning"`
	ExpectedOutcome     string                 `json:"expected_outcome"`
	DecidedBy           string                 `json:"decided_by"`
	DecidedAt           string                 `json:"decided_at"`
	NextSteps           string                 `json:"next_steps"`
	UnresolvedQuestions []string               `json:"unresolved_questions"`
	EmailCount          int                    `json:"email_count"`
	ParticipantCount    int                    `json:"participant_count"`
	TimeSpan            string                 `json:"time_span"`
	ConfidenceScore     int                    `json:"confidence_score"`
	ExtractionAccuracy  []string               `json:"extraction_accuracy"`
	YourActionItems     []ActionItemPayload    `json:"your_action_items"`
	OthersActionItems   []ActionItemPayload    `json:"others_action_items"`
	Stakeholders        []StakeholderPayload   `json:"stakeholders"`
	Timeline            []TimelineEventPayload `json:"timeline"`
	KeyQuotes           []KeyQuotePayload      `json:"key_quotes"`
	Budget              *BudgetPayload         `json:"budget,omitempty"`
}
