package domain

import "time"

// SummaryStatus is the report-level status assigned at extraction time.
type SummaryStatus string

const (
	StatusDecisionMade    SummaryStatus = "DECISION_MADE"
	StatusPendingDecision SummaryStatus = "PENDING_DECISION"
	StatusActionRequired  SummaryStatus = "ACTION_REQUIRED"
	StatusBlocked         SummaryStatus = "BLOCKED"
	StatusFYI             SummaryStatus = "FYI"
)

// Priority represents action item priority level
type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
)

// ActionStatus represents the current state of an action item
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "PENDING"
	ActionStatusInProgress ActionStatus = "IN_PROGRESS"
	ActionStatusCompleted  ActionStatus = "COMPLETED"
	ActionStatusBlocked    ActionStatus = "BLOCKED"
)

// InvolvementLevel represents how engaged a stakeholder was in the thread
type InvolvementLevel string

const (
	InvolvementHigh   InvolvementLevel = "HIGH"
	InvolvementMedium InvolvementLevel = "MEDIUM"
	InvolvementLow    InvolvementLevel = "LOW"
)

// Rating is the user's thumbs verdict on a generated report
type Rating string

const (
	RatingUp     Rating = "up"
	RatingDown   Rating = "down"
	RatingMiddle Rating = "middle"
)

// ActionItem is a unit of required work extracted from the thread.
// Ownership is structural: an item lives in exactly one of the report's two
// collections, and its index within that collection is its addressing key.
type ActionItem struct {
	Task         string       `json:"task"`
	Deadline     string       `json:"deadline"` // free text, empty means unspecified
	Priority     Priority     `json:"priority"`
	Status       ActionStatus `json:"status"`
	Owner        string       `json:"owner,omitempty"` // only in the "others" collection
	AssignedBy   string       `json:"assigned_by,omitempty"`
	TimeEstimate string       `json:"time_estimate,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
	SnoozedUntil *time.Time   `json:"snoozed_until,omitempty"`
}

// Stakeholder is a participant of the thread and their part in the decision
type Stakeholder struct {
	Name             string           `json:"name"`
	Role             string           `json:"role"`
	InvolvementLevel InvolvementLevel `json:"involvement_level"`
	Status           string           `json:"status,omitempty"`
}

// TimelineEvent is one entry of the reconstructed thread timeline.
// IsPending distinguishes projected future events from ones that occurred.
type TimelineEvent struct {
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Event     string `json:"event"`
	IsPending bool   `json:"is_pending,omitempty"`
}

// KeyQuote is a verbatim quote worth surfacing alongside the summary
type KeyQuote struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Context string `json:"context,omitempty"`
}

// Budget captures any money figures discussed in the thread (all optional)
type Budget struct {
	OriginalAmount string `json:"original_amount,omitempty"`
	ApprovedAmount string `json:"approved_amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Category       string `json:"category,omitempty"`
}

// Report is the structured intelligence extracted from one email thread.
// Core extracted fields are never mutated after creation; only Rating,
// FeedbackText, IsPublic and the two action-item collections change over the
// report's lifetime, and every mutation is a whole-report replace.
type Report struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ThreadTitle         string        `json:"thread_title" gorm:"type:text"`
	Summary             string        `json:"summary" gorm:"type:text"`
	Status              SummaryStatus `json:"status" gorm:"index"`
	KeyDecision         string        `json:"key_decision" gorm:"type:text"`
	DecisionReasoning   []string      `json:"decision_reasoning" gorm:"type:text;serializer:json"`
	ExpectedOutcome     string        `json:"expected_outcome" gorm:"type:text"`
	DecidedBy           string        `json:"decided_by"`
	DecidedAt           string        `json:"decided_at"`
	NextSteps           string        `json:"next_steps" gorm:"type:text"`
	UnresolvedQuestions []string      `json:"unresolved_questions" gorm:"type:text;serializer:json"`

	EmailCount         int      `json:"email_count"`
	ParticipantCount   int      `json:"participant_count"`
	TimeSpan           string   `json:"time_span"`
	ConfidenceScore    int      `json:"confidence_score"` // 0-100
	ExtractionAccuracy []string `json:"extraction_accuracy" gorm:"type:text;serializer:json"`

	YourActionItems   []ActionItem    `json:"your_action_items" gorm:"type:text;serializer:json"`
	OthersActionItems []ActionItem    `json:"others_action_items" gorm:"type:text;serializer:json"`
	Stakeholders      []Stakeholder   `json:"stakeholders" gorm:"type:text;serializer:json"`
	Timeline          []TimelineEvent `json:"timeline" gorm:"type:text;serializer:json"`
	KeyQuotes         []KeyQuote      `json:"key_quotes" gorm:"type:text;serializer:json"`

	Budget       *Budget `json:"budget,omitempty" gorm:"type:text;serializer:json"`
	RawThread    string  `json:"raw_thread,omitempty" gorm:"type:text"`
	Rating       *Rating `json:"rating,omitempty"`
	FeedbackText string  `json:"feedback_text,omitempty" gorm:"type:text"`
	IsPublic     bool    `json:"is_public" gorm:"default:false"`
}

// TableName specifies the table name for GORM
func (Report) TableName() string {
	return "reports"
}

// ParsePriority coerces a model-emitted priority string to a known value.
// Unknown or legacy values ("MEDIUM" from older schema revisions) map to NORMAL.
func ParsePriority(p string) Priority {
	switch Priority(p) {
	case PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow:
		return Priority(p)
	default:
		return PriorityNormal
	}
}

// ParseActionStatus coerces a model-emitted item status; unknown values map to PENDING.
func ParseActionStatus(s string) ActionStatus {
	switch ActionStatus(s) {
	case ActionStatusPending, ActionStatusInProgress, ActionStatusCompleted, ActionStatusBlocked:
		return ActionStatus(s)
	default:
		return ActionStatusPending
	}
}

// ParseSummaryStatus coerces a model-emitted report status; unknown values map to FYI.
func ParseSummaryStatus(s string) SummaryStatus {
	switch SummaryStatus(s) {
	case StatusDecisionMade, StatusPendingDecision, StatusActionRequired, StatusBlocked, StatusFYI:
		return SummaryStatus(s)
	default:
		return StatusFYI
	}
}

// ParseInvolvementLevel coerces a stakeholder involvement level; unknown values map to MEDIUM.
func ParseInvolvementLevel(s string) InvolvementLevel {
	switch InvolvementLevel(s) {
	case InvolvementHigh, InvolvementMedium, InvolvementLow:
		return InvolvementLevel(s)
	default:
		return InvolvementMedium
	}
}

// ParseRating validates a user-supplied rating value
func ParseRating(s string) (Rating, bool) {
	switch Rating(s) {
	case RatingUp, RatingDown, RatingMiddle:
		return Rating(s), true
	default:
		return "", false
	}
}

// ClampConfidence bounds a confidence score to its declared 0-100 domain.
// Out-of-range values from the model are clamped, not rejected.
func ClampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampCount bounds a count field to non-negative
func ClampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
