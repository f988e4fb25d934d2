package dto

import (
	"time"

	"emailsmart-backend/internal/report/domain"
)

// AnalyzeRequest is the payload for POST /api/reports/analyze
type AnalyzeRequest struct {
	Thread string `json:"thread" binding:"required"`
}

// ActionItemUpdateRequest is the payload for PATCH /api/reports/:id/action-items
type ActionItemUpdateRequest struct {
	Collection   string     `json:"collection" binding:"required"` // "yours" or "others"
	Index        int        `json:"index"`
	Status       string     `json:"status" binding:"required"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty"`
}

// RatingRequest is the payload for POST /api/reports/:id/rating
type RatingRequest struct {
	Rating       string `json:"rating" binding:"required"` // up, down, middle
	FeedbackText string `json:"feedback_text"`
}

// ShareRequest is the payload for POST /api/reports/:id/share
type ShareRequest struct {
	IsPublic bool `json:"is_public"`
}

// ReportResponse pairs a report with its derived classification. The
// classification is recomputed on every response, never read from storage.
type ReportResponse struct {
	*domain.Report
	Classification domain.Classification `json:"classification"`
}

// NewReportResponse builds a response with the classification computed now
func NewReportResponse(report *domain.Report, now time.Time) ReportResponse {
	return ReportResponse{
		Report:         report,
		Classification: domain.Classify(report, now),
	}
}

// NewReportListResponse builds responses for a list of reports
func NewReportListResponse(reports []*domain.Report, now time.Time) []ReportResponse {
	result := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		result = append(result, NewReportResponse(report, now))
	}
	return result
}
