package usecase

import (
	"context"
	"time"

	"emailsmart-backend/internal/report/domain"
)

// ReportUsecase defines the interface for report business logic
type ReportUsecase interface {
	// AnalyzeThread validates the raw thread, runs extraction and persists the
	// resulting report. apiKeyOverride, when non-empty, replaces the configured
	// credential for this single call.
	AnalyzeThread(ctx context.Context, rawThread, apiKeyOverride string) (*domain.Report, error)

	// GetReportByID retrieves a report
	GetReportByID(id string) (*domain.Report, error)

	// GetSharedReport retrieves a report only if it has been shared publicly
	GetSharedReport(id string) (*domain.Report, error)

	// ListReports returns reports newest first, optionally filtered by derived
	// classification bucket
	ListReports(bucket string, limit, offset int) ([]*domain.Report, int64, error)

	// DeleteReport removes a report as a whole unit
	DeleteReport(ctx context.Context, id string) error

	// UpdateActionItem applies a lifecycle transition to one action item and
	// replaces the stored report with the updated value
	UpdateActionItem(id string, collection string, index int, status string, snoozeUntil *time.Time) (*domain.Report, error)

	// RateReport sets the user's rating and optional feedback text
	RateReport(id, rating, feedback string) (*domain.Report, error)

	// SetPublic toggles the report's external-sharing flag
	SetPublic(id string, public bool) (*domain.Report, error)

	// SearchReports finds reports matching the query, semantically when the
	// vector store is configured, by fuzzy keyword match otherwise
	SearchReports(ctx context.Context, query string, limit int) ([]*domain.Report, error)

	// Digest returns the number of reports per classification bucket
	Digest(now time.Time) (map[domain.Bucket]int, error)

	// SetVectorSearchService wires the optional semantic search backend
	SetVectorSearchService(svc VectorSearchService)
}

// VectorSearchService is the interface for semantic report search.
// Failures here never fail the pipeline; embeddings are best effort.
type VectorSearchService interface {
	UpsertReport(ctx context.Context, reportID, title, summary string) error
	SearchReports(ctx context.Context, query string, limit int) ([]string, error)
	DeleteReport(ctx context.Context, reportID string) error
}
