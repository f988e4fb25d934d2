package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"emailsmart-backend/internal/report/domain"
	"emailsmart-backend/internal/report/repository"
	"emailsmart-backend/pkg/ai"
	"emailsmart-backend/pkg/config"
	"emailsmart-backend/pkg/fuzzy"
	"emailsmart-backend/pkg/gemini"

	"github.com/google/uuid"
)

// Usecase-level errors surfaced to the delivery layer
var (
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidRating   = errors.New("invalid rating value")
	ErrSnoozeNotFuture = errors.New("snooze timestamp must be in the future")
)

// fuzzyMatchThreshold is the per-word score a report must reach in keyword search
const fuzzyMatchThreshold = 0.72

// extractorFactory builds a fresh extractor for one call. A fresh provider is
// built per extraction so a credential changed between calls takes effect
// immediately; nothing is cached across calls.
type extractorFactory func(ai.Config) (ai.ThreadExtractor, error)

// reportUsecase implements ReportUsecase
type reportUsecase struct {
	reportRepo   repository.ReportRepository
	cfg          *config.Config
	vectorSearch VectorSearchService
	newExtractor extractorFactory
}

// NewReportUsecase creates a new instance of reportUsecase
func NewReportUsecase(reportRepo repository.ReportRepository, cfg *config.Config) ReportUsecase {
	return &reportUsecase{
		reportRepo:   reportRepo,
		cfg:          cfg,
		newExtractor: ai.NewThreadExtractor,
	}
}

// SetVectorSearchService wires the optional semantic search backend
func (u *reportUsecase) SetVectorSearchService(svc VectorSearchService) {
	u.vectorSearch = svc
}

// SetExtractorFactory overrides how extractors are built (used by tests)
func (u *reportUsecase) SetExtractorFactory(factory extractorFactory) {
	u.newExtractor = factory
}

func (u *reportUsecase) AnalyzeThread(ctx context.Context, rawThread, apiKeyOverride string) (*domain.Report, error) {
	if err := ValidateThread(rawThread); err != nil {
		return nil, err
	}

	apiKey := u.cfg.GeminiApiKey
	if apiKeyOverride != "" {
		apiKey = apiKeyOverride
	}

	extractor, err := u.newExtractor(ai.Config{
		Provider:       ai.ProviderType(u.cfg.AIProvider),
		GeminiAPIKey:   apiKey,
		GeminiModel:    u.cfg.GeminiModel,
		ThinkingBudget: u.cfg.ThinkingBudget,
	})
	if err != nil {
		return nil, &gemini.ExtractError{Kind: gemini.KindCredentialMismatch, Message: err.Error()}
	}

	payload, err := extractor.ExtractReport(ctx, rawThread)
	if err != nil {
		return nil, err
	}

	report := reportFromPayload(payload, rawThread, time.Now().UTC())

	if err := u.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	// Embedding is best effort; a vector store failure never fails the analysis
	if u.vectorSearch != nil {
		if err := u.vectorSearch.UpsertReport(ctx, report.ID, report.ThreadTitle, report.Summary); err != nil {
			log.Printf("[Pipeline] Failed to index report %s for search: %v", report.ID, err)
		}
	}

	return report, nil
}

// reportFromPayload normalizes the raw extraction payload into a structurally
// total Report: absent collections become empty slices, numeric fields are
// clamped to their declared domains, enum values are coerced to known members.
func reportFromPayload(p *ai.ReportPayload, rawThread string, now time.Time) *domain.Report {
	report := &domain.Report{
		ID:                  uuid.New().String(),
		CreatedAt:           now,
		ThreadTitle:         p.ThreadTitle,
		Summary:             p.Summary,
		Status:              domain.ParseSummaryStatus(p.Status),
		KeyDecision:         p.KeyDecision,
		DecisionReasoning:   emptyIfNil(p.DecisionReasoning),
		ExpectedOutcome:     p.ExpectedOutcome,
		DecidedBy:           p.DecidedBy,
		DecidedAt:           p.DecidedAt,
		NextSteps:           p.NextSteps,
		UnresolvedQuestions: emptyIfNil(p.UnresolvedQuestions),
		EmailCount:          domain.ClampCount(p.EmailCount),
		ParticipantCount:    domain.ClampCount(p.ParticipantCount),
		TimeSpan:            p.TimeSpan,
		ConfidenceScore:     domain.ClampConfidence(p.ConfidenceScore),
		ExtractionAccuracy:  emptyIfNil(p.ExtractionAccuracy),
		YourActionItems:     actionItemsFromPayload(p.YourActionItems, false),
		OthersActionItems:   actionItemsFromPayload(p.OthersActionItems, true),
		Stakeholders:        stakeholdersFromPayload(p.Stakeholders),
		Timeline:            timelineFromPayload(p.Timeline),
		KeyQuotes:           quotesFromPayload(p.KeyQuotes),
		RawThread:           rawThread,
	}

	if p.Budget != nil {
		report.Budget = &domain.Budget{
			OriginalAmount: p.Budget.OriginalAmount,
			ApprovedAmount: p.Budget.ApprovedAmount,
			Currency:       p.Budget.Currency,
			Category:       p.Budget.Category,
		}
	}

	return report
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func actionItemsFromPayload(items []ai.ActionItemPayload, keepOwner bool) []domain.ActionItem {
	result := make([]domain.ActionItem, 0, len(items))
	for _, item := range items {
		if item.Task == "" {
			// A task description is the one thing an action item cannot lack
			continue
		}
		converted := domain.ActionItem{
			Task:         item.Task,
			Deadline:     item.Deadline,
			Priority:     domain.ParsePriority(item.Priority),
			Status:       domain.ParseActionStatus(item.Status),
			AssignedBy:   item.AssignedBy,
			TimeEstimate: item.TimeEstimate,
			Dependencies: item.Dependencies,
		}
		if keepOwner {
			converted.Owner = item.Owner
		}
		result = append(result, converted)
	}
	return result
}

func stakeholdersFromPayload(items []ai.StakeholderPayload) []domain.Stakeholder {
	result := make([]domain.Stakeholder, 0, len(items))
	for _, s := range items {
		if s.Name == "" {
			continue
		}
		result = append(result, domain.Stakeholder{
			Name:             s.Name,
			Role:             s.Role,
			InvolvementLevel: domain.ParseInvolvementLevel(s.InvolvementLevel),
			Status:           s.Status,
		})
	}
	return result
}

func timelineFromPayload(items []ai.TimelineEventPayload) []domain.TimelineEvent {
	result := make([]domain.TimelineEvent, 0, len(items))
	for _, e := range items {
		result = append(result, domain.TimelineEvent{
			Date:      e.Date,
			Time:      e.Time,
			Event:     e.Event,
			IsPending: e.IsPending,
		})
	}
	return result
}

func quotesFromPayload(items []ai.KeyQuotePayload) []domain.KeyQuote {
	result := make([]domain.KeyQuote, 0, len(items))
	for _, q := range items {
		result = append(result, domain.KeyQuote{
			Quote:   q.Quote,
			Author:  q.Author,
			Context: q.Context,
		})
	}
	return result
}

func (u *reportUsecase) GetReportByID(id string) (*domain.Report, error) {
	report, err := u.reportRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (u *reportUsecase) GetSharedReport(id string) (*domain.Report, error) {
	report, err := u.GetReportByID(id)
	if err != nil {
		return nil, err
	}
	if !report.IsPublic {
		return nil, ErrReportNotFound
	}
	// Shared view never exposes the verbatim thread
	shared := *report
	shared.RawThread = ""
	return &shared, nil
}

func (u *reportUsecase) ListReports(bucket string, limit, offset int) ([]*domain.Report, int64, error) {
	if limit <= 0 {
		limit = 50
	}

	if bucket == "" {
		return u.reportRepo.FindAll(limit, offset)
	}

	// Bucket filtering needs the derived classification, which only exists in
	// memory; fetch the window-superset and filter here.
	all, _, err := u.reportRepo.FindAll(1000, 0)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	var filtered []*domain.Report
	for _, report := range all {
		if domain.Classify(report, now).Bucket == domain.Bucket(bucket) {
			filtered = append(filtered, report)
		}
	}

	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []*domain.Report{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (u *reportUsecase) DeleteReport(ctx context.Context, id string) error {
	report, err := u.GetReportByID(id)
	if err != nil {
		return err
	}
	if err := u.reportRepo.Delete(report.ID); err != nil {
		return err
	}
	if u.vectorSearch != nil {
		if err := u.vectorSearch.DeleteReport(ctx, report.ID); err != nil {
			log.Printf("[Pipeline] Failed to remove report %s from search index: %v", report.ID, err)
		}
	}
	return nil
}

func (u *reportUsecase) UpdateActionItem(id string, collection string, index int, status string, snoozeUntil *time.Time) (*domain.Report, error) {
	report, err := u.GetReportByID(id)
	if err != nil {
		return nil, err
	}

	col, ok := domain.ParseCollection(collection)
	if !ok {
		return nil, domain.ErrInvalidCollection
	}

	if snoozeUntil != nil && !snoozeUntil.After(time.Now()) {
		return nil, ErrSnoozeNotFuture
	}

	updated, err := report.UpdateActionItem(col, index, domain.ActionStatus(status), snoozeUntil)
	if err != nil {
		return nil, err
	}

	if err := u.reportRepo.Replace(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *reportUsecase) RateReport(id, rating, feedback string) (*domain.Report, error) {
	report, err := u.GetReportByID(id)
	if err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseRating(rating)
	if !ok {
		return nil, ErrInvalidRating
	}

	updated := report.WithRating(parsed, feedback)
	if err := u.reportRepo.Replace(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *reportUsecase) SetPublic(id string, public bool) (*domain.Report, error) {
	report, err := u.GetReportByID(id)
	if err != nil {
		return nil, err
	}

	updated := *report
	updated.IsPublic = public
	if err := u.reportRepo.Replace(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *reportUsecase) SearchReports(ctx context.Context, query string, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 10
	}

	if u.vectorSearch != nil {
		return u.semanticSearch(ctx, query, limit)
	}
	return u.keywordSearch(query, limit)
}

func (u *reportUsecase) semanticSearch(ctx context.Context, query string, limit int) ([]*domain.Report, error) {
	ids, err := u.vectorSearch.SearchReports(ctx, query, limit)
	if err != nil {
		log.Printf("[Search] Semantic search failed, falling back to keyword match: %v", err)
		return u.keywordSearch(query, limit)
	}

	reports := make([]*domain.Report, 0, len(ids))
	for _, id := range ids {
		report, err := u.reportRepo.FindByID(id)
		if err != nil || report == nil {
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (u *reportUsecase) keywordSearch(query string, limit int) ([]*domain.Report, error) {
	all, _, err := u.reportRepo.FindAll(1000, 0)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Report
	for _, report := range all {
		haystack := report.ThreadTitle + " " + report.Summary
		if fuzzy.Matches(query, haystack, fuzzyMatchThreshold) {
			matches = append(matches, report)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

func (u *reportUsecase) Digest(now time.Time) (map[domain.Bucket]int, error) {
	all, _, err := u.reportRepo.FindAll(1000, 0)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Bucket]int)
	for _, report := range all {
		counts[domain.Classify(report, now).Bucket]++
	}
	return counts, nil
}
