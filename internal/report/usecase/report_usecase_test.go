package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"emailsmart-backend/internal/report/domain"
	"emailsmart-backend/pkg/ai"
	"emailsmart-backend/pkg/config"
	"emailsmart-backend/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validThread = "From: sarah@company.com\nTo: team@company.com\nSubject: Q4 Campaign Budget\n\nWe need to finalize the Q4 budget by Friday."

// fakeReportRepo is an in-memory ReportRepository
type fakeReportRepo struct {
	reports map[string]*domain.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*domain.Report)}
}

func (r *fakeReportRepo) Create(report *domain.Report) error {
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) FindByID(id string) (*domain.Report, error) {
	return r.reports[id], nil
}

func (r *fakeReportRepo) FindAll(limit, offset int) ([]*domain.Report, int64, error) {
	all := make([]*domain.Report, 0, len(r.reports))
	for _, report := range r.reports {
		all = append(all, report)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.Report{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeReportRepo) Replace(report *domain.Report) error {
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) Delete(id string) error {
	delete(r.reports, id)
	return nil
}

// fakeExtractor returns a canned payload or error
type fakeExtractor struct {
	payload *ai.ReportPayload
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractReport(ctx context.Context, rawThread string) (*ai.ReportPayload, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func newTestUsecase(t *testing.T, extractor *fakeExtractor) (*reportUsecase, *fakeReportRepo) {
	t.Helper()
	repo := newFakeReportRepo()
	cfg := &config.Config{GeminiApiKey: "test-key", AIProvider: "gemini"}
	uc := NewReportUsecase(repo, cfg).(*reportUsecase)
	uc.SetExtractorFactory(func(ai.Config) (ai.ThreadExtractor, error) {
		return extractor, nil
	})
	return uc, repo
}

func minimalPayload() *ai.ReportPayload {
	return &ai.ReportPayload{
		ThreadTitle:     "Q4 Campaign Budget",
		Summary:         "Team is negotiating the Q4 campaign budget.",
		Status:          "PENDING_DECISION",
		KeyDecision:     "Budget amount not yet final",
		ConfidenceScore: 85,
	}
}

func TestAnalyzeThreadProducesTotalReport(t *testing.T) {
	extractor := &fakeExtractor{payload: minimalPayload()}
	uc, repo := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	// Identity assigned by the pipeline
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, validThread, report.RawThread)

	// Collections are always present, never nil
	assert.NotNil(t, report.YourActionItems)
	assert.NotNil(t, report.OthersActionItems)
	assert.NotNil(t, report.Stakeholders)
	assert.NotNil(t, report.Timeline)
	assert.NotNil(t, report.KeyQuotes)
	assert.NotNil(t, report.DecisionReasoning)
	assert.NotNil(t, report.UnresolvedQuestions)
	assert.NotNil(t, report.ExtractionAccuracy)

	// Persisted
	stored, err := repo.FindByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, report, stored)
}

func TestAnalyzeThreadClampsNumericFields(t *testing.T) {
	payload := minimalPayload()
	payload.ConfidenceScore = 150
	payload.EmailCount = -3
	payload.ParticipantCount = 4
	extractor := &fakeExtractor{payload: payload}
	uc, _ := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	assert.Equal(t, 100, report.ConfidenceScore)
	assert.Equal(t, 0, report.EmailCount)
	assert.Equal(t, 4, report.ParticipantCount)

	payload.ConfidenceScore = -20
	report, err = uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)
	assert.Equal(t, 0, report.ConfidenceScore)
}

func TestAnalyzeThreadCoercesEnumsAndOwnership(t *testing.T) {
	payload := minimalPayload()
	payload.Status = "SOMETHING_NEW"
	payload.YourActionItems = []ai.ActionItemPayload{
		{Task: "draft reply", Priority: "MEDIUM", Status: "ACTIVE", Owner: "should-be-dropped"},
		{Task: "", Priority: "HIGH", Status: "PENDING"}, // empty task dropped
	}
	payload.OthersActionItems = []ai.ActionItemPayload{
		{Task: "approve", Priority: "URGENT", Status: "IN_PROGRESS", Owner: "Dave"},
	}
	payload.Stakeholders = []ai.StakeholderPayload{
		{Name: "Sarah", Role: "PM", InvolvementLevel: "SUPREME"},
		{Name: "", Role: "ghost", InvolvementLevel: "LOW"}, // nameless dropped
	}
	extractor := &fakeExtractor{payload: payload}
	uc, _ := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFYI, report.Status)

	require.Len(t, report.YourActionItems, 1)
	assert.Equal(t, domain.PriorityNormal, report.YourActionItems[0].Priority)
	assert.Equal(t, domain.ActionStatusPending, report.YourActionItems[0].Status)
	// Ownership is structural: the personal collection carries no owner field
	assert.Empty(t, report.YourActionItems[0].Owner)

	require.Len(t, report.OthersActionItems, 1)
	assert.Equal(t, "Dave", report.OthersActionItems[0].Owner)
	assert.Equal(t, domain.ActionStatusInProgress, report.OthersActionItems[0].Status)

	require.Len(t, report.Stakeholders, 1)
	assert.Equal(t, domain.InvolvementMedium, report.Stakeholders[0].InvolvementLevel)
}

func TestAnalyzeThreadRejectsInvalidInputBeforeExtraction(t *testing.T) {
	extractor := &fakeExtractor{payload: minimalPayload()}
	uc, repo := newTestUsecase(t, extractor)

	_, err := uc.AnalyzeThread(context.Background(), "hi", "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ReasonTooShort, validationErr.Reason)

	// The extractor must never have been invoked
	assert.Zero(t, extractor.calls)
	assert.Empty(t, repo.reports)
}

func TestAnalyzeThreadSurfacesClassifiedErrors(t *testing.T) {
	extractErr := &gemini.ExtractError{Kind: gemini.KindQuotaExhausted, Message: "quota exceeded"}
	extractor := &fakeExtractor{err: extractErr}
	uc, repo := newTestUsecase(t, extractor)

	_, err := uc.AnalyzeThread(context.Background(), validThread, "")
	got, ok := gemini.AsExtractError(err)
	require.True(t, ok)
	assert.Equal(t, gemini.KindQuotaExhausted, got.Kind)

	// One call, no retries, nothing persisted
	assert.Equal(t, 1, extractor.calls)
	assert.Empty(t, repo.reports)
}

func TestAnalyzeThreadUsesCredentialOverride(t *testing.T) {
	var seenKey string
	repo := newFakeReportRepo()
	cfg := &config.Config{GeminiApiKey: "configured-key", AIProvider: "gemini"}
	uc := NewReportUsecase(repo, cfg).(*reportUsecase)
	uc.SetExtractorFactory(func(c ai.Config) (ai.ThreadExtractor, error) {
		seenKey = c.GeminiAPIKey
		return &fakeExtractor{payload: minimalPayload()}, nil
	})

	_, err := uc.AnalyzeThread(context.Background(), validThread, "override-key")
	require.NoError(t, err)
	assert.Equal(t, "override-key", seenKey)

	_, err = uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)
	assert.Equal(t, "configured-key", seenKey)
}

func TestUpdateActionItemReplacesStoredReport(t *testing.T) {
	payload := minimalPayload()
	payload.YourActionItems = []ai.ActionItemPayload{
		{Task: "follow up", Priority: "NORMAL", Status: "PENDING"},
	}
	extractor := &fakeExtractor{payload: payload}
	uc, repo := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	updated, err := uc.UpdateActionItem(report.ID, "yours", 0, "COMPLETED", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionStatusCompleted, updated.YourActionItems[0].Status)

	stored, err := repo.FindByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionStatusCompleted, stored.YourActionItems[0].Status)
}

func TestUpdateActionItemRejectsPastSnooze(t *testing.T) {
	payload := minimalPayload()
	payload.YourActionItems = []ai.ActionItemPayload{
		{Task: "follow up", Priority: "NORMAL", Status: "PENDING"},
	}
	extractor := &fakeExtractor{payload: payload}
	uc, _ := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = uc.UpdateActionItem(report.ID, "yours", 0, "PENDING", &past)
	assert.ErrorIs(t, err, ErrSnoozeNotFuture)
}

func TestUpdateActionItemUnknownReport(t *testing.T) {
	uc, _ := newTestUsecase(t, &fakeExtractor{payload: minimalPayload()})

	_, err := uc.UpdateActionItem("missing", "yours", 0, "COMPLETED", nil)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestRateReport(t *testing.T) {
	extractor := &fakeExtractor{payload: minimalPayload()}
	uc, repo := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	updated, err := uc.RateReport(report.ID, "middle", "mostly right")
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, domain.RatingMiddle, *updated.Rating)
	assert.Equal(t, "mostly right", updated.FeedbackText)

	stored, _ := repo.FindByID(report.ID)
	require.NotNil(t, stored.Rating)

	_, err = uc.RateReport(report.ID, "sideways", "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestSharedReportHidesRawThread(t *testing.T) {
	extractor := &fakeExtractor{payload: minimalPayload()}
	uc, _ := newTestUsecase(t, extractor)

	report, err := uc.AnalyzeThread(context.Background(), validThread, "")
	require.NoError(t, err)

	// Not shared yet
	_, err = uc.GetSharedReport(report.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = uc.SetPublic(report.ID, true)
	require.NoError(t, err)

	shared, err := uc.GetSharedReport(report.ID)
	require.NoError(t, err)
	assert.True(t, shared.IsPublic)
	assert.Empty(t, shared.RawThread)

	// The stored report still carries the raw thread
	full, err := uc.GetReportByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, validThread, full.RawThread)
}

func TestListReportsBucketFilter(t *testing.T) {
	uc, repo := newTestUsecase(t, &fakeExtractor{payload: minimalPayload()})

	repo.Create(&domain.Report{ID: "info", CreatedAt: time.Now()})
	repo.Create(&domain.Report{
		ID:        "urgent",
		CreatedAt: time.Now().Add(time.Second),
		OthersActionItems: []domain.ActionItem{
			{Task: "approve", Priority: domain.PriorityHigh, Status: domain.ActionStatusPending},
		},
	})

	urgent, total, err := uc.ListReports("URGENT", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, urgent, 1)
	assert.Equal(t, "urgent", urgent[0].ID)

	all, total, err := uc.ListReports("", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestKeywordSearchFallback(t *testing.T) {
	uc, repo := newTestUsecase(t, &fakeExtractor{payload: minimalPayload()})

	repo.Create(&domain.Report{ID: "a", ThreadTitle: "Q4 Campaign Budget", Summary: "budget approval thread", CreatedAt: time.Now()})
	repo.Create(&domain.Report{ID: "b", ThreadTitle: "Office party", Summary: "cake logistics", CreatedAt: time.Now()})

	results, err := uc.SearchReports(context.Background(), "budget", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)
}

func TestDigestCountsBuckets(t *testing.T) {
	uc, repo := newTestUsecase(t, &fakeExtractor{payload: minimalPayload()})

	repo.Create(&domain.Report{ID: "info", CreatedAt: time.Now()})
	repo.Create(&domain.Report{
		ID:        "resolved",
		CreatedAt: time.Now(),
		YourActionItems: []domain.ActionItem{
			{Task: "done deal", Status: domain.ActionStatusCompleted},
		},
	})

	counts, err := uc.Digest(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.BucketInfo])
	assert.Equal(t, 1, counts[domain.BucketResolved])
}
