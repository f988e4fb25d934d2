package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"emailsmart-backend/internal/report/domain"
	"emailsmart-backend/internal/report/dto"
	"emailsmart-backend/internal/report/usecase"
	"emailsmart-backend/pkg/gemini"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

// AnalyzeThread runs the full extraction pipeline over a raw thread
// POST /api/reports/analyze
// An X-Gemini-Key header overrides the configured credential for this call.
func (h *ReportHandler) AnalyzeThread(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportUsecase.AnalyzeThread(c.Request.Context(), req.Thread, c.GetHeader("X-Gemini-Key"))
	if err != nil {
		h.respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewReportResponse(report, time.Now()))
}

// respondAnalysisError maps the pipeline error taxonomy to HTTP responses.
// Validation failures and each extraction failure kind get distinct,
// actionable messages so the UI can drive the right retry behavior.
func (h *ReportHandler) respondAnalysisError(c *gin.Context, err error) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  validationErr.Error(),
			"reason": validationErr.Reason,
		})
		return
	}

	if extractErr, ok := gemini.AsExtractError(err); ok {
		status := http.StatusBadGateway
		switch extractErr.Kind {
		case gemini.KindRateLimited, gemini.KindQuotaExhausted:
			status = http.StatusTooManyRequests
		case gemini.KindCredentialMismatch:
			status = http.StatusUnauthorized
		case gemini.KindSafetyBlocked, gemini.KindContextOverflow:
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": extractErr.UserMessage(),
			"kind":  extractErr.Kind,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GetReports returns stored reports, optionally filtered by derived bucket
// GET /api/reports?bucket=URGENT&limit=50&offset=0
func (h *ReportHandler) GetReports(c *gin.Context) {
	bucket := c.Query("bucket")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reports, total, err := h.reportUsecase.ListReports(bucket, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": dto.NewReportListResponse(reports, time.Now()),
		"total":   total,
	})
}

// GetReportByID returns a single report with its current classification
// GET /api/reports/:id
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	report, err := h.reportUsecase.GetReportByID(c.Param("id"))
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReportResponse(report, time.Now()))
}

// GetSharedReport returns a publicly shared report, raw thread omitted
// GET /api/shared/:id
func (h *ReportHandler) GetSharedReport(c *gin.Context) {
	report, err := h.reportUsecase.GetSharedReport(c.Param("id"))
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReportResponse(report, time.Now()))
}

// DeleteReport removes a report as a whole unit
// DELETE /api/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.reportUsecase.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		h.respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UpdateActionItem applies a lifecycle transition to one action item
// PATCH /api/reports/:id/action-items
func (h *ReportHandler) UpdateActionItem(c *gin.Context) {
	var req dto.ActionItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportUsecase.UpdateActionItem(c.Param("id"), req.Collection, req.Index, req.Status, req.SnoozedUntil)
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReportResponse(report, time.Now()))
}

// RateReport records the user's verdict on a generated report
// POST /api/reports/:id/rating
func (h *ReportHandler) RateReport(c *gin.Context) {
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportUsecase.RateReport(c.Param("id"), req.Rating, req.FeedbackText)
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReportResponse(report, time.Now()))
}

// ShareReport toggles the report's external-sharing flag
// POST /api/reports/:id/share
func (h *ReportHandler) ShareReport(c *gin.Context) {
	var req dto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportUsecase.SetPublic(c.Param("id"), req.IsPublic)
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReportResponse(report, time.Now()))
}

// SearchReports finds reports by semantic or keyword match
// GET /api/reports/search?q=budget&limit=10
func (h *ReportHandler) SearchReports(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reports, err := h.reportUsecase.SearchReports(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": dto.NewReportListResponse(reports, time.Now()),
	})
}

// GetDigest returns report counts per classification bucket
// GET /api/reports/digest
func (h *ReportHandler) GetDigest(c *gin.Context) {
	counts, err := h.reportUsecase.Digest(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"buckets": counts})
}

// respondReportError maps lookup and lifecycle errors to HTTP responses.
// Contract violations (bad collection, index, status) map to 400: they mean
// the caller sent something impossible, not that the system failed.
func (h *ReportHandler) respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, domain.ErrInvalidCollection),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidRating),
		errors.Is(err, usecase.ErrSnoozeNotFuture):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
