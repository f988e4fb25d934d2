package api

import (
	"net/http"

	reportDelivery "emailsmart-backend/internal/report/delivery"
	reportUsecase "emailsmart-backend/internal/report/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, reportUc reportUsecase.ReportUsecase) {
	reportHandler := reportDelivery.NewReportHandler(reportUc)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Report routes
		reports := api.Group("/reports")
		{
			reports.POST("/analyze", reportHandler.AnalyzeThread)
			reports.GET("", reportHandler.GetReports)
			reports.GET("/search", reportHandler.SearchReports)
			reports.GET("/digest", reportHandler.GetDigest)
			reports.GET("/:id", reportHandler.GetReportByID)
			reports.DELETE("/:id", reportHandler.DeleteReport)
			reports.PATCH("/:id/action-items", reportHandler.UpdateActionItem)
			reports.POST("/:id/rating", reportHandler.RateReport)
			reports.POST("/:id/share", reportHandler.ShareReport)
		}

		// Public share view
		api.GET("/shared/:id", reportHandler.GetSharedReport)
	}
}
