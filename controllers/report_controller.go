package controllers

import (
	"net/http"
	"strconv"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// ReportController handles HTTP requests for the usage log and its
// aggregations.
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController.
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// CreateReport handles POST /api/reports.
func (rc *ReportController) CreateReport(ctx *gin.Context) {
	var req models.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	report, svcErr := rc.reportService.Create(ctx.Request.Context(), &req)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"report": report})
}

// ListReports handles GET /api/reports.
func (rc *ReportController) ListReports(ctx *gin.Context) {
	reports, svcErr := rc.reportService.List(ctx.Request.Context())
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ListReportsByType handles GET /api/reports/type/:reportType.
func (rc *ReportController) ListReportsByType(ctx *gin.Context) {
	reportType := models.ReportType(ctx.Param("reportType"))

	reports, svcErr := rc.reportService.ListByType(ctx.Request.Context(), reportType)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ListReportsByRange handles GET /api/reports/range?start=...&end=...
// Bounds are optional RFC 3339 timestamps, inclusive on both ends.
func (rc *ReportController) ListReportsByRange(ctx *gin.Context) {
	start, ok := parseTimeQuery(ctx, "start")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(ctx, "end")
	if !ok {
		return
	}

	reports, svcErr := rc.reportService.ListByRange(ctx.Request.Context(), start, end)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reports": reports})
}

// GetSummary handles GET /api/reports/summary?start=...&end=...
func (rc *ReportController) GetSummary(ctx *gin.Context) {
	start, ok := parseTimeQuery(ctx, "start")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(ctx, "end")
	if !ok {
		return
	}

	summary, svcErr := rc.reportService.Summary(ctx.Request.Context(), start, end)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetChart handles GET /api/reports/chart?type=...&groupBy=...&start=...&end=...
func (rc *ReportController) GetChart(ctx *gin.Context) {
	reportType := models.ReportType(ctx.Query("type"))
	groupBy := ctx.DefaultQuery("groupBy", models.GroupByDay)
	start, ok := parseTimeQuery(ctx, "start")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(ctx, "end")
	if !ok {
		return
	}

	buckets, svcErr := rc.reportService.Chart(ctx.Request.Context(), reportType, groupBy, start, end)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"chart": buckets})
}

// GetTopEntities handles GET /api/reports/top?type=...&limit=...&start=...&end=...
func (rc *ReportController) GetTopEntities(ctx *gin.Context) {
	reportType := models.ReportType(ctx.Query("type"))
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	start, ok := parseTimeQuery(ctx, "start")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(ctx, "end")
	if !ok {
		return
	}

	top, svcErr := rc.reportService.TopEntities(ctx.Request.Context(), reportType, limit, start, end)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"top": top})
}

// GetDashboard handles GET /api/reports/dashboard?start=...&end=...
func (rc *ReportController) GetDashboard(ctx *gin.Context) {
	start, ok := parseTimeQuery(ctx, "start")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(ctx, "end")
	if !ok {
		return
	}

	data, svcErr := rc.reportService.Dashboard(ctx.Request.Context(), start, end)
	if svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, data)
}

// ClearReports handles DELETE /api/reports/clear (admin only).
func (rc *ReportController) ClearReports(ctx *gin.Context) {
	if svcErr := rc.reportService.ClearAll(ctx.Request.Context()); svcErr != nil {
		renderServiceError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Report log cleared"})
}
