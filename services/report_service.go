package services

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"time"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/repository"

	"go.uber.org/zap"
)

// ReportService owns the append-only usage log and every aggregation over
// it. It also implements Recorder for the ingredient and recipe services.
type ReportService interface {
	Recorder
	Create(ctx context.Context, req *models.CreateReportRequest) (*models.Report, *ServiceError)
	List(ctx context.Context) ([]models.Report, *ServiceError)
	ListByType(ctx context.Context, reportType models.ReportType) ([]models.Report, *ServiceError)
	ListByRange(ctx context.Context, start, end *time.Time) ([]models.Report, *ServiceError)
	Summary(ctx context.Context, start, end *time.Time) (map[models.ReportType]int64, *ServiceError)
	Chart(ctx context.Context, reportType models.ReportType, groupBy string, start, end *time.Time) ([]models.ChartBucket, *ServiceError)
	TopEntities(ctx context.Context, reportType models.ReportType, limit int, start, end *time.Time) ([]models.TopEntity, *ServiceError)
	Dashboard(ctx context.Context, start, end *time.Time) (*models.DashboardData, *ServiceError)
	ClearAll(ctx context.Context) *ServiceError
}

type reportServiceImpl struct {
	repo           repository.ReportRepository
	ingredientRepo repository.IngredientRepository
	cache          *ReportCache
	publisher      EventPublisher
	logger         *zap.Logger
}

// NewReportService creates a new ReportService. publisher may be nil when
// event fan-out is not configured.
func NewReportService(
	repo repository.ReportRepository,
	ingredientRepo repository.IngredientRepository,
	cache *ReportCache,
	publisher EventPublisher,
	logger *zap.Logger,
) ReportService {
	return &reportServiceImpl{
		repo:           repo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
		publisher:      publisher,
		logger:         logger,
	}
}

// Record appends one event to the log. The event is durable before Record
// returns; cache invalidation and fan-out happen after the write.
func (s *reportServiceImpl) Record(ctx context.Context, reportType models.ReportType, entityID uint, entityName string, count int) error {
	if !reportType.Valid() {
		return fmt.Errorf("unknown report type %q", reportType)
	}
	if strings.TrimSpace(entityName) == "" {
		return fmt.Errorf("entity name must not be empty")
	}
	if count < 1 {
		count = 1
	}

	report := &models.Report{
		ReportType: reportType,
		EntityID:   entityID,
		EntityName: entityName,
		Timestamp:  time.Now().UTC(),
		Count:      count,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, report); err != nil {
			s.logger.Warn("Failed to publish report event",
				zap.String("report_type", string(reportType)),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Create records an event from an API request.
func (s *reportServiceImpl) Create(ctx context.Context, req *models.CreateReportRequest) (*models.Report, *ServiceError) {
	if !req.ReportType.Valid() {
		return nil, validationError(fmt.Sprintf("unknown report type %q", req.ReportType))
	}
	if strings.TrimSpace(req.EntityName) == "" {
		return nil, validationError("entityName must not be empty")
	}
	count := req.Count
	if count < 1 {
		count = 1
	}

	report := &models.Report{
		ReportType: req.ReportType,
		EntityID:   req.EntityID,
		EntityName: req.EntityName,
		Timestamp:  time.Now().UTC(),
		Count:      count,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to record report", zap.Error(err))
		return nil, storageFaultError("Failed to record report")
	}

	s.cache.Invalidate(ctx)
	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, report); err != nil {
			s.logger.Warn("Failed to publish report event", zap.Error(err))
		}
	}
	return report, nil
}

func (s *reportServiceImpl) List(ctx context.Context) ([]models.Report, *ServiceError) {
	reports, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list reports", zap.Error(err))
		return nil, storageFaultError("Failed to list reports")
	}
	return reports, nil
}

func (s *reportServiceImpl) ListByType(ctx context.Context, reportType models.ReportType) ([]models.Report, *ServiceError) {
	if !reportType.Valid() {
		return nil, validationError(fmt.Sprintf("unknown report type %q", reportType))
	}
	reports, err := s.repo.FindByType(ctx, reportType)
	if err != nil {
		s.logger.Error("Failed to list reports", zap.String("report_type", string(reportType)), zap.Error(err))
		return nil, storageFaultError("Failed to list reports")
	}
	return reports, nil
}

func (s *reportServiceImpl) ListByRange(ctx context.Context, start, end *time.Time) ([]models.Report, *ServiceError) {
	if svcErr := validateRange(start, end); svcErr != nil {
		return nil, svcErr
	}
	reports, err := s.repo.FindByRange(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to list reports by range", zap.Error(err))
		return nil, storageFaultError("Failed to list reports")
	}
	return reports, nil
}

// Summary returns total counts per report type within the window. Every
// known type is present in the result, zero-filled when no events match.
func (s *reportServiceImpl) Summary(ctx context.Context, start, end *time.Time) (map[models.ReportType]int64, *ServiceError) {
	if svcErr := validateRange(start, end); svcErr != nil {
		return nil, svcErr
	}
	reports, err := s.repo.FindByRange(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to load reports for summary", zap.Error(err))
		return nil, storageFaultError("Failed to build summary")
	}

	summary := make(map[models.ReportType]int64, 5)
	for _, t := range models.AllReportTypes() {
		summary[t] = 0
	}
	for _, r := range reports {
		summary[r.ReportType] += int64(r.Count)
	}
	return summary, nil
}

// Chart returns the trend series for one report type at the given
// granularity. Buckets are sparse and ascending; empty buckets between
// events are omitted.
func (s *reportServiceImpl) Chart(ctx context.Context, reportType models.ReportType, groupBy string, start, end *time.Time) ([]models.ChartBucket, *ServiceError) {
	if !reportType.Valid() {
		return nil, validationError(fmt.Sprintf("unknown report type %q", reportType))
	}
	if !models.ValidGroupBy(groupBy) {
		return nil, validationError(fmt.Sprintf("groupBy must be one of %q, %q, %q", models.GroupByDay, models.GroupByWeek, models.GroupByMonth))
	}
	if svcErr := validateRange(start, end); svcErr != nil {
		return nil, svcErr
	}

	reports, err := s.repo.FindByTypeAndRange(ctx, reportType, start, end)
	if err != nil {
		s.logger.Error("Failed to load reports for chart", zap.Error(err))
		return nil, storageFaultError("Failed to build chart")
	}
	return slices.Collect(chartSeries(reports, groupBy)), nil
}

// TopEntities ranks entities by their summed count within the window,
// highest first; ties break toward the lower entity id. The name shown is
// the most recently recorded one for that entity in the window.
func (s *reportServiceImpl) TopEntities(ctx context.Context, reportType models.ReportType, limit int, start, end *time.Time) ([]models.TopEntity, *ServiceError) {
	if !reportType.Valid() {
		return nil, validationError(fmt.Sprintf("unknown report type %q", reportType))
	}
	if limit < 1 {
		return nil, validationError("limit must be at least 1")
	}
	if svcErr := validateRange(start, end); svcErr != nil {
		return nil, svcErr
	}

	reports, err := s.repo.FindByTypeAndRange(ctx, reportType, start, end)
	if err != nil {
		s.logger.Error("Failed to load reports for ranking", zap.Error(err))
		return nil, storageFaultError("Failed to build ranking")
	}
	return topEntities(reports, limit), nil
}

// Dashboard assembles the composite dashboard view over the given window.
// The unbounded view is served from cache when a fresh entry exists for the
// current log version; windowed views are always computed.
func (s *reportServiceImpl) Dashboard(ctx context.Context, start, end *time.Time) (*models.DashboardData, *ServiceError) {
	unbounded := start == nil && end == nil
	if unbounded {
		if cached, ok := s.cache.GetDashboard(ctx); ok {
			return cached, nil
		}
	}

	summary, svcErr := s.Summary(ctx, start, end)
	if svcErr != nil {
		return nil, svcErr
	}
	topRecipes, svcErr := s.TopEntities(ctx, models.ReportRecipeUsed, 10, start, end)
	if svcErr != nil {
		return nil, svcErr
	}
	topIngredients, svcErr := s.TopEntities(ctx, models.ReportIngredientUsed, 10, start, end)
	if svcErr != nil {
		return nil, svcErr
	}

	ingredients, err := s.ingredientRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load ingredients for dashboard", zap.Error(err))
		return nil, storageFaultError("Failed to build dashboard")
	}
	var lowStock int64
	for _, ing := range ingredients {
		threshold := ing.QuantityDetails.AlertLowQuantity
		if threshold != nil && ing.QuantityDetails.CurrentQuantity <= *threshold {
			lowStock++
		}
	}

	data := &models.DashboardData{
		Summary:                 summary,
		TopRecipes:              topRecipes,
		TopIngredients:          topIngredients,
		LowStockCount:           lowStock,
		RecipesCreatedCount:     summary[models.ReportRecipesCreated],
		IngredientsCreatedCount: summary[models.ReportIngredientsCreated],
	}
	if unbounded {
		s.cache.SetDashboard(ctx, data)
	}
	return data, nil
}

// ClearAll wipes the usage log.
func (s *reportServiceImpl) ClearAll(ctx context.Context) *ServiceError {
	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.Error("Failed to clear reports", zap.Error(err))
		return storageFaultError("Failed to clear reports")
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("Report log cleared")
	return nil
}

func validateRange(start, end *time.Time) *ServiceError {
	if start != nil && end != nil && end.Before(*start) {
		return validationError("end must not be before start")
	}
	return nil
}

// bucketStart truncates ts to the start of its calendar bucket, in UTC.
// Weeks start on Monday.
func bucketStart(ts time.Time, groupBy string) time.Time {
	ts = ts.UTC()
	switch groupBy {
	case models.GroupByWeek:
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	case models.GroupByMonth:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func bucketLabel(start time.Time, groupBy string) string {
	switch groupBy {
	case models.GroupByWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case models.GroupByMonth:
		return start.Format("2006-01")
	default:
		return start.Format("2006-01-02")
	}
}

// chartSeries lazily folds timestamp-ordered reports into sparse,
// ascending calendar buckets. The sequence can be iterated more than once.
func chartSeries(reports []models.Report, groupBy string) iter.Seq[models.ChartBucket] {
	return func(yield func(models.ChartBucket) bool) {
		var current models.ChartBucket
		open := false
		for _, r := range reports {
			start := bucketStart(r.Timestamp, groupBy)
			if open && start.Equal(current.BucketStart) {
				current.Count += int64(r.Count)
				continue
			}
			if open && !yield(current) {
				return
			}
			current = models.ChartBucket{
				BucketStart: start,
				Date:        bucketLabel(start, groupBy),
				Count:       int64(r.Count),
			}
			open = true
		}
		if open {
			yield(current)
		}
	}
}

// topEntities group-sums reports per entity and returns the top n rows.
func topEntities(reports []models.Report, n int) []models.TopEntity {
	totals := make(map[uint]*models.TopEntity)
	for _, r := range reports {
		row, ok := totals[r.EntityID]
		if !ok {
			row = &models.TopEntity{EntityID: r.EntityID}
			totals[r.EntityID] = row
		}
		row.Count += int64(r.Count)
		// reports arrive timestamp-ascending, so the last name wins
		row.EntityName = r.EntityName
	}

	ranked := make([]models.TopEntity, 0, len(totals))
	for _, row := range totals {
		ranked = append(ranked, *row)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].EntityID < ranked[j].EntityID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
