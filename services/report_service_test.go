package services_test

import (
	"context"
	"testing"
	"time"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type reportFixture struct {
	reportRepo     *mockReportRepo
	ingredientRepo *mockIngredientRepo
	publisher      *mockPublisher
	reports        services.ReportService
}

func newReportFixture() *reportFixture {
	logger, _ := zap.NewDevelopment()
	f := &reportFixture{
		reportRepo:     newMockReportRepo(),
		ingredientRepo: newMockIngredientRepo(),
		publisher:      &mockPublisher{},
	}
	cache := services.NewReportCache(nil, logger)
	f.reports = services.NewReportService(f.reportRepo, f.ingredientRepo, cache, f.publisher, logger)
	return f
}

func (f *reportFixture) seed(reportType models.ReportType, entityID uint, name string, ts time.Time, count int) {
	f.reportRepo.reports = append(f.reportRepo.reports, models.Report{
		ID:         f.reportRepo.nextID,
		ReportType: reportType,
		EntityID:   entityID,
		EntityName: name,
		Timestamp:  ts,
		Count:      count,
	})
	f.reportRepo.nextID++
}

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// --- Tests ---

func TestReportService_Record_AppendsAndPublishes(t *testing.T) {
	f := newReportFixture()

	err := f.reports.Record(context.Background(), models.ReportRecipeUsed, 1, "Bread", 1)
	assert.NoError(t, err)

	all, svcErr := f.reports.List(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, all, 1)
	assert.Equal(t, models.ReportRecipeUsed, all[0].ReportType)
	assert.Equal(t, time.UTC, all[0].Timestamp.Location())
	assert.Len(t, f.publisher.published, 1)
}

func TestReportService_Record_DefaultsCountToOne(t *testing.T) {
	f := newReportFixture()

	err := f.reports.Record(context.Background(), models.ReportIngredientUsed, 2, "Flour", 0)
	assert.NoError(t, err)

	all, _ := f.reports.List(context.Background())
	assert.Equal(t, 1, all[0].Count)
}

func TestReportService_Record_UnknownType(t *testing.T) {
	f := newReportFixture()

	err := f.reports.Record(context.Background(), models.ReportType("BOGUS"), 1, "x", 1)
	assert.Error(t, err)
}

func TestReportService_Create_Validation(t *testing.T) {
	f := newReportFixture()

	_, svcErr := f.reports.Create(context.Background(), &models.CreateReportRequest{
		ReportType: "BOGUS",
		EntityID:   1,
		EntityName: "x",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	_, svcErr = f.reports.Create(context.Background(), &models.CreateReportRequest{
		ReportType: models.ReportRecipeUsed,
		EntityID:   1,
		EntityName: "  ",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestReportService_ListByType_Filters(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 10, 0), 1)
	f.seed(models.ReportIngredientUsed, 2, "Flour", utc(2025, 8, 1, 11, 0), 2)

	reports, svcErr := f.reports.ListByType(context.Background(), models.ReportRecipeUsed)
	assert.Nil(t, svcErr)
	assert.Len(t, reports, 1)
	assert.Equal(t, "Bread", reports[0].EntityName)
}

func TestReportService_ListByRange_InclusiveBounds(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 0, 0), 1)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 2, 12, 0), 1)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 3, 0, 0), 1)

	start := utc(2025, 8, 1, 0, 0)
	end := utc(2025, 8, 3, 0, 0)
	reports, svcErr := f.reports.ListByRange(context.Background(), &start, &end)
	assert.Nil(t, svcErr)
	assert.Len(t, reports, 3)

	// open-ended lower bound
	reports, svcErr = f.reports.ListByRange(context.Background(), nil, &start)
	assert.Nil(t, svcErr)
	assert.Len(t, reports, 1)
}

func TestReportService_ListByRange_EndBeforeStart(t *testing.T) {
	f := newReportFixture()
	start := utc(2025, 8, 3, 0, 0)
	end := utc(2025, 8, 1, 0, 0)

	_, svcErr := f.reports.ListByRange(context.Background(), &start, &end)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestReportService_Summary_ZeroFilled(t *testing.T) {
	f := newReportFixture()

	summary, svcErr := f.reports.Summary(context.Background(), nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, summary, 5)
	for _, reportType := range models.AllReportTypes() {
		count, ok := summary[reportType]
		assert.True(t, ok)
		assert.Zero(t, count)
	}
}

func TestReportService_Summary_SumsCounts(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportIngredientUsed, 1, "Flour", utc(2025, 8, 1, 9, 0), 3)
	f.seed(models.ReportIngredientUsed, 2, "Milk", utc(2025, 8, 1, 10, 0), 2)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 11, 0), 1)

	summary, svcErr := f.reports.Summary(context.Background(), nil, nil)
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(5), summary[models.ReportIngredientUsed])
	assert.Equal(t, int64(1), summary[models.ReportRecipeUsed])
	assert.Equal(t, int64(0), summary[models.ReportRecipesCreated])
}

func TestReportService_Chart_DayBuckets(t *testing.T) {
	f := newReportFixture()
	// three events on the same day, one the next day
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 4, 0, 0), 1)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 4, 12, 30), 1)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 4, 23, 59), 2)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 5, 0, 0), 1)

	buckets, svcErr := f.reports.Chart(context.Background(), models.ReportRecipeUsed, models.GroupByDay, nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, buckets, 2)
	assert.Equal(t, "2025-08-04", buckets[0].Date)
	assert.Equal(t, int64(4), buckets[0].Count)
	assert.Equal(t, "2025-08-05", buckets[1].Date)
	assert.Equal(t, int64(1), buckets[1].Count)
}

func TestReportService_Chart_SparseAscending(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 10, 0), 1)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 10, 10, 0), 1)

	buckets, svcErr := f.reports.Chart(context.Background(), models.ReportRecipeUsed, models.GroupByDay, nil, nil)
	assert.Nil(t, svcErr)
	// the empty days in between are not emitted
	assert.Len(t, buckets, 2)
	assert.True(t, buckets[0].BucketStart.Before(buckets[1].BucketStart))
}

func TestReportService_Chart_WeekBucketsStartMonday(t *testing.T) {
	f := newReportFixture()
	// 2025-08-04 is a Monday; 2025-08-10 the following Sunday
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 4, 8, 0), 1)
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 10, 23, 0), 1)
	// 2025-08-11 starts the next week
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 11, 0, 0), 1)

	buckets, svcErr := f.reports.Chart(context.Background(), models.ReportRecipeUsed, models.GroupByWeek, nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, buckets, 2)
	assert.Equal(t, utc(2025, 8, 4, 0, 0), buckets[0].BucketStart)
	assert.Equal(t, "2025-W32", buckets[0].Date)
	assert.Equal(t, int64(2), buckets[0].Count)
	assert.Equal(t, utc(2025, 8, 11, 0, 0), buckets[1].BucketStart)
}

func TestReportService_Chart_MonthBuckets(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportIngredientUsed, 1, "Flour", utc(2025, 7, 31, 23, 59), 2)
	f.seed(models.ReportIngredientUsed, 1, "Flour", utc(2025, 8, 1, 0, 0), 3)

	buckets, svcErr := f.reports.Chart(context.Background(), models.ReportIngredientUsed, models.GroupByMonth, nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, buckets, 2)
	assert.Equal(t, "2025-07", buckets[0].Date)
	assert.Equal(t, int64(2), buckets[0].Count)
	assert.Equal(t, "2025-08", buckets[1].Date)
	assert.Equal(t, int64(3), buckets[1].Count)
}

func TestReportService_Chart_InvalidGroupBy(t *testing.T) {
	f := newReportFixture()

	_, svcErr := f.reports.Chart(context.Background(), models.ReportRecipeUsed, "hour", nil, nil)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestReportService_TopEntities_RanksAndTruncates(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 9, 0), 5)
	f.seed(models.ReportRecipeUsed, 2, "Cake", utc(2025, 8, 1, 10, 0), 3)
	f.seed(models.ReportRecipeUsed, 3, "Pie", utc(2025, 8, 1, 11, 0), 5)
	f.seed(models.ReportRecipeUsed, 2, "Cake", utc(2025, 8, 1, 12, 0), 1)

	top, svcErr := f.reports.TopEntities(context.Background(), models.ReportRecipeUsed, 2, nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, top, 2)
	// Bread and Pie both at 5: tie breaks toward the lower id
	assert.Equal(t, uint(1), top[0].EntityID)
	assert.Equal(t, uint(3), top[1].EntityID)
	assert.Equal(t, int64(5), top[0].Count)
}

func TestReportService_TopEntities_UsesLatestName(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 9, 0), 1)
	f.seed(models.ReportRecipeUsed, 1, "Sourdough", utc(2025, 8, 2, 9, 0), 1)

	top, svcErr := f.reports.TopEntities(context.Background(), models.ReportRecipeUsed, 10, nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, top, 1)
	assert.Equal(t, "Sourdough", top[0].EntityName)
	assert.Equal(t, int64(2), top[0].Count)
}

func TestReportService_TopEntities_InvalidLimit(t *testing.T) {
	f := newReportFixture()

	_, svcErr := f.reports.TopEntities(context.Background(), models.ReportRecipeUsed, 0, nil, nil)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestReportService_Dashboard(t *testing.T) {
	f := newReportFixture()
	low := 5.0
	_ = f.ingredientRepo.Create(context.Background(), &models.Ingredient{
		ProductName:     "Flour",
		QuantityDetails: models.QuantityDetails{CurrentQuantity: 2, AlertLowQuantity: &low},
	})
	_ = f.ingredientRepo.Create(context.Background(), &models.Ingredient{
		ProductName:     "Sugar",
		QuantityDetails: models.QuantityDetails{CurrentQuantity: 20, AlertLowQuantity: &low},
	})
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 9, 0), 4)
	f.seed(models.ReportIngredientUsed, 1, "Flour", utc(2025, 8, 1, 9, 0), 8)
	f.seed(models.ReportRecipesCreated, 1, "Bread", utc(2025, 8, 1, 8, 0), 1)
	f.seed(models.ReportIngredientsCreated, 1, "Flour", utc(2025, 8, 1, 7, 0), 2)

	data, svcErr := f.reports.Dashboard(context.Background(), nil, nil)
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(4), data.Summary[models.ReportRecipeUsed])
	assert.Len(t, data.TopRecipes, 1)
	assert.Equal(t, "Bread", data.TopRecipes[0].EntityName)
	assert.Len(t, data.TopIngredients, 1)
	assert.Equal(t, int64(1), data.LowStockCount)
	assert.Equal(t, int64(1), data.RecipesCreatedCount)
	assert.Equal(t, int64(2), data.IngredientsCreatedCount)
}

func TestReportService_ClearAll(t *testing.T) {
	f := newReportFixture()
	f.seed(models.ReportRecipeUsed, 1, "Bread", utc(2025, 8, 1, 9, 0), 1)

	assert.Nil(t, f.reports.ClearAll(context.Background()))

	all, svcErr := f.reports.List(context.Background())
	assert.Nil(t, svcErr)
	assert.Empty(t, all)

	// summary is still zero-filled after a wipe
	summary, svcErr := f.reports.Summary(context.Background(), nil, nil)
	assert.Nil(t, svcErr)
	assert.Len(t, summary, 5)
}
