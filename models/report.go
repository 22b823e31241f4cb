package models

import (
	"time"
)

// ReportType enumerates the countable occurrences the service records.
type ReportType string

const (
	ReportRecipeUsed               ReportType = "RECIPE_USED"
	ReportIngredientUsed           ReportType = "INGREDIENT_USED"
	ReportTimesIngredientReachedLow ReportType = "TIMES_INGREDIENT_REACHED_LOW"
	ReportRecipesCreated           ReportType = "RECIPES_CREATED"
	ReportIngredientsCreated       ReportType = "INGREDIENTS_CREATED"
)

// AllReportTypes returns every report type, in a fixed order.
func AllReportTypes() []ReportType {
	return []ReportType{
		ReportRecipeUsed,
		ReportIngredientUsed,
		ReportTimesIngredientReachedLow,
		ReportRecipesCreated,
		ReportIngredientsCreated,
	}
}

// Valid reports whether t is one of the known report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportRecipeUsed, ReportIngredientUsed, ReportTimesIngredientReachedLow,
		ReportRecipesCreated, ReportIngredientsCreated:
		return true
	}
	return false
}

// Chart grouping granularities. Buckets are calendar-aligned in UTC; weeks
// start on Monday.
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// ValidGroupBy reports whether g is a supported chart granularity.
func ValidGroupBy(g string) bool {
	return g == GroupByDay || g == GroupByWeek || g == GroupByMonth
}

// Report is one append-only usage event. EntityName is a snapshot of the
// entity's name at event time, so renames and deletions do not corrupt
// history. Count lets a single record represent a batched occurrence.
type Report struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportType ReportType `gorm:"column:report_type;type:varchar(64);not null;index" json:"reportType"`
	EntityID   uint       `gorm:"column:entity_id;not null" json:"entityId"`
	EntityName string     `gorm:"column:entity_name;type:varchar(256);not null" json:"entityName"`
	Timestamp  time.Time  `gorm:"not null;index" json:"timestamp"`
	Count      int        `gorm:"not null;default:1" json:"count"`
}

func (Report) TableName() string { return "reports" }

// CreateReportRequest is the payload for recording an event directly.
type CreateReportRequest struct {
	ReportType ReportType `json:"reportType" binding:"required"`
	EntityID   uint       `json:"entityId" binding:"required"`
	EntityName string     `json:"entityName" binding:"required"`
	Count      int        `json:"count" binding:"omitempty,gte=1"`
}

// ChartBucket is one sparse point in a trend series. Date is the bucket
// label the dashboard charts key on ("2025-08-04", "2025-W32", "2025-08").
type ChartBucket struct {
	BucketStart time.Time `json:"bucketStart"`
	Date        string    `json:"date"`
	Count       int64     `json:"count"`
}

// TopEntity is one row of a top-N ranking. Name is the most recently seen
// entity name for the id within the queried window.
type TopEntity struct {
	EntityID   uint   `json:"id"`
	EntityName string `json:"name"`
	Count      int64  `json:"count"`
}

// DashboardData is the composite view backing the reports dashboard.
type DashboardData struct {
	Summary                 map[ReportType]int64 `json:"summary"`
	TopRecipes              []TopEntity          `json:"topRecipes"`
	TopIngredients          []TopEntity          `json:"topIngredients"`
	LowStockCount           int64                `json:"lowStockCount"`
	RecipesCreatedCount     int64                `json:"recipesCreatedCount"`
	IngredientsCreatedCount int64                `json:"ingredientsCreatedCount"`
}
