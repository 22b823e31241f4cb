package repository

import (
	"context"
	"fmt"
	"time"

	"kitchen-inventory-service/models"

	"gorm.io/gorm"
)

// ReportRepository defines data-access operations for the append-only usage
// event log. Reads always return events in ascending timestamp order.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	FindAll(ctx context.Context) ([]models.Report, error)
	FindByType(ctx context.Context, reportType models.ReportType) ([]models.Report, error)
	FindByRange(ctx context.Context, start, end *time.Time) ([]models.Report, error)
	FindByTypeAndRange(ctx context.Context, reportType models.ReportType, start, end *time.Time) ([]models.Report, error)
	DeleteAll(ctx context.Context) error
}

// GormReportRepository implements ReportRepository using GORM.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository.
func NewGormReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (r *GormReportRepository) FindAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).
		Order("timestamp ASC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (r *GormReportRepository) FindByType(ctx context.Context, reportType models.ReportType) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).
		Where("report_type = ?", reportType).
		Order("timestamp ASC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports by type: %w", err)
	}
	return reports, nil
}

func (r *GormReportRepository) FindByRange(ctx context.Context, start, end *time.Time) ([]models.Report, error) {
	var reports []models.Report
	if err := rangeQuery(r.db.WithContext(ctx), start, end).
		Order("timestamp ASC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports by range: %w", err)
	}
	return reports, nil
}

func (r *GormReportRepository) FindByTypeAndRange(ctx context.Context, reportType models.ReportType, start, end *time.Time) ([]models.Report, error) {
	var reports []models.Report
	if err := rangeQuery(r.db.WithContext(ctx), start, end).
		Where("report_type = ?", reportType).
		Order("timestamp ASC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports by type and range: %w", err)
	}
	return reports, nil
}

func (r *GormReportRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Report{}).Error; err != nil {
		return fmt.Errorf("clear reports: %w", err)
	}
	return nil
}

// rangeQuery applies inclusive start/end bounds; a nil bound is open.
func rangeQuery(db *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		db = db.Where("timestamp >= ?", *start)
	}
	if end != nil {
		db = db.Where("timestamp <= ?", *end)
	}
	return db
}
