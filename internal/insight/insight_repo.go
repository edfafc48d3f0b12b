package insight

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/report"
)

//go:generate mockgen -source=insight_repo.go -destination=mock/insight_repo_mock.go -package=mock
type Repository interface {
	FindByKey(ctx context.Context, key string) (*InsightCacheEntry, error)
	Create(ctx context.Context, entry *InsightCacheEntry) error
	FindSnapshots(ctx context.Context, reportType report.Type, dr report.DateRange, limit int) ([]report.ReportSnapshot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByKey(ctx context.Context, key string) (*InsightCacheEntry, error) {
	var entry InsightCacheEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	return &entry, err
}

func (r *repository) Create(ctx context.Context, entry *InsightCacheEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindSnapshots(ctx context.Context, reportType report.Type, dr report.DateRange, limit int) ([]report.ReportSnapshot, error) {
	q := r.db.WithContext(ctx).
		Model(&report.ReportSnapshot{}).
		Where("type = ?", reportType)
	if dr.Bounded() {
		q = q.Where("created_at >= ? AND created_at <= ?", *dr.From, *dr.To)
	}

	var rows []report.ReportSnapshot
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
