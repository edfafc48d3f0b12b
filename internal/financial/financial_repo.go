package financial

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=financial_repo.go -destination=mock/financial_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, fr *FinancialRecord) error
	FindByID(ctx context.Context, id string) (*FinancialRecord, error)
	FindByUserAndMonth(ctx context.Context, userID, month string) (*FinancialRecord, error)
	FindAll(ctx context.Context, filter ListFilter) ([]FinancialRecord, int64, error)
	Update(ctx context.Context, fr *FinancialRecord) error
	SummarizeByMonth(ctx context.Context, fromMonth, toMonth string) ([]MonthlySummary, error)
}

type ListFilter struct {
	UserID    string
	Month     string
	FromMonth string
	ToMonth   string
	Page      int
	Limit     int
}

// MonthlySummary is the raw group-by row.
type MonthlySummary struct {
	Month           string
	TotalSalaryPaid decimal.Decimal
	TotalBonuses    decimal.Decimal
	TotalDeductions decimal.Decimal
	CountEmployees  int64
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, fr *FinancialRecord) error {
	return r.db.WithContext(ctx).Create(fr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*FinancialRecord, error) {
	var fr FinancialRecord
	err := r.db.WithContext(ctx).First(&fr, "id = ?", id).Error
	return &fr, err
}

func (r *repository) FindByUserAndMonth(ctx context.Context, userID, month string) (*FinancialRecord, error) {
	var fr FinancialRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("month = ?", month).
		First(&fr).Error
	return &fr, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]FinancialRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&FinancialRecord{})

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Month != "" {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.FromMonth != "" {
		q = q.Where("month >= ?", filter.FromMonth)
	}
	if filter.ToMonth != "" {
		q = q.Where("month <= ?", filter.ToMonth)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []FinancialRecord
	err := q.Order("month DESC, created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) Update(ctx context.Context, fr *FinancialRecord) error {
	return r.db.WithContext(ctx).Save(fr).Error
}

func (r *repository) SummarizeByMonth(ctx context.Context, fromMonth, toMonth string) ([]MonthlySummary, error) {
	q := r.db.WithContext(ctx).Model(&FinancialRecord{}).
		Select(`month,
			COALESCE(SUM(salary_paid), 0) AS total_salary_paid,
			COALESCE(SUM(bonuses), 0) AS total_bonuses,
			COALESCE(SUM(deductions), 0) AS total_deductions,
			COUNT(DISTINCT user_id) AS count_employees`).
		Group("month").
		Order("month DESC")

	if fromMonth != "" {
		q = q.Where("month >= ?", fromMonth)
	}
	if toMonth != "" {
		q = q.Where("month <= ?", toMonth)
	}

	var rows []MonthlySummary
	err := q.Scan(&rows).Error
	return rows, err
}
