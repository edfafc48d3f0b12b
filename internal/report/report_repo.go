package report

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	CreateSnapshot(ctx context.Context, snapshot *ReportSnapshot) error
	FindSnapshotByID(ctx context.Context, id string) (*ReportSnapshot, error)
	FindSnapshots(ctx context.Context, filter ListFilter) ([]ReportSnapshot, int64, error)

	CountActiveUsers(ctx context.Context) (int64, error)
	CountAttendanceByStatus(ctx context.Context, r DateRange) (map[string]int64, error)
	CountLeavesByStatus(ctx context.Context, r DateRange) (map[string]int64, error)
	CountTasks(ctx context.Context, r DateRange) (int64, error)
	CountTasksByStatus(ctx context.Context, r DateRange) (map[string]int64, error)
	CountOverdueTasks(ctx context.Context, r DateRange, now time.Time) (int64, error)
	FindCompletedTaskSpans(ctx context.Context, r DateRange) ([]TaskSpan, error)
	SumFinancials(ctx context.Context, fromMonth, toMonth string) (FinancialTotals, error)
}

type ListFilter struct {
	Type     string
	FromDate string
	ToDate   string
	Page     int
	Limit    int
}

// DateRange bounds an aggregation window. Both ends are set or neither is.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) Bounded() bool {
	return r.From != nil && r.To != nil
}

// TaskSpan carries the timestamps needed to measure completion time.
type TaskSpan struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FinancialTotals struct {
	TotalSalaryPaid float64
	TotalBonuses    float64
	TotalDeductions float64
	AverageSalary   float64
}

type statusCount struct {
	Status string
	Count  int64
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSnapshot(ctx context.Context, snapshot *ReportSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *repository) FindSnapshotByID(ctx context.Context, id string) (*ReportSnapshot, error) {
	var s ReportSnapshot
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindSnapshots(ctx context.Context, filter ListFilter) ([]ReportSnapshot, int64, error) {
	q := r.db.WithContext(ctx).Model(&ReportSnapshot{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.FromDate != "" {
		q = q.Where("created_at >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("created_at <= ?", filter.ToDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ReportSnapshot
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) CountActiveUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}

func (r *repository) CountAttendanceByStatus(ctx context.Context, dr DateRange) (map[string]int64, error) {
	q := r.db.WithContext(ctx).
		Table("attendances").
		Select("status, COUNT(*) AS count").
		Group("status")
	if dr.Bounded() {
		q = q.Where("date >= ? AND date <= ?", *dr.From, *dr.To)
	}
	return scanStatusCounts(q)
}

func (r *repository) CountLeavesByStatus(ctx context.Context, dr DateRange) (map[string]int64, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("status, COUNT(*) AS count").
		Group("status")
	if dr.Bounded() {
		q = q.Where("from_date >= ? AND to_date <= ?", *dr.From, *dr.To)
	}
	return scanStatusCounts(q)
}

func (r *repository) CountTasks(ctx context.Context, dr DateRange) (int64, error) {
	q := r.db.WithContext(ctx).Table("tasks")
	if dr.Bounded() {
		q = q.Where("created_at >= ? AND created_at <= ?", *dr.From, *dr.To)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

func (r *repository) CountTasksByStatus(ctx context.Context, dr DateRange) (map[string]int64, error) {
	q := r.db.WithContext(ctx).
		Table("tasks").
		Select("status, COUNT(*) AS count").
		Group("status")
	if dr.Bounded() {
		q = q.Where("created_at >= ? AND created_at <= ?", *dr.From, *dr.To)
	}
	return scanStatusCounts(q)
}

func (r *repository) CountOverdueTasks(ctx context.Context, dr DateRange, now time.Time) (int64, error) {
	q := r.db.WithContext(ctx).
		Table("tasks").
		Where("due_date < ?", now).
		Where("status <> ?", "DONE")
	if dr.Bounded() {
		q = q.Where("created_at >= ? AND created_at <= ?", *dr.From, *dr.To)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

func (r *repository) FindCompletedTaskSpans(ctx context.Context, dr DateRange) ([]TaskSpan, error) {
	q := r.db.WithContext(ctx).
		Table("tasks").
		Select("created_at, updated_at").
		Where("status = ?", "DONE")
	if dr.Bounded() {
		q = q.Where("created_at >= ? AND created_at <= ?", *dr.From, *dr.To)
	}
	var spans []TaskSpan
	err := q.Scan(&spans).Error
	return spans, err
}

func (r *repository) SumFinancials(ctx context.Context, fromMonth, toMonth string) (FinancialTotals, error) {
	q := r.db.WithContext(ctx).
		Table("financial_records").
		Select(`COALESCE(SUM(salary_paid), 0) AS total_salary_paid,
			COALESCE(SUM(bonuses), 0) AS total_bonuses,
			COALESCE(SUM(deductions), 0) AS total_deductions,
			COALESCE(AVG(salary_paid), 0) AS average_salary`)
	if fromMonth != "" {
		q = q.Where("month >= ?", fromMonth)
	}
	if toMonth != "" {
		q = q.Where("month <= ?", toMonth)
	}

	var totals FinancialTotals
	err := q.Scan(&totals).Error
	return totals, err
}

func scanStatusCounts(q *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
