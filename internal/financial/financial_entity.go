package financial

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialRecord is one user's payroll line for one month. Money
// columns are numeric, never floats.
type FinancialRecord struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_financial_user_month"`
	Month      string          `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_financial_user_month"`
	SalaryPaid decimal.Decimal `gorm:"column:salary_paid;type:numeric(14,2);not null"`
	Bonuses    decimal.Decimal `gorm:"column:bonuses;type:numeric(14,2);not null"`
	Deductions decimal.Decimal `gorm:"column:deductions;type:numeric(14,2);not null"`
	Notes      *string         `gorm:"column:notes;type:text"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (FinancialRecord) TableName() string {
	return "financial_records"
}
