package financial

import "github.com/shopspring/decimal"

type CreateFinancialRecordRequest struct {
	UserID     string           `json:"user_id" binding:"required,uuid"`
	Month      string           `json:"month" binding:"required,datetime=2006-01"`
	SalaryPaid decimal.Decimal  `json:"salary_paid" binding:"required"`
	Bonuses    *decimal.Decimal `json:"bonuses"`
	Deductions *decimal.Decimal `json:"deductions"`
	Notes      *string          `json:"notes" binding:"omitempty,max=2000"`
}

type UpdateFinancialRecordRequest struct {
	Month      *string          `json:"month" binding:"omitempty,datetime=2006-01"`
	SalaryPaid *decimal.Decimal `json:"salary_paid"`
	Bonuses    *decimal.Decimal `json:"bonuses"`
	Deductions *decimal.Decimal `json:"deductions"`
	Notes      *string          `json:"notes" binding:"omitempty,max=2000"`
}

type ListFinancialQuery struct {
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	Month     string `form:"month" binding:"omitempty,datetime=2006-01"`
	FromMonth string `form:"from_month" binding:"omitempty,datetime=2006-01"`
	ToMonth   string `form:"to_month" binding:"omitempty,datetime=2006-01"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}

type SummaryQuery struct {
	FromMonth string `form:"from_month" binding:"omitempty,datetime=2006-01"`
	ToMonth   string `form:"to_month" binding:"omitempty,datetime=2006-01"`
}

type FinancialRecordResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Month      string          `json:"month"`
	SalaryPaid decimal.Decimal `json:"salary_paid"`
	Bonuses    decimal.Decimal `json:"bonuses"`
	Deductions decimal.Decimal `json:"deductions"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

type MonthlySummaryResponse struct {
	Month           string          `json:"month"`
	TotalSalaryPaid decimal.Decimal `json:"total_salary_paid"`
	TotalBonuses    decimal.Decimal `json:"total_bonuses"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	CountEmployees  int64           `json:"count_employees"`
}
