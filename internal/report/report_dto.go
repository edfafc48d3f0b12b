package report

import "encoding/json"

type GenerateReportRequest struct {
	Type      Type    `json:"type" binding:"required,oneof=HR_SUMMARY TASK_SUMMARY FIN_SUMMARY"`
	RangeFrom *string `json:"rangeFrom" binding:"omitempty,datetime=2006-01-02"`
	RangeTo   *string `json:"rangeTo" binding:"omitempty,datetime=2006-01-02"`
}

type ListReportsQuery struct {
	Type     string `form:"type" binding:"omitempty,oneof=HR_SUMMARY TASK_SUMMARY FIN_SUMMARY"`
	FromDate string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"omitempty,min=1,max=100"`
}

type ReportResponse struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	RangeFrom *string         `json:"rangeFrom"`
	RangeTo   *string         `json:"rangeTo"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"createdAt"`
}

// HRSummary is the HR_SUMMARY snapshot payload.
type HRSummary struct {
	TotalEmployees int64       `json:"totalEmployees"`
	AttendanceRate float64     `json:"attendanceRate"`
	LateCount      int64       `json:"lateCount"`
	AbsentCount    int64       `json:"absentCount"`
	LeaveRequests  LeaveTotals `json:"leaveRequests"`
}

type LeaveTotals struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// TaskSummary is the TASK_SUMMARY snapshot payload.
type TaskSummary struct {
	TotalTasks                 int64            `json:"totalTasks"`
	TasksByStatus              map[string]int64 `json:"tasksByStatus"`
	OverdueTasks               int64            `json:"overdueTasks"`
	AverageCompletionTimeHours float64          `json:"averageCompletionTimeHours"`
}

// FinSummary is the FIN_SUMMARY snapshot payload.
type FinSummary struct {
	TotalSalaryPaid float64 `json:"totalSalaryPaid"`
	TotalBonuses    float64 `json:"totalBonuses"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetPayroll      float64 `json:"netPayroll"`
	AverageSalary   float64 `json:"averageSalary"`
}
