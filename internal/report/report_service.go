package report

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	reporterrors "github.com/mohammed4122002/workflow-pro-backend/internal/report/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock

type Service interface {
	Generate(ctx context.Context, req GenerateReportRequest) (ReportResponse, error)
	GetAll(ctx context.Context, query ListReportsQuery) ([]ReportResponse, int64, error)
	GetByID(ctx context.Context, id string) (ReportResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

const dateLayout = "2006-01-02"

func (s *service) Generate(ctx context.Context, req GenerateReportRequest) (ReportResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	dr, err := parseRange(req.RangeFrom, req.RangeTo)
	if err != nil {
		return ReportResponse{}, err
	}

	var payload any
	switch req.Type {
	case TypeHRSummary:
		payload, err = s.buildHRSummary(ctx, dr)
	case TypeTaskSummary:
		payload, err = s.buildTaskSummary(ctx, dr)
	case TypeFinSummary:
		payload, err = s.buildFinSummary(ctx, dr)
	default:
		return ReportResponse{}, reporterrors.ErrInvalidType
	}
	if err != nil {
		l.Error("failed to aggregate report data", zap.String("type", string(req.Type)), zap.Error(err))
		return ReportResponse{}, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return ReportResponse{}, err
	}

	snapshot := &ReportSnapshot{
		Type:      req.Type,
		RangeFrom: dr.From,
		RangeTo:   dr.To,
		Data:      data,
	}
	if err := s.repo.CreateSnapshot(ctx, snapshot); err != nil {
		l.Error("failed to persist report snapshot", zap.Error(err))
		return ReportResponse{}, err
	}

	l.Info("report snapshot generated",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.String("type", string(req.Type)),
	)
	return mapToResponse(*snapshot), nil
}

func (s *service) GetAll(ctx context.Context, query ListReportsQuery) ([]ReportResponse, int64, error) {
	rows, total, err := s.repo.FindSnapshots(ctx, ListFilter{
		Type:     query.Type,
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Page:     query.Page,
		Limit:    query.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ReportResponse, len(rows))
	for i, snapshot := range rows {
		resp[i] = mapToResponse(snapshot)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ReportResponse, error) {
	snapshot, err := s.repo.FindSnapshotByID(ctx, id)
	if err != nil {
		return ReportResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*snapshot), nil
}

func (s *service) buildHRSummary(ctx context.Context, dr DateRange) (HRSummary, error) {
	totalEmployees, err := s.repo.CountActiveUsers(ctx)
	if err != nil {
		return HRSummary{}, err
	}

	attendance, err := s.repo.CountAttendanceByStatus(ctx, dr)
	if err != nil {
		return HRSummary{}, err
	}
	var totalAttendance int64
	for _, count := range attendance {
		totalAttendance += count
	}
	rate := float64(0)
	if totalAttendance > 0 {
		rate = float64(attendance["PRESENT"]) / float64(totalAttendance) * 100
	}

	leaves, err := s.repo.CountLeavesByStatus(ctx, dr)
	if err != nil {
		return HRSummary{}, err
	}

	return HRSummary{
		TotalEmployees: totalEmployees,
		AttendanceRate: rate,
		LateCount:      attendance["LATE"],
		AbsentCount:    attendance["ABSENT"],
		LeaveRequests: LeaveTotals{
			Pending:  leaves["PENDING"],
			Approved: leaves["APPROVED"],
			Rejected: leaves["REJECTED"],
		},
	}, nil
}

func (s *service) buildTaskSummary(ctx context.Context, dr DateRange) (TaskSummary, error) {
	totalTasks, err := s.repo.CountTasks(ctx, dr)
	if err != nil {
		return TaskSummary{}, err
	}

	byStatus, err := s.repo.CountTasksByStatus(ctx, dr)
	if err != nil {
		return TaskSummary{}, err
	}

	overdue, err := s.repo.CountOverdueTasks(ctx, dr, s.now())
	if err != nil {
		return TaskSummary{}, err
	}

	spans, err := s.repo.FindCompletedTaskSpans(ctx, dr)
	if err != nil {
		return TaskSummary{}, err
	}
	avgHours := float64(0)
	if len(spans) > 0 {
		var total time.Duration
		for _, span := range spans {
			total += span.UpdatedAt.Sub(span.CreatedAt)
		}
		avgHours = total.Hours() / float64(len(spans))
		avgHours = math.Round(avgHours*100) / 100
	}

	return TaskSummary{
		TotalTasks: totalTasks,
		TasksByStatus: map[string]int64{
			"TODO":        byStatus["TODO"],
			"IN_PROGRESS": byStatus["IN_PROGRESS"],
			"DONE":        byStatus["DONE"],
			"BLOCKED":     byStatus["BLOCKED"],
		},
		OverdueTasks:               overdue,
		AverageCompletionTimeHours: avgHours,
	}, nil
}

func (s *service) buildFinSummary(ctx context.Context, dr DateRange) (FinSummary, error) {
	var fromMonth, toMonth string
	if dr.Bounded() {
		fromMonth = dr.From.UTC().Format("2006-01")
		toMonth = dr.To.UTC().Format("2006-01")
	}

	totals, err := s.repo.SumFinancials(ctx, fromMonth, toMonth)
	if err != nil {
		return FinSummary{}, err
	}

	return FinSummary{
		TotalSalaryPaid: totals.TotalSalaryPaid,
		TotalBonuses:    totals.TotalBonuses,
		TotalDeductions: totals.TotalDeductions,
		NetPayroll:      totals.TotalSalaryPaid + totals.TotalBonuses - totals.TotalDeductions,
		AverageSalary:   totals.AverageSalary,
	}, nil
}

// parseRange enforces that a window is either fully bounded or absent.
func parseRange(rangeFrom, rangeTo *string) (DateRange, error) {
	if rangeFrom == nil && rangeTo == nil {
		return DateRange{}, nil
	}
	if rangeFrom == nil || rangeTo == nil {
		return DateRange{}, reporterrors.ErrRangeIncomplete
	}

	from, err := time.Parse(dateLayout, *rangeFrom)
	if err != nil {
		return DateRange{}, reporterrors.ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, *rangeTo)
	if err != nil {
		return DateRange{}, reporterrors.ErrInvalidDate
	}
	if to.Before(from) {
		return DateRange{}, reporterrors.ErrInvalidRange
	}

	return DateRange{From: &from, To: &to}, nil
}

func mapToResponse(snapshot ReportSnapshot) ReportResponse {
	resp := ReportResponse{
		ID:        snapshot.ID.String(),
		Type:      snapshot.Type,
		Data:      snapshot.Data,
		CreatedAt: snapshot.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if snapshot.RangeFrom != nil {
		v := snapshot.RangeFrom.Format(dateLayout)
		resp.RangeFrom = &v
	}
	if snapshot.RangeTo != nil {
		v := snapshot.RangeTo.Format(dateLayout)
		resp.RangeTo = &v
	}
	return resp
}
