package financial

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	financialerrors "github.com/mohammed4122002/workflow-pro-backend/internal/financial/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
)

//go:generate mockgen -source=financial_service.go -destination=mock/financial_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, req CreateFinancialRecordRequest) (FinancialRecordResponse, error)
	GetAll(ctx context.Context, decision access.Decision, query ListFinancialQuery) ([]FinancialRecordResponse, int64, error)
	GetByID(ctx context.Context, decision access.Decision, id string) (FinancialRecordResponse, error)
	Update(ctx context.Context, id string, req UpdateFinancialRecordRequest) (FinancialRecordResponse, error)
	Summarize(ctx context.Context, query SummaryQuery) ([]MonthlySummaryResponse, error)
}

// UserDirectory validates record owners the same way tasks validate
// assignees.
type UserDirectory interface {
	ResolveIdentity(ctx context.Context, userID string) (access.Identity, error)
}

type service struct {
	db    *sql.DB
	repo  Repository
	users UserDirectory
}

func NewService(db *sql.DB, repo Repository, users UserDirectory) Service {
	return &service{db: db, repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, req CreateFinancialRecordRequest) (FinancialRecordResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	bonuses := decimal.Zero
	if req.Bonuses != nil {
		bonuses = *req.Bonuses
	}
	deductions := decimal.Zero
	if req.Deductions != nil {
		deductions = *req.Deductions
	}

	if req.SalaryPaid.IsNegative() || bonuses.IsNegative() || deductions.IsNegative() {
		return FinancialRecordResponse{}, financialerrors.ErrNegativeAmount
	}

	if err := s.checkOwner(ctx, req.UserID); err != nil {
		return FinancialRecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FinancialRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndMonth(ctx, req.UserID, req.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return FinancialRecordResponse{}, err
	}
	if err == nil && existing != nil {
		return FinancialRecordResponse{}, financialerrors.ErrDuplicateForMonth
	}

	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return FinancialRecordResponse{}, apperror.InvalidField("user_id")
	}

	fr := &FinancialRecord{
		UserID:     userUUID,
		Month:      req.Month,
		SalaryPaid: req.SalaryPaid,
		Bonuses:    bonuses,
		Deductions: deductions,
		Notes:      req.Notes,
	}

	if err := qtx.Create(ctx, fr); err != nil {
		l.Error("failed to create financial record", zap.Error(err))
		return FinancialRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return FinancialRecordResponse{}, err
	}

	l.Info("financial record created",
		zap.String("record_id", fr.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("month", req.Month),
	)
	return mapToResponse(*fr), nil
}

func (s *service) GetAll(ctx context.Context, decision access.Decision, query ListFinancialQuery) ([]FinancialRecordResponse, int64, error) {
	if decision.Scoped() && query.UserID != "" && query.UserID != decision.OwnerID {
		return nil, 0, financialerrors.ErrNotOwner
	}

	filter := ListFilter{
		UserID:    query.UserID,
		Month:     query.Month,
		FromMonth: query.FromMonth,
		ToMonth:   query.ToMonth,
		Page:      query.Page,
		Limit:     query.PageSize,
	}
	if decision.Scoped() {
		filter.UserID = decision.OwnerID
	}

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]FinancialRecordResponse, len(rows))
	for i, fr := range rows {
		resp[i] = mapToResponse(fr)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, decision access.Decision, id string) (FinancialRecordResponse, error) {
	fr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return FinancialRecordResponse{}, mapRepositoryError(err)
	}

	if !decision.PermitsOwner(fr.UserID.String()) {
		return FinancialRecordResponse{}, financialerrors.ErrNotOwner
	}

	return mapToResponse(*fr), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateFinancialRecordRequest) (FinancialRecordResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	fr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return FinancialRecordResponse{}, mapRepositoryError(err)
	}

	// Moving the record to another month re-runs the uniqueness check
	// against the new key.
	if req.Month != nil && *req.Month != fr.Month {
		existing, err := s.repo.FindByUserAndMonth(ctx, fr.UserID.String(), *req.Month)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return FinancialRecordResponse{}, err
		}
		if err == nil && existing != nil {
			return FinancialRecordResponse{}, financialerrors.ErrDuplicateForMonth
		}
		fr.Month = *req.Month
	}

	if req.SalaryPaid != nil {
		if req.SalaryPaid.IsNegative() {
			return FinancialRecordResponse{}, financialerrors.ErrNegativeAmount
		}
		fr.SalaryPaid = *req.SalaryPaid
	}
	if req.Bonuses != nil {
		if req.Bonuses.IsNegative() {
			return FinancialRecordResponse{}, financialerrors.ErrNegativeAmount
		}
		fr.Bonuses = *req.Bonuses
	}
	if req.Deductions != nil {
		if req.Deductions.IsNegative() {
			return FinancialRecordResponse{}, financialerrors.ErrNegativeAmount
		}
		fr.Deductions = *req.Deductions
	}
	if req.Notes != nil {
		fr.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, fr); err != nil {
		l.Error("failed to update financial record", zap.String("record_id", id), zap.Error(err))
		return FinancialRecordResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*fr), nil
}

func (s *service) Summarize(ctx context.Context, query SummaryQuery) ([]MonthlySummaryResponse, error) {
	rows, err := s.repo.SummarizeByMonth(ctx, query.FromMonth, query.ToMonth)
	if err != nil {
		return nil, err
	}

	resp := make([]MonthlySummaryResponse, len(rows))
	for i, row := range rows {
		resp[i] = MonthlySummaryResponse{
			Month:           row.Month,
			TotalSalaryPaid: row.TotalSalaryPaid,
			TotalBonuses:    row.TotalBonuses,
			TotalDeductions: row.TotalDeductions,
			CountEmployees:  row.CountEmployees,
		}
	}

	return resp, nil
}

func (s *service) checkOwner(ctx context.Context, userID string) error {
	identity, err := s.users.ResolveIdentity(ctx, userID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
			return financialerrors.ErrOwnerNotFound
		}
		return err
	}

	if !identity.IsActive {
		return financialerrors.ErrOwnerInactive
	}

	return nil
}

func mapToResponse(fr FinancialRecord) FinancialRecordResponse {
	return FinancialRecordResponse{
		ID:         fr.ID.String(),
		UserID:     fr.UserID.String(),
		Month:      fr.Month,
		SalaryPaid: fr.SalaryPaid,
		Bonuses:    fr.Bonuses,
		Deductions: fr.Deductions,
		Notes:      fr.Notes,
		CreatedAt:  fr.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
