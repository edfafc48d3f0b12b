package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	attendanceerrors "github.com/mohammed4122002/workflow-pro-backend/internal/attendance/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, decision access.Decision, query ListAttendanceQuery) ([]AttendanceResponse, int64, error)
	GetByID(ctx context.Context, decision access.Decision, id string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	checkIn, err := parseTimestamp(req.CheckIn)
	if err != nil {
		return AttendanceResponse{}, err
	}
	checkOut, err := parseTimestamp(req.CheckOut)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if err := ensureCheckOutAfterCheckIn(checkIn, checkOut); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, req.UserID, req.Date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrDuplicateForDate
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	status := StatusPresent
	if req.Status != nil {
		status = Status(*req.Status)
	}

	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("user_id")
	}

	a := &Attendance{
		UserID:   userUUID,
		Date:     date,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   status,
		Note:     req.Note,
	}

	// The unique index backstops the pre-check against concurrent writers.
	if err := qtx.Create(ctx, a); err != nil {
		l.Error("failed to create attendance", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	l.Info("attendance created",
		zap.String("attendance_id", a.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, decision access.Decision, query ListAttendanceQuery) ([]AttendanceResponse, int64, error) {
	if decision.Scoped() && query.UserID != "" && query.UserID != decision.OwnerID {
		return nil, 0, attendanceerrors.ErrNotOwner
	}

	filter := ListFilter{
		UserID:   query.UserID,
		Status:   query.Status,
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Page:     query.Page,
		Limit:    query.PageSize,
	}
	if decision.Scoped() {
		filter.UserID = decision.OwnerID
	}

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, decision access.Decision, id string) (AttendanceResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if !decision.PermitsOwner(a.UserID.String()) {
		return AttendanceResponse{}, attendanceerrors.ErrNotOwner
	}

	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if req.CheckIn != nil {
		checkIn, err := parseTimestamp(req.CheckIn)
		if err != nil {
			return AttendanceResponse{}, err
		}
		a.CheckIn = checkIn
	}
	if req.CheckOut != nil {
		checkOut, err := parseTimestamp(req.CheckOut)
		if err != nil {
			return AttendanceResponse{}, err
		}
		a.CheckOut = checkOut
	}

	// Validate the merged pair, not just the fields in the request.
	if err := ensureCheckOutAfterCheckIn(a.CheckIn, a.CheckOut); err != nil {
		return AttendanceResponse{}, err
	}

	if req.Status != nil {
		a.Status = Status(*req.Status)
	}
	if req.Note != nil {
		a.Note = req.Note
	}

	if err := s.repo.Update(ctx, a); err != nil {
		l.Error("failed to update attendance", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*a), nil
}

func ensureCheckOutAfterCheckIn(checkIn, checkOut *time.Time) error {
	if checkIn == nil || checkOut == nil {
		return nil
	}
	if !checkOut.After(*checkIn) {
		return attendanceerrors.ErrCheckOutBeforeCheckIn
	}
	return nil
}

func parseTimestamp(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	ts, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimestamp
	}

	return &ts, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:     a.ID.String(),
		UserID: a.UserID.String(),
		Date:   a.Date.Format("2006-01-02"),
		Status: string(a.Status),
		Note:   a.Note,
	}
	if a.CheckIn != nil {
		checkIn := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &checkIn
	}
	if a.CheckOut != nil {
		checkOut := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &checkOut
	}
	return resp
}
