package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/attendance"
	attendanceerrors "github.com/mohammed4122002/workflow-pro-backend/internal/attendance/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

type fakeAttendanceRepository struct {
	withTxFn            func(tx *sql.Tx) attendance.Repository
	createFn            func(ctx context.Context, a *attendance.Attendance) error
	findByIDFn          func(ctx context.Context, id string) (*attendance.Attendance, error)
	findByUserAndDateFn func(ctx context.Context, userID, date string) (*attendance.Attendance, error)
	findAllFn           func(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error)
	updateFn            func(ctx context.Context, a *attendance.Attendance) error
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*attendance.Attendance, error) {
	if f.findByUserAndDateFn != nil {
		return f.findByUserAndDateFn(ctx, userID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *fakeAttendanceRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	svc := attendance.NewService(db, repo)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		checkIn := "2026-09-01T08:30:00Z"
		checkOut := "2026-09-01T17:00:00Z"

		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, userID, a.UserID.String())
			assert.Equal(t, attendance.StatusPresent, a.Status)
			a.ID = uuid.New()
			return nil
		}

		res, err := deps.service.Create(ctx, attendance.CreateAttendanceRequest{
			UserID:   userID,
			Date:     "2026-09-01",
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
		})

		assert.NoError(t, err)
		assert.Equal(t, "PRESENT", res.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate date", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid, date string) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: uuid.New()}, nil
		}

		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRequest{
			UserID: userID,
			Date:   "2026-09-01",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateForDate)
	})

	t.Run("negative malformed user id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRequest{
			UserID: "not-a-uuid",
			Date:   "2026-09-01",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative check out before check in", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		checkIn := "2026-09-01T17:00:00Z"
		checkOut := "2026-09-01T08:30:00Z"

		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRequest{
			UserID:   userID,
			Date:     "2026-09-01",
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutBeforeCheckIn)
	})

	t.Run("negative equal timestamps", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ts := "2026-09-01T08:30:00Z"

		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRequest{
			UserID:   userID,
			Date:     "2026-09-01",
			CheckIn:  &ts,
			CheckOut: &ts,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutBeforeCheckIn)
	})
}

func TestAttendanceService_Update(t *testing.T) {
	ctx := context.Background()
	rowID := uuid.New()
	userID := uuid.New()

	existingRow := func() *attendance.Attendance {
		checkIn := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
		return &attendance.Attendance{
			ID:      rowID,
			UserID:  userID,
			Date:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			CheckIn: &checkIn,
			Status:  attendance.StatusPresent,
		}
	}

	t.Run("success set check out", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return existingRow(), nil
		}

		checkOut := "2026-09-01T17:00:00Z"
		res, err := deps.service.Update(ctx, rowID.String(), attendance.UpdateAttendanceRequest{
			CheckOut: &checkOut,
		})

		assert.NoError(t, err)
		assert.NotNil(t, res.CheckOut)
	})

	t.Run("negative merged pair invalid", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return existingRow(), nil
		}

		// Earlier than the stored check-in.
		checkOut := "2026-09-01T07:00:00Z"
		_, err := deps.service.Update(ctx, rowID.String(), attendance.UpdateAttendanceRequest{
			CheckOut: &checkOut,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrCheckOutBeforeCheckIn)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, uuid.New().String(), attendance.UpdateAttendanceRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()

	t.Run("success scoped caller narrowed", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
			assert.Equal(t, ownerID, filter.UserID)
			return nil, 0, nil
		}

		decision := access.Decision{Effect: access.EffectAllowScoped, OwnerID: ownerID}

		_, _, err := deps.service.GetAll(ctx, decision, attendance.ListAttendanceQuery{Page: 1, PageSize: 10})

		assert.NoError(t, err)
	})

	t.Run("negative scoped caller requesting another user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		decision := access.Decision{Effect: access.EffectAllowScoped, OwnerID: ownerID}

		_, _, err := deps.service.GetAll(ctx, decision, attendance.ListAttendanceQuery{
			UserID:   uuid.New().String(),
			Page:     1,
			PageSize: 10,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotOwner)
	})
}
