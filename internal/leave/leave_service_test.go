package leave_test

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
	"github.com/mohammed4122002/workflow-pro-backend/internal/leave"
	leaveerrors "github.com/mohammed4122002/workflow-pro-backend/internal/leave/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/messaging/kafka"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

type fakeLeaveRepository struct {
	withTxFn   func(tx *sql.Tx) leave.Repository
	createFn   func(ctx context.Context, lr *leave.LeaveRequest) error
	findByIDFn func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findAllFn  func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error)
	updateFn   func(ctx context.Context, lr *leave.LeaveRequest) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lr)
	}
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
	outbox  *fakeOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewService(db, repo, outbox)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
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

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		from := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
		to := time.Now().UTC().AddDate(0, 0, 9).Format("2006-01-02")

		deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusPending, lr.Status)
			assert.Equal(t, requesterID, lr.UserID.String())
			lr.ID = uuid.New()
			return nil
		}

		res, err := deps.service.Create(ctx, requesterID, leave.CreateLeaveRequest{
			FromDate: from,
			ToDate:   to,
			Type:     "ANNUAL",
		})

		assert.NoError(t, err)
		assert.Equal(t, "PENDING", res.Status)
	})

	t.Run("success starting today", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		today := time.Now().UTC().Format("2006-01-02")

		_, err := deps.service.Create(ctx, requesterID, leave.CreateLeaveRequest{
			FromDate: today,
			ToDate:   today,
			Type:     "SICK",
		})

		assert.NoError(t, err)
	})

	t.Run("negative malformed requester id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		from := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
		to := time.Now().UTC().AddDate(0, 0, 9).Format("2006-01-02")

		_, err := deps.service.Create(ctx, "not-a-uuid", leave.CreateLeaveRequest{
			FromDate: from,
			ToDate:   to,
			Type:     "ANNUAL",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative reversed range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		from := time.Now().UTC().AddDate(0, 0, 9).Format("2006-01-02")
		to := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

		_, err := deps.service.Create(ctx, requesterID, leave.CreateLeaveRequest{
			FromDate: from,
			ToDate:   to,
			Type:     "ANNUAL",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative starting in the past", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		from := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
		to := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")

		_, err := deps.service.Create(ctx, requesterID, leave.CreateLeaveRequest{
			FromDate: from,
			ToDate:   to,
			Type:     "ANNUAL",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrFromDateInPast)
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	userID := uuid.New()
	deciderID := uuid.New().String()

	pending := func(reason *string) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:       leaveID,
			UserID:   userID,
			Status:   leave.StatusPending,
			Type:     leave.TypeAnnual,
			FromDate: time.Now().UTC().AddDate(0, 0, 7),
			ToDate:   time.Now().UTC().AddDate(0, 0, 9),
			Reason:   reason,
		}
	}

	t.Run("success approve with note appended to reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		original := "Family matters"
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pending(&original), nil
		}

		var saved *leave.LeaveRequest
		deps.repo.updateFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			saved = lr
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		note := "Enjoy your holiday"
		res, err := deps.service.Decide(ctx, deciderID, leaveID.String(), leave.DecideLeaveRequest{
			Decision: "APPROVED",
			Note:     &note,
		})

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", res.Status)
		assert.Equal(t, deciderID, *res.DecidedByID)
		assert.NotNil(t, res.DecidedAt)
		assert.Equal(t, "Family matters [DECISION NOTE] Enjoy your holiday", *saved.Reason)

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "leave_decided", deps.outbox.created[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success note without prior reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pending(nil), nil
		}

		var saved *leave.LeaveRequest
		deps.repo.updateFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			saved = lr
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		note := "Not enough coverage that week"
		_, err := deps.service.Decide(ctx, deciderID, leaveID.String(), leave.DecideLeaveRequest{
			Decision: "REJECTED",
			Note:     &note,
		})

		assert.NoError(t, err)
		assert.Equal(t, "[DECISION NOTE] Not enough coverage that week", *saved.Reason)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			decided := pending(nil)
			decided.Status = leave.StatusApproved
			return decided, nil
		}

		_, err := deps.service.Decide(ctx, deciderID, leaveID.String(), leave.DecideLeaveRequest{
			Decision: "REJECTED",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Decide(ctx, deciderID, uuid.New().String(), leave.DecideLeaveRequest{
			Decision: "APPROVED",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()

	t.Run("success scoped caller narrowed to own rows", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
			assert.Equal(t, ownerID, filter.UserID)
			return nil, 0, nil
		}

		decision := access.Decision{Effect: access.EffectAllowScoped, OwnerID: ownerID}

		_, _, err := deps.service.GetAll(ctx, decision, leave.ListLeavesQuery{Page: 1, PageSize: 10})

		assert.NoError(t, err)
	})

	t.Run("negative scoped caller requesting another user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		decision := access.Decision{Effect: access.EffectAllowScoped, OwnerID: ownerID}

		_, _, err := deps.service.GetAll(ctx, decision, leave.ListLeavesQuery{
			UserID:   uuid.New().String(),
			Page:     1,
			PageSize: 10,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
	})
}
