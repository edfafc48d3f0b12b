package task_test

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
	"github.com/mohammed4122002/workflow-pro-backend/internal/messaging/kafka"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
	"github.com/mohammed4122002/workflow-pro-backend/internal/task"
	taskerrors "github.com/mohammed4122002/workflow-pro-backend/internal/task/errors"
	usererrors "github.com/mohammed4122002/workflow-pro-backend/internal/user/errors"
)

type fakeTaskRepository struct {
	withTxFn             func(tx *sql.Tx) task.Repository
	createFn             func(ctx context.Context, t *task.Task) error
	findByIDFn           func(ctx context.Context, id string) (*task.Task, error)
	findAllFn            func(ctx context.Context, filter task.ListFilter) ([]task.Task, int64, error)
	updateFn             func(ctx context.Context, t *task.Task) error
	createCommentFn      func(ctx context.Context, c *task.Comment) error
	findCommentsByTaskFn func(ctx context.Context, taskID string) ([]task.Comment, error)
}

func (f *fakeTaskRepository) WithTx(tx *sql.Tx) task.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTaskRepository) Create(ctx context.Context, t *task.Task) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTaskRepository) FindByID(ctx context.Context, id string) (*task.Task, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaskRepository) FindAll(ctx context.Context, filter task.ListFilter) ([]task.Task, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, t)
	}
	return nil
}

func (f *fakeTaskRepository) CreateComment(ctx context.Context, c *task.Comment) error {
	if f.createCommentFn != nil {
		return f.createCommentFn(ctx, c)
	}
	return nil
}

func (f *fakeTaskRepository) FindCommentsByTask(ctx context.Context, taskID string) ([]task.Comment, error) {
	if f.findCommentsByTaskFn != nil {
		return f.findCommentsByTaskFn(ctx, taskID)
	}
	return nil, nil
}

type fakeUserDirectory struct {
	resolveFn func(ctx context.Context, userID string) (access.Identity, error)
}

func (f *fakeUserDirectory) ResolveIdentity(ctx context.Context, userID string) (access.Identity, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, userID)
	}
	return access.Identity{ID: userID, Role: access.RoleEmployee, IsActive: true}, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
	created  []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
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
	service task.Service
	repo    *fakeTaskRepository
	users   *fakeUserDirectory
	outbox  *fakeOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTaskRepository{}
	users := &fakeUserDirectory{}
	outbox := &fakeOutboxRepository{}
	svc := task.NewService(db, repo, users, outbox)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		users:   users,
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

func allowAll() access.Decision {
	return access.Decision{Effect: access.EffectAllow}
}

func scopedTo(ownerID string) access.Decision {
	return access.Decision{Effect: access.EffectAllowScoped, OwnerID: ownerID}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    task.Status
		to      task.Status
		allowed bool
	}{
		{task.StatusTodo, task.StatusTodo, true},
		{task.StatusTodo, task.StatusInProgress, true},
		{task.StatusTodo, task.StatusDone, false},
		{task.StatusTodo, task.StatusBlocked, true},
		{task.StatusInProgress, task.StatusTodo, false},
		{task.StatusInProgress, task.StatusInProgress, true},
		{task.StatusInProgress, task.StatusDone, true},
		{task.StatusInProgress, task.StatusBlocked, true},
		{task.StatusDone, task.StatusTodo, false},
		{task.StatusDone, task.StatusInProgress, false},
		{task.StatusDone, task.StatusDone, true},
		{task.StatusDone, task.StatusBlocked, true},
		{task.StatusBlocked, task.StatusTodo, false},
		{task.StatusBlocked, task.StatusInProgress, false},
		{task.StatusBlocked, task.StatusDone, false},
		{task.StatusBlocked, task.StatusBlocked, true},
	}

	for _, tc := range cases {
		got := task.CanTransition(tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	assigneeID := uuid.New()
	assigneeStr := assigneeID.String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)

		deps.repo.createFn = func(ctx context.Context, tk *task.Task) error {
			assert.Equal(t, task.StatusTodo, tk.Status)
			assert.Equal(t, task.PriorityHigh, tk.Priority)
			assert.Equal(t, creatorID, tk.CreatedByID)
			if assert.NotNil(t, tk.AssigneeID) {
				assert.Equal(t, assigneeID, *tk.AssigneeID)
			}
			tk.ID = uuid.New()
			return nil
		}

		res, err := deps.service.Create(ctx, creatorID.String(), task.CreateTaskRequest{
			Title:      "Prepare onboarding checklist",
			Priority:   "HIGH",
			AssigneeID: &assigneeStr,
			DueDate:    &future,
		})

		assert.NoError(t, err)
		assert.Equal(t, "TODO", res.Status)
		assert.Equal(t, "HIGH", res.Priority)
		assert.Equal(t, creatorID.String(), res.CreatedByID)
	})

	t.Run("success unassigned skips directory lookup", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.users.resolveFn = func(ctx context.Context, userID string) (access.Identity, error) {
			t.Fatal("directory lookup should not run without an assignee")
			return access.Identity{}, nil
		}
		deps.repo.createFn = func(ctx context.Context, tk *task.Task) error {
			assert.Nil(t, tk.AssigneeID)
			tk.ID = uuid.New()
			return nil
		}

		res, err := deps.service.Create(ctx, creatorID.String(), task.CreateTaskRequest{
			Title:    "Draft quarterly goals",
			Priority: "MEDIUM",
		})

		assert.NoError(t, err)
		assert.Nil(t, res.AssigneeID)
	})

	t.Run("negative malformed creator id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "not-a-uuid", task.CreateTaskRequest{
			Title:    "Prepare onboarding checklist",
			Priority: "LOW",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative due date in the past", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		past := time.Now().Add(-time.Hour).Format(time.RFC3339)

		_, err := deps.service.Create(ctx, creatorID.String(), task.CreateTaskRequest{
			Title:      "Prepare onboarding checklist",
			Priority:   "HIGH",
			AssigneeID: &assigneeStr,
			DueDate:    &past,
		})

		assert.ErrorIs(t, err, taskerrors.ErrDueDateNotFuture)
	})

	t.Run("negative assignee missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.users.resolveFn = func(ctx context.Context, userID string) (access.Identity, error) {
			return access.Identity{}, usererrors.ErrUserNotFound
		}

		_, err := deps.service.Create(ctx, creatorID.String(), task.CreateTaskRequest{
			Title:      "Prepare onboarding checklist",
			Priority:   "HIGH",
			AssigneeID: &assigneeStr,
		})

		assert.ErrorIs(t, err, taskerrors.ErrAssigneeNotFound)
	})

	t.Run("negative assignee inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.users.resolveFn = func(ctx context.Context, userID string) (access.Identity, error) {
			return access.Identity{ID: userID, Role: access.RoleEmployee, IsActive: false}, nil
		}

		_, err := deps.service.Create(ctx, creatorID.String(), task.CreateTaskRequest{
			Title:      "Prepare onboarding checklist",
			Priority:   "HIGH",
			AssigneeID: &assigneeStr,
		})

		assert.ErrorIs(t, err, taskerrors.ErrAssigneeInactive)
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	assigneeID := uuid.New()

	existing := func() *task.Task {
		assignee := assigneeID
		return &task.Task{
			ID:          taskID,
			Title:       "Prepare onboarding checklist",
			Status:      task.StatusTodo,
			Priority:    task.PriorityMedium,
			CreatedByID: uuid.New(),
			AssigneeID:  &assignee,
		}
	}

	t.Run("success forward transition enqueues event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return existing(), nil
		}

		expectTx(t, deps.sqlMock, true)

		next := "IN_PROGRESS"
		res, err := deps.service.Update(ctx, allowAll(), taskID.String(), task.UpdateTaskRequest{
			Status: &next,
		})

		assert.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", res.Status)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "task_status_changed", deps.outbox.created[0].EventType)
		assert.Equal(t, taskID.String(), deps.outbox.created[0].AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success same status does not enqueue", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return existing(), nil
		}

		expectTx(t, deps.sqlMock, true)

		same := "TODO"
		_, err := deps.service.Update(ctx, allowAll(), taskID.String(), task.UpdateTaskRequest{
			Status: &same,
		})

		assert.NoError(t, err)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative illegal transition", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return existing(), nil
		}

		next := "DONE"
		_, err := deps.service.Update(ctx, allowAll(), taskID.String(), task.UpdateTaskRequest{
			Status: &next,
		})

		assert.ErrorIs(t, err, taskerrors.ErrInvalidTransition)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative blocked task cannot resume", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			blocked := existing()
			blocked.Status = task.StatusBlocked
			return blocked, nil
		}

		next := "IN_PROGRESS"
		_, err := deps.service.Update(ctx, allowAll(), taskID.String(), task.UpdateTaskRequest{
			Status: &next,
		})

		assert.ErrorIs(t, err, taskerrors.ErrInvalidTransition)
	})

	t.Run("negative scoped caller touching other fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return existing(), nil
		}

		next := "IN_PROGRESS"
		title := "Renamed"
		_, err := deps.service.Update(ctx, scopedTo(assigneeID.String()), taskID.String(), task.UpdateTaskRequest{
			Status: &next,
			Title:  &title,
		})

		assert.ErrorIs(t, err, taskerrors.ErrFieldNotPermitted)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative scoped caller cannot change priority", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			started := existing()
			started.Status = task.StatusInProgress
			return started, nil
		}
		deps.repo.updateFn = func(ctx context.Context, tk *task.Task) error {
			t.Fatal("rejected update must not reach the repository")
			return nil
		}

		next := "DONE"
		priority := "HIGH"
		_, err := deps.service.Update(ctx, scopedTo(assigneeID.String()), taskID.String(), task.UpdateTaskRequest{
			Status:   &next,
			Priority: &priority,
		})

		assert.ErrorIs(t, err, taskerrors.ErrFieldNotPermitted)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("success scoped caller status only", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return existing(), nil
		}

		expectTx(t, deps.sqlMock, true)

		next := "IN_PROGRESS"
		res, err := deps.service.Update(ctx, scopedTo(assigneeID.String()), taskID.String(), task.UpdateTaskRequest{
			Status: &next,
		})

		assert.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", res.Status)
	})

	t.Run("negative scoped caller on another task", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return existing(), nil
		}

		next := "IN_PROGRESS"
		_, err := deps.service.Update(ctx, scopedTo(uuid.New().String()), taskID.String(), task.UpdateTaskRequest{
			Status: &next,
		})

		assert.ErrorIs(t, err, taskerrors.ErrNotOwner)
	})

	t.Run("negative task not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		next := "IN_PROGRESS"
		_, err := deps.service.Update(ctx, allowAll(), uuid.New().String(), task.UpdateTaskRequest{
			Status: &next,
		})

		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestTaskService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success scoped caller filtered to own tasks", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ownerID := uuid.New().String()

		deps.repo.findAllFn = func(ctx context.Context, filter task.ListFilter) ([]task.Task, int64, error) {
			assert.Equal(t, ownerID, filter.AssigneeID)
			return []task.Task{}, 0, nil
		}

		_, _, err := deps.service.GetAll(ctx, scopedTo(ownerID), task.ListTasksQuery{Page: 1, PageSize: 10})

		assert.NoError(t, err)
	})

	t.Run("success scope overrides requested assignee filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ownerID := uuid.New().String()

		deps.repo.findAllFn = func(ctx context.Context, filter task.ListFilter) ([]task.Task, int64, error) {
			assert.Equal(t, ownerID, filter.AssigneeID)
			return nil, 0, nil
		}

		_, _, err := deps.service.GetAll(ctx, scopedTo(ownerID), task.ListTasksQuery{
			AssigneeID: uuid.New().String(),
			Page:       1,
			PageSize:   10,
		})

		assert.NoError(t, err)
	})
}

func TestTaskService_Comments(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	assigneeID := uuid.New()
	authorID := uuid.New()

	t.Run("success add and list in order", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			assignee := assigneeID
			return &task.Task{ID: taskID, AssigneeID: &assignee, Status: task.StatusTodo}, nil
		}
		deps.repo.createCommentFn = func(ctx context.Context, c *task.Comment) error {
			assert.Equal(t, taskID, c.TaskID)
			assert.Equal(t, authorID, c.AuthorID)
			c.ID = uuid.New()
			return nil
		}

		res, err := deps.service.AddComment(ctx, allowAll(), taskID.String(), authorID.String(), task.AddCommentRequest{
			Body: "Looks good so far",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Looks good so far", res.Body)
	})

	t.Run("negative scoped caller commenting on another task", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			assignee := assigneeID
			return &task.Task{ID: taskID, AssigneeID: &assignee}, nil
		}

		_, err := deps.service.AddComment(ctx, scopedTo(uuid.New().String()), taskID.String(), authorID.String(), task.AddCommentRequest{
			Body: "Hello",
		})

		assert.ErrorIs(t, err, taskerrors.ErrNotOwner)
	})
}
