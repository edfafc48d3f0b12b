package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/events"
	"github.com/mohammed4122002/workflow-pro-backend/internal/messaging/kafka"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
	taskerrors "github.com/mohammed4122002/workflow-pro-backend/internal/task/errors"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, creatorID string, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, decision access.Decision, query ListTasksQuery) ([]TaskResponse, int64, error)
	GetByID(ctx context.Context, decision access.Decision, id string) (TaskResponse, error)
	Update(ctx context.Context, decision access.Decision, id string, req UpdateTaskRequest) (TaskResponse, error)
	AddComment(ctx context.Context, decision access.Decision, taskID, authorID string, req AddCommentRequest) (CommentResponse, error)
	GetComments(ctx context.Context, decision access.Decision, taskID string) ([]CommentResponse, error)
}

// UserDirectory is the slice of the user service tasks need for
// assignee validation.
type UserDirectory interface {
	ResolveIdentity(ctx context.Context, userID string) (access.Identity, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  UserDirectory
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, users UserDirectory, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, users: users, outbox: outbox}
}

func (s *service) Create(ctx context.Context, creatorID string, req CreateTaskRequest) (TaskResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	creatorUUID, err := uuid.Parse(creatorID)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("creator id")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	// Tasks may start unassigned; the assignee check only runs when one
	// is given.
	var assigneeID *uuid.UUID
	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *req.AssigneeID); err != nil {
			return TaskResponse{}, err
		}
		parsed, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("assignee_id")
		}
		assigneeID = &parsed
	}

	t := &Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusTodo,
		Priority:    Priority(req.Priority),
		CreatedByID: creatorUUID,
		AssigneeID:  assigneeID,
		DueDate:     dueDate,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		l.Error("failed to create task", zap.Error(err))
		return TaskResponse{}, err
	}

	fields := []zap.Field{
		zap.String("task_id", t.ID.String()),
		zap.String("created_by", creatorID),
	}
	if assigneeID != nil {
		fields = append(fields, zap.String("assignee_id", assigneeID.String()))
	}
	l.Info("task created", fields...)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, decision access.Decision, query ListTasksQuery) ([]TaskResponse, int64, error) {
	filter := ListFilter{
		Q:          query.Q,
		Status:     query.Status,
		Priority:   query.Priority,
		AssigneeID: query.AssigneeID,
		Page:       query.Page,
		Limit:      query.PageSize,
	}
	if decision.Scoped() {
		filter.AssigneeID = decision.OwnerID
	}

	tasks, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, decision access.Decision, id string) (TaskResponse, error) {
	t, err := s.findTask(ctx, decision, id)
	if err != nil {
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, decision access.Decision, id string, req UpdateTaskRequest) (TaskResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	t, err := s.findTask(ctx, decision, id)
	if err != nil {
		return TaskResponse{}, err
	}

	// Self-scoped callers may only move status. The request is rejected
	// whole, not partially applied.
	if decision.Scoped() && len(req.RestrictedFields()) > 0 {
		return TaskResponse{}, taskerrors.ErrFieldNotPermitted
	}

	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return TaskResponse{}, err
		}
		t.DueDate = dueDate
	}

	current := ""
	if t.AssigneeID != nil {
		current = t.AssigneeID.String()
	}
	if req.AssigneeID != nil && *req.AssigneeID != current {
		if err := s.checkAssignee(ctx, *req.AssigneeID); err != nil {
			return TaskResponse{}, err
		}
		parsed, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("assignee_id")
		}
		t.AssigneeID = &parsed
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Priority != nil {
		t.Priority = Priority(*req.Priority)
	}

	fromStatus := t.Status
	statusChanged := false
	if req.Status != nil {
		next := Status(*req.Status)
		if !CanTransition(t.Status, next) {
			return TaskResponse{}, taskerrors.ErrInvalidTransition
		}
		statusChanged = next != t.Status
		t.Status = next
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, t); err != nil {
		l.Error("failed to update task", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	if statusChanged {
		if err := s.enqueueStatusChanged(ctx, tx, t, fromStatus); err != nil {
			l.Error("task status outbox persist failed", zap.String("task_id", id), zap.Error(err))
			return TaskResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	if statusChanged {
		l.Info("task status changed",
			zap.String("task_id", id),
			zap.String("from", string(fromStatus)),
			zap.String("to", string(t.Status)),
		)
	}

	return mapToResponse(*t), nil
}

func (s *service) AddComment(ctx context.Context, decision access.Decision, taskID, authorID string, req AddCommentRequest) (CommentResponse, error) {
	t, err := s.findTask(ctx, decision, taskID)
	if err != nil {
		return CommentResponse{}, err
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return CommentResponse{}, apperror.InvalidField("author id")
	}

	c := &Comment{
		TaskID:   t.ID,
		AuthorID: authorUUID,
		Body:     req.Body,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return CommentResponse{}, err
	}

	return mapCommentToResponse(*c), nil
}

func (s *service) GetComments(ctx context.Context, decision access.Decision, taskID string) ([]CommentResponse, error) {
	if _, err := s.findTask(ctx, decision, taskID); err != nil {
		return nil, err
	}

	comments, err := s.repo.FindCommentsByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	resp := make([]CommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = mapCommentToResponse(c)
	}

	return resp, nil
}

// findTask loads the row and enforces the caller's scope. A row the
// caller cannot touch is Forbidden, not NotFound: the id was valid.
func (s *service) findTask(ctx context.Context, decision access.Decision, id string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskerrors.ErrTaskNotFound
		}
		return nil, err
	}

	owner := ""
	if t.AssigneeID != nil {
		owner = t.AssigneeID.String()
	}
	if !decision.PermitsOwner(owner) {
		return nil, taskerrors.ErrNotOwner
	}

	return t, nil
}

func (s *service) checkAssignee(ctx context.Context, assigneeID string) error {
	identity, err := s.users.ResolveIdentity(ctx, assigneeID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
			return taskerrors.ErrAssigneeNotFound
		}
		return err
	}

	if !identity.IsActive {
		return taskerrors.ErrAssigneeInactive
	}

	return nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, t *Task, from Status) error {
	assigneeID := ""
	if t.AssigneeID != nil {
		assigneeID = t.AssigneeID.String()
	}
	event := events.TaskStatusChangedEvent{
		EventType:  "task_status_changed",
		TaskID:     t.ID.String(),
		AssigneeID: assigneeID,
		FromStatus: string(from),
		ToStatus:   string(t.Status),
		ChangedBy:  contextutil.GetUserID(ctx),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "task",
		AggregateID:   t.ID.String(),
		EventType:     event.EventType,
		Topic:         events.TaskStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	due, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, taskerrors.ErrInvalidDueDate
	}

	if !due.After(time.Now()) {
		return nil, taskerrors.ErrDueDateNotFuture
	}

	return &due, nil
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedByID: t.CreatedByID.String(),
		CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if t.AssigneeID != nil {
		assignee := t.AssigneeID.String()
		resp.AssigneeID = &assignee
	}
	if t.DueDate != nil {
		formatted := t.DueDate.Format(time.RFC3339)
		resp.DueDate = &formatted
	}
	return resp
}

func mapCommentToResponse(c Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		TaskID:    c.TaskID.String(),
		AuthorID:  c.AuthorID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
