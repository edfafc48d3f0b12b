package leave

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
	leaveerrors "github.com/mohammed4122002/workflow-pro-backend/internal/leave/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/messaging/kafka"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, requesterID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, decision access.Decision, query ListLeavesQuery) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, decision access.Decision, id string) (LeaveResponse, error)
	Decide(ctx context.Context, deciderID, id string, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox}
}

func (s *service) Create(ctx context.Context, requesterID string, req CreateLeaveRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	from, _ := time.Parse(dateLayout, req.FromDate)
	to, _ := time.Parse(dateLayout, req.ToDate)

	if to.Before(from) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	// Midnight truncation so a request filed later today still counts.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if from.Before(today) {
		return LeaveResponse{}, leaveerrors.ErrFromDateInPast
	}

	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("requester id")
	}

	lr := &LeaveRequest{
		UserID:   requesterUUID,
		FromDate: from,
		ToDate:   to,
		Type:     Type(req.Type),
		Reason:   req.Reason,
		Status:   StatusPending,
	}

	if err := s.repo.Create(ctx, lr); err != nil {
		l.Error("failed to create leave request", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("leave request created",
		zap.String("leave_id", lr.ID.String()),
		zap.String("user_id", requesterID),
	)
	return mapToResponse(*lr), nil
}

func (s *service) GetAll(ctx context.Context, decision access.Decision, query ListLeavesQuery) ([]LeaveResponse, int64, error) {
	// A self-scoped caller asking for someone else's rows is refused
	// outright rather than silently narrowed.
	if decision.Scoped() && query.UserID != "" && query.UserID != decision.OwnerID {
		return nil, 0, leaveerrors.ErrNotOwner
	}

	filter := ListFilter{
		Status:   query.Status,
		Type:     query.Type,
		UserID:   query.UserID,
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

	resp := make([]LeaveResponse, len(rows))
	for i, lr := range rows {
		resp[i] = mapToResponse(lr)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, decision access.Decision, id string) (LeaveResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if !decision.PermitsOwner(lr.UserID.String()) {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}

	return mapToResponse(*lr), nil
}

// Decide settles a pending request. The status is terminal: a second
// decision, whatever its direction, conflicts.
func (s *service) Decide(ctx context.Context, deciderID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if lr.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	if req.Note != nil && *req.Note != "" {
		note := "[DECISION NOTE] " + *req.Note
		if lr.Reason != nil && *lr.Reason != "" {
			combined := *lr.Reason + " " + note
			lr.Reason = &combined
		} else {
			lr.Reason = &note
		}
	}

	deciderUUID, err := uuid.Parse(deciderID)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("decider id")
	}
	now := time.Now().UTC()
	lr.Status = Status(req.Decision)
	lr.DecidedByID = &deciderUUID
	lr.DecidedAt = &now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, lr); err != nil {
		l.Error("failed to decide leave request", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueDecided(ctx, tx, lr); err != nil {
		l.Error("leave decision outbox persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	l.Info("leave request decided",
		zap.String("leave_id", id),
		zap.String("status", string(lr.Status)),
		zap.String("decided_by", deciderID),
	)
	return mapToResponse(*lr), nil
}

func (s *service) enqueueDecided(ctx context.Context, tx *sql.Tx, lr *LeaveRequest) error {
	event := events.LeaveDecidedEvent{
		EventType:      "leave_decided",
		LeaveRequestID: lr.ID.String(),
		UserID:         lr.UserID.String(),
		Status:         string(lr.Status),
		DecidedBy:      lr.DecidedByID.String(),
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        lr.ID.String(),
		UserID:    lr.UserID.String(),
		FromDate:  lr.FromDate.Format(dateLayout),
		ToDate:    lr.ToDate.Format(dateLayout),
		Type:      string(lr.Type),
		Reason:    lr.Reason,
		Status:    string(lr.Status),
		CreatedAt: lr.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if lr.DecidedByID != nil {
		decidedBy := lr.DecidedByID.String()
		resp.DecidedByID = &decidedBy
	}
	if lr.DecidedAt != nil {
		decidedAt := lr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}
