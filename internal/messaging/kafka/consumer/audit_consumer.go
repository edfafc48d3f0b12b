package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/mohammed4122002/workflow-pro-backend/internal/bootstrap"
	"github.com/mohammed4122002/workflow-pro-backend/internal/events"
)

// ConsumeWorkflowAudit turns published workflow events into audit log
// entries. Decode failures are committed and skipped; replaying a
// malformed payload will never make it parse.
func ConsumeWorkflowAudit(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.workflow_audit")
	log.Info("workflow audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("workflow audit consumer stopped")
				return
			}
			log.Error("fetch workflow audit message failed", zap.Error(err))
			continue
		}

		entry, ok := auditEntryFor(msg)
		if !ok {
			log.Warn("skipping undecodable workflow event",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, entry)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit workflow audit message failed", zap.Error(err))
		}
	}
}

func auditEntryFor(msg kafkago.Message) (bootstrap.AuditLog, bool) {
	switch msg.Topic {
	case events.TaskStatusChangedTopic:
		var e events.TaskStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, false
		}
		return bootstrap.AuditLog{
			Action:  "TASK_STATUS_CHANGED",
			Message: "Task moved to a new status",
			Meta: map[string]any{
				"task_id":     e.TaskID,
				"assignee_id": e.AssigneeID,
				"from":        e.FromStatus,
				"to":          e.ToStatus,
				"changed_by":  e.ChangedBy,
				"occurred_at": e.OccurredAt,
			},
		}, true

	case events.LeaveDecidedTopic:
		var e events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, false
		}
		return bootstrap.AuditLog{
			Action:  "LEAVE_DECIDED",
			Message: "Leave request received a final decision",
			Meta: map[string]any{
				"leave_request_id": e.LeaveRequestID,
				"user_id":          e.UserID,
				"status":           e.Status,
				"decided_by":       e.DecidedBy,
				"occurred_at":      e.OccurredAt,
			},
		}, true
	}

	return bootstrap.AuditLog{}, false
}
