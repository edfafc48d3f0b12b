package events

import "time"

const LeaveDecidedTopic = "workflow.leave.decided.v1"

type LeaveDecidedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID string    `json:"leave_request_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	DecidedBy      string    `json:"decided_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
