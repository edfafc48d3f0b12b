package events

import "time"

const TaskStatusChangedTopic = "workflow.task.status_changed.v1"

type TaskStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	TaskID     string    `json:"task_id"`
	AssigneeID string    `json:"assignee_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
