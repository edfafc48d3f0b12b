package task

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusBlocked    Status = "BLOCKED"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// CanTransition encodes the lifecycle. Staying put and moving to
// BLOCKED are always legal; forward motion only along
// TODO -> IN_PROGRESS -> DONE.
func CanTransition(from, to Status) bool {
	if to == from || to == StatusBlocked {
		return true
	}
	if from == StatusTodo && to == StatusInProgress {
		return true
	}
	if from == StatusInProgress && to == StatusDone {
		return true
	}
	return false
}

// Task rows keep the creator for auditing. The assignee is nullable,
// a task can sit unassigned in the backlog.
type Task struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string     `gorm:"column:title;type:varchar(255);not null;index"`
	Description *string    `gorm:"column:description;type:text"`
	Status      Status     `gorm:"column:status;type:varchar(20);not null;default:TODO"`
	Priority    Priority   `gorm:"column:priority;type:varchar(10);not null;index"`
	CreatedByID uuid.UUID  `gorm:"column:created_by_id;type:uuid;not null;index"`
	AssigneeID  *uuid.UUID `gorm:"column:assignee_id;type:uuid;index"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}

type Comment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TaskID    uuid.UUID `gorm:"column:task_id;type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;not null"`
	Body      string    `gorm:"column:body;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Comment) TableName() string {
	return "task_comments"
}
