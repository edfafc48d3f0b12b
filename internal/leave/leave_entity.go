package leave

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Type string

const (
	TypeAnnual Type = "ANNUAL"
	TypeSick   Type = "SICK"
	TypeUnpaid Type = "UNPAID"
	TypeOther  Type = "OTHER"
)

type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	FromDate    time.Time  `gorm:"column:from_date;type:date;not null"`
	ToDate      time.Time  `gorm:"column:to_date;type:date;not null"`
	Type        Type       `gorm:"column:type;type:varchar(20);not null"`
	Reason      *string    `gorm:"column:reason;type:text"`
	Status      Status     `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	DecidedByID *uuid.UUID `gorm:"column:decided_by_id;type:uuid"`
	DecidedAt   *time.Time `gorm:"column:decided_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
