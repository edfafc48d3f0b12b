package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeHRSummary   Type = "HR_SUMMARY"
	TypeTaskSummary Type = "TASK_SUMMARY"
	TypeFinSummary  Type = "FIN_SUMMARY"
)

func ValidType(t Type) bool {
	switch t {
	case TypeHRSummary, TypeTaskSummary, TypeFinSummary:
		return true
	}
	return false
}

// ReportSnapshot is append-only. A generated report is never updated,
// a fresh request produces a fresh row.
type ReportSnapshot struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Type      Type            `gorm:"type:varchar(20);not null;index" json:"type"`
	RangeFrom *time.Time      `gorm:"type:date" json:"rangeFrom"`
	RangeTo   *time.Time      `gorm:"type:date" json:"rangeTo"`
	Data      json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (ReportSnapshot) TableName() string {
	return "report_snapshots"
}
