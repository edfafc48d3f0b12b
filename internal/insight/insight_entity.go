package insight

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mohammed4122002/workflow-pro-backend/internal/report"
)

// InsightCacheEntry stores a successful generation verbatim. Entries are
// immutable, a changed snapshot set produces a different key.
type InsightCacheEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Key             string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_insight_cache_key" json:"key"`
	Type            report.Type     `gorm:"type:varchar(20);not null" json:"type"`
	RangeFrom       *time.Time      `gorm:"type:date" json:"rangeFrom"`
	RangeTo         *time.Time      `gorm:"type:date" json:"rangeTo"`
	SnapshotIDsHash string          `gorm:"type:varchar(64);not null" json:"snapshotIdsHash"`
	Data            json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (InsightCacheEntry) TableName() string {
	return "ai_insight_cache"
}
