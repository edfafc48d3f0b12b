package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammed4122002/workflow-pro-backend/internal/messaging/kafka"
)

func TestValidateOutboxEvent(t *testing.T) {
	valid := func() kafka.OutboxEvent {
		return kafka.OutboxEvent{
			ID:      "8f36c5d2-0f6a-4a3d-9f44-6c1f9a1a2b3c",
			Topic:   "workflow.task.status_changed.v1",
			Payload: []byte(`{"event_type":"task_status_changed"}`),
			Status:  kafka.OutboxStatusPending,
		}
	}

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(valid()))
	})

	t.Run("negative missing id", func(t *testing.T) {
		e := valid()
		e.ID = ""
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("negative missing topic", func(t *testing.T) {
		e := valid()
		e.Topic = ""
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("negative empty payload", func(t *testing.T) {
		e := valid()
		e.Payload = nil
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("negative unknown status", func(t *testing.T) {
		e := valid()
		e.Status = "queued"
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})
}
