package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisherWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	p := NewLogPublisher(logger)
	p.Publish(context.Background(), Event{
		Action:    ActionDeviceRegistered,
		SubjectID: "1001",
		Outcome:   OutcomeSuccess,
	})
	require.NoError(t, p.Close())

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "audit", record["msg"])
	assert.Equal(t, string(ActionDeviceRegistered), record["action"])
	assert.Equal(t, "1001", record["subject_id"])
	assert.Equal(t, OutcomeSuccess, record["outcome"])
}

func TestFromRequestContextDefaultsTimestamp(t *testing.T) {
	event := FromRequestContext(context.Background(), Event{Action: ActionIPBlocked})
	assert.False(t, event.At.IsZero())
	assert.Empty(t, event.SubjectID)
}

func TestNewKafkaPublisherRequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{}, slog.Default())
	assert.Error(t, err)
}
