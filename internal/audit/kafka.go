package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

const defaultTopic = "vcgate.audit"

// KafkaPublisher delivers audit events to a Kafka topic. Records are keyed by
// subject id so one principal's trail stays ordered within a partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaPublisher(cfg KafkaConfig, logger *slog.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	topic := cfg.Topic
	if topic == "" {
		topic = defaultTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.LeaderAck()),
		kgo.DisableIdempotentWrite(),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(10*time.Second),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit kafka client: %w", err)
	}

	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

// Publish buffers the event for delivery in the background.
func (p *KafkaPublisher) Publish(_ context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode audit event", "error", err, "action", event.Action)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.SubjectID),
		Value: value,
	}
	// Detached context: the event must outlive the request that produced it.
	p.client.Produce(context.Background(), record, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("audit delivery failed",
				"topic", r.Topic,
				"action", event.Action,
				"error", err,
			)
		}
	})
}

func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("audit publisher closed with unflushed events", "error", err)
	}
	p.client.Close()
	return nil
}

// LogPublisher writes audit events to the structured log. Used when no Kafka
// brokers are configured so the trail is never silently dropped.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	p.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"subject_id", event.SubjectID,
		"request_id", event.RequestID,
		"client_ip", event.ClientIP,
		"outcome", event.Outcome,
		"detail", event.Detail,
	)
}

func (p *LogPublisher) Close() error { return nil }
