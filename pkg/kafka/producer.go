package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Ramsey-B/protea/pkg/tracing"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// RecordChangeEvent announces a successful API write so downstream consumers
// and other replicas can react without polling.
type RecordChangeEvent struct {
	Table     string    `json:"table"`
	Op        string    `json:"op"` // "upsert" | "insert" | "update" | "delete"
	ID        string    `json:"id"`
	User      string    `json:"user,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Tracing
	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// Producer publishes record-change events
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// NewProducer creates a new record-change producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		// Allow Kafka to auto-create the topic in dev environments when it
		// doesn't exist yet.
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Publish publishes a record-change event
func (p *Producer) Publish(ctx context.Context, evt *RecordChangeEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.Publish")
	defer span.End()

	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", p.topic),
		attribute.String("messaging.operation", "publish"),
		attribute.String("record.table", evt.Table),
		attribute.String("record.id", evt.ID),
	)

	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.TraceID = tracing.GetTraceID(ctx)
	evt.SpanID = tracing.GetSpanID(ctx)

	data, err := json.Marshal(evt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal event")
		return fmt.Errorf("failed to marshal record change event: %w", err)
	}

	// Key by table + id so changes to one record stay ordered.
	key := fmt.Sprintf("%s:%s", evt.Table, evt.ID)

	headers := []kafka.Header{
		{Key: "table", Value: []byte(evt.Table)},
		{Key: "op", Value: []byte(evt.Op)},
	}
	if traceparent := tracing.GetTraceParent(ctx); traceparent != "" {
		headers = append(headers, kafka.Header{Key: "traceparent", Value: []byte(traceparent)})
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   data,
		Headers: headers,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to publish event")
		p.logger.WithContext(ctx).WithError(err).Errorf("failed to publish record change event to %s", p.topic)
		return err
	}

	span.SetStatus(codes.Ok, "event published")
	return nil
}
