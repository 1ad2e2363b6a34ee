package kafka

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/protea/pkg/metrics"
	"github.com/Ramsey-B/protea/pkg/tracing"
)

// ChangeHandler is invoked for every CDC change event. The payload carries
// the table, operation and row images; handlers that only care that
// something changed can ignore everything but the source table.
type ChangeHandler func(ctx context.Context, table string, payload *DebeziumPayload) error

// Consumer consumes one Debezium CDC topic and forwards change events to the
// handler.
type Consumer struct {
	reader  *kafka.Reader
	logger  ectologger.Logger
	handler ChangeHandler
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// NewConsumer creates a new CDC consumer for one table topic
func NewConsumer(cfg ConsumerConfig, logger ectologger.Logger, handler ChangeHandler) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.ConsumerGroup,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        500 * time.Millisecond,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader:  reader,
		logger:  logger,
		handler: handler,
	}
}

// Start begins consuming change events
func (c *Consumer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"topic": c.reader.Config().Topic,
	}).Info("CDC consumer started")
	return nil
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.reader.Close()
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			c.logger.WithContext(ctx).Info("CDC consumer loop stopping")
			return
		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled || err == io.EOF {
					return
				}
				c.logger.WithContext(ctx).WithError(err).Error("failed to fetch message")
				continue
			}

			c.processMessage(ctx, msg)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	ctx, span := tracing.StartSpan(ctx, "kafka.Consumer.processMessage")
	defer span.End()

	log := c.logger.WithContext(ctx).WithFields(map[string]any{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	// Tombstones follow Debezium delete events; nothing to do with them
	// since the delete event already triggered a refresh.
	if len(msg.Value) == 0 {
		c.commit(ctx, msg, log)
		return
	}

	envelope, err := ParseDebeziumMessage(msg.Value)
	if err != nil {
		// Commit anyway; a malformed event would wedge the group forever and
		// the next good event triggers the same refetch.
		log.WithError(err).Error("failed to parse CDC envelope")
		c.commit(ctx, msg, log)
		return
	}

	table := envelope.Payload.Source.Table
	metrics.ChangeEventsTotal.WithLabelValues(table, envelope.Payload.Op).Inc()

	if err := c.handler(ctx, table, &envelope.Payload); err != nil {
		log.WithError(err).Error("failed to handle change event (not committing)")
		return
	}

	c.commit(ctx, msg, log)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, log ectologger.Logger) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.WithError(err).Error("failed to commit message")
	}
}

// Health returns the consumer health status
func (c *Consumer) Health() bool {
	return c.reader != nil
}
