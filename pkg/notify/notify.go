// Package notify fans out the aftermath of a successful API write: bump the
// write counter, ask the refresher for a new snapshot, and announce the
// change on the output topic. Handlers call it once after the gateway write
// succeeds and never wait on the refetch.
package notify

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/protea/pkg/kafka"
	"github.com/Ramsey-B/protea/pkg/metrics"
	"github.com/Ramsey-B/protea/pkg/snapshot"
	ctxutil "github.com/Ramsey-B/protea/pkg/context"
)

// Notifier announces record changes made through the API
type Notifier struct {
	refresher *snapshot.Refresher
	producer  *kafka.Producer
	logger    ectologger.Logger
}

// NewNotifier creates a notifier. The producer may be nil when publishing is
// disabled; refresh triggering still happens.
func NewNotifier(refresher *snapshot.Refresher, producer *kafka.Producer, logger ectologger.Logger) *Notifier {
	return &Notifier{
		refresher: refresher,
		producer:  producer,
		logger:    logger,
	}
}

// RecordChanged reports a successful write to the given table
func (n *Notifier) RecordChanged(ctx context.Context, table, op, id string) {
	metrics.RecordWritesTotal.WithLabelValues(table, op).Inc()
	n.refresher.Trigger()

	if n.producer == nil {
		return
	}
	evt := &kafka.RecordChangeEvent{
		Table: table,
		Op:    op,
		ID:    id,
		User:  ctxutil.GetUser(ctx),
	}
	if err := n.producer.Publish(ctx, evt); err != nil {
		// Publishing is best effort; the write already committed.
		n.logger.WithContext(ctx).WithError(err).Error("failed to publish record change event")
	}
}
