// Package subscriber consumes recorded sales from JetStream and logs a receipt for each of them.
package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/abgdnv/musicshop/pkg/config"
	"github.com/abgdnv/musicshop/pkg/messaging/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

const tracerName = "receipts"

// ackableMsg is the part of jetstream.Msg the handler needs.
type ackableMsg interface {
	Data() []byte
	Subject() string
	Ack() error
	Term() error
}

// Start creates the durable consumer and runs subscriberCfg.Workers workers until ctx is done.
// onReady is called once the consumer exists; it may be nil.
func Start(ctx context.Context, js jetstream.JetStream, subscriberCfg config.SubscriberConfig, logger *slog.Logger, onReady func()) error {
	cfg := jetstream.ConsumerConfig{
		FilterSubject: subscriberCfg.Subject,
		Durable:       subscriberCfg.Consumer,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	consumer, err := js.CreateOrUpdateConsumer(ctx, subscriberCfg.Stream, cfg)
	if err != nil {
		return err
	}
	if onReady != nil {
		onReady()
	}
	batch := max(subscriberCfg.Batch, 1)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < subscriberCfg.Workers; i++ {
		g.Go(func() error {
			return runWorker(gCtx, consumer, batch, subscriberCfg.Timeout, subscriberCfg.Interval, logger.With("worker", i))
		})
	}
	return g.Wait()
}

// runWorker fetches messages from the consumer and hands them to handleMessage.
func runWorker(ctx context.Context, consumer jetstream.Consumer, batchSize int, timeout, interval time.Duration, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			batch, err := consumer.Fetch(batchSize, jetstream.FetchMaxWait(timeout))
			if err != nil {
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				logger.Error("failed to fetch messages", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(interval):
				}
				continue
			}
			for msg := range batch.Messages() {
				handleMessage(ctx, msg, logger)
			}
			if err := batch.Error(); err != nil && !errors.Is(err, nats.ErrTimeout) {
				logger.Warn("fetch finished with error", "error", err)
			}
		}
	}
}

// handleMessage logs the receipt of one recorded sale.
// Payloads that cannot be decoded are terminated so they are not redelivered.
func handleMessage(ctx context.Context, msg ackableMsg, logger *slog.Logger) {
	if msg == nil {
		logger.Error("received nil message")
		return
	}
	var event events.SaleRecordedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error("failed to unmarshal message", "error", err, "subject", msg.Subject())
		if err := msg.Term(); err != nil {
			logger.Error("failed to terminate message", "error", err)
		}
		return
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, event.Carrier)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "receipt")
	defer span.End()

	logger.InfoContext(ctx, "receipt",
		slog.String("subject", msg.Subject()),
		slog.String("sale_id", event.SaleID.String()),
		slog.String("customer_id", event.CustomerID.String()),
		slog.String("customer", event.CustomerName),
		slog.Int("items", len(event.Items)),
		slog.String("total", "$"+event.Total.StringFixed(2)),
		slog.String("created_at", event.CreatedAt.Format(time.RFC3339)))

	if err := msg.Ack(); err != nil {
		logger.ErrorContext(ctx, "failed to ack message", "error", err)
	}
}
