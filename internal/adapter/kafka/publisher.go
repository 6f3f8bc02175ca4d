package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
)

// publishBatchSize is how many records accumulate before a WriteMessages
// call. Large enough to amortize round trips against a ~300k row roster.
const publishBatchSize = 500

// Publisher duplicates converted records onto a Kafka topic for downstream
// consumers. It implements pipeline.Sink; the lookup file stays the primary
// contract and publishing rides alongside it.
type Publisher struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
	batch  []kafkago.Message
	sent   int
}

// NewPublisher creates a producer for the given brokers and topic.
func NewPublisher(brokers []string, topic string, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, clock: clock, logger: logger}
}

// Open is a no-op; the underlying writer connects lazily.
func (p *Publisher) Open(_ context.Context) error {
	return nil
}

// Write buffers one record, flushing a full batch to the brokers.
func (p *Publisher) Write(ctx context.Context, rec domain.OutputRecord) error {
	msg, err := serializeToMessage(rec, p.clock.Now())
	if err != nil {
		return err
	}

	p.batch = append(p.batch, msg)
	if len(p.batch) < publishBatchSize {
		return nil
	}
	return p.flush(ctx)
}

// Commit flushes the remaining partial batch.
func (p *Publisher) Commit(ctx context.Context) error {
	if err := p.flush(ctx); err != nil {
		return err
	}
	p.logger.Info("records published", "topic", p.writer.Topic, "records", p.sent)
	return nil
}

// Abort drops whatever is still buffered. Messages already accepted by the
// brokers stay published; Kafka has no unsend.
func (p *Publisher) Abort() {
	p.batch = nil
}

// Close releases the underlying writer's connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) flush(ctx context.Context) error {
	if len(p.batch) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, p.batch...); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	p.sent += len(p.batch)
	p.batch = p.batch[:0]
	return nil
}

// serializeToMessage marshals an output record into a Kafka message keyed
// by tail number.
func serializeToMessage(rec domain.OutputRecord, processedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.TailNumber),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("faa-registry")},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
