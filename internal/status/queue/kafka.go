package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
)

var _ Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher produces one record per subject, keyed by the subject so
// every message for a number lands on the same partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(client *kgo.Client, topic string) *KafkaPublisher {
	return &KafkaPublisher{client: client, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, subject string) error {
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(subject),
		Value: []byte(subject),
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", p.topic, err)
	}
	return nil
}

type committer interface {
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
}

// KafkaConsumer polls the group, resolves each record and commits it only
// after resolution returns. Partitions are processed concurrently; records
// within a partition run in order.
type KafkaConsumer struct {
	client    *kgo.Client
	committer committer
	processor *Processor
	logger    *slog.Logger
}

func NewKafkaConsumer(client *kgo.Client, processor *Processor, logger *slog.Logger) *KafkaConsumer {
	return &KafkaConsumer{client: client, committer: client, processor: processor, logger: logger}
}

func (c *KafkaConsumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.ErrorContext(ctx, "kafka fetch failed",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})

		var wg sync.WaitGroup
		fetches.EachPartition(func(p kgo.FetchTopicPartition) {
			if len(p.Records) == 0 {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.handlePartition(ctx, p)
			}()
		})
		wg.Wait()
	}
}

func (c *KafkaConsumer) handlePartition(ctx context.Context, p kgo.FetchTopicPartition) {
	for i, record := range p.Records {
		// Uncommitted records are redelivered to the next group member.
		if ctx.Err() != nil {
			c.logger.InfoContext(ctx, "stopping partition before remaining records",
				"topic", p.Topic,
				"partition", p.Partition,
				"skipped", len(p.Records)-i,
			)
			return
		}
		// an in-flight resolution finishes even during shutdown
		c.processor.Handle(context.WithoutCancel(ctx), string(record.Value))
		if err := c.committer.CommitRecords(context.WithoutCancel(ctx), record); err != nil {
			c.logger.ErrorContext(ctx, "failed to commit kafka record",
				"topic", record.Topic,
				"partition", record.Partition,
				"offset", record.Offset,
				"error", err,
			)
		}
	}
}
