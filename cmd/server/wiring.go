package main

import (
	"context"
	"fmt"
	"log/slog"

	"statusgate/internal/platform/config"
	"statusgate/internal/platform/kafka"
	"statusgate/internal/platform/postgres"
	"statusgate/internal/platform/redis"
	"statusgate/internal/status/queue"
	"statusgate/internal/status/service"
	"statusgate/internal/status/store/pending"
	"statusgate/internal/status/store/resolved"
)

// consumerWorkers is the in-memory queue's concurrency.
const consumerWorkers = 4

type storeSet struct {
	resolved service.ResolvedStore
	pending  service.PendingStore
	// health pings the durable backend; nil for the memory stores.
	health  func(ctx context.Context) error
	closers []func()
}

func (s *storeSet) Health(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}

func (s *storeSet) Close() {
	for _, c := range s.closers {
		c()
	}
}

func buildStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storeSet, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &storeSet{
			resolved: resolved.NewRedisStore(client.Client, resolved.WithKeyPrefix(cfg.Redis.KeyPrefix+"resolved:")),
			pending:  pending.NewRedisStore(client.Client, pending.WithKeyPrefix(cfg.Redis.KeyPrefix+"pending:")),
			health:   client.Health,
			closers:  []func(){func() { _ = client.Close() }},
		}, nil
	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		tables := postgres.Tables{Resolved: cfg.Store.ResolvedTable, Pending: cfg.Store.PendingTable}
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, err
		}
		return &storeSet{
			resolved: resolved.NewPostgresStore(pool, tables.Resolved),
			pending:  pending.NewPostgresStore(pool, tables.Pending),
			health:   pool.Ping,
			closers:  []func(){pool.Close},
		}, nil
	default:
		return &storeSet{
			resolved: resolved.NewInMemoryStore(),
			pending:  pending.NewInMemoryStore(),
		}, nil
	}
}

// queueSet pairs the bulk publisher with the loop that drains it.
type queueSet struct {
	publisher queue.Publisher
	run       func(ctx context.Context) error
	closers   []func()
}

func (q *queueSet) Close() {
	for _, c := range q.closers {
		c()
	}
}

func buildQueue(ctx context.Context, cfg *config.Config, processor *queue.Processor, log *slog.Logger) (*queueSet, error) {
	if cfg.Queue.Backend != config.BackendKafka {
		mq := queue.NewMemoryQueue(cfg.Queue.Buffer)
		return &queueSet{
			publisher: mq,
			run: func(ctx context.Context) error {
				return mq.Run(ctx, consumerWorkers, processor)
			},
		}, nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	if err := kafka.EnsureTopic(ctx, producer, cfg.Kafka, log); err != nil {
		producer.Close()
		return nil, err
	}
	consumerClient, err := kafka.NewConsumer(cfg.Kafka)
	if err != nil {
		producer.Close()
		return nil, err
	}
	consumer := queue.NewKafkaConsumer(consumerClient, processor, log)
	return &queueSet{
		publisher: queue.NewKafkaPublisher(producer, cfg.Kafka.Topic),
		run:       consumer.Run,
		closers: []func(){
			consumerClient.Close,
			producer.Close,
		},
	}, nil
}
