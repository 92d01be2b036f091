package pkg

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// FollowEventProducer publishes follow-graph events drained from the
// outbox table.
type FollowEventProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewFollowEventProducer(cfg KafkaConfig) *FollowEventProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &FollowEventProducer{writer: w, topic: cfg.Topic}
}

func (p *FollowEventProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Send keys by follower id so one user's events stay ordered within a
// partition.
func (p *FollowEventProducer) Send(ctx context.Context, followerID uint64, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(followerID, 10)),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}
