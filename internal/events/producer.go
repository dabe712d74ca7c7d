package events

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"go-backoffice/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Producer publishes enveloped events to a kafka topic. Writes are
// buffered through an inbox channel and flushed by a single goroutine, so
// request handlers never block on the broker.
type Producer struct {
	w        *kafka.Writer
	inbox    chan kafka.Message
	closeCh  chan struct{}
	closed   atomic.Bool
	producer string
}

func NewProducer(brokers []string, topic, producerName string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:    make(chan kafka.Message, buf),
		closeCh:  make(chan struct{}),
		producer: producerName,
	}
}

// Start runs the flush goroutine until ctx is cancelled, then drains the
// buffered inbox and closes the writer. The inbox channel itself is never
// closed: a Publish racing with shutdown would panic on a closed channel.
// Late publishes are dropped via the closed flag instead.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.closed.Store(true)
				for {
					select {
					case m := <-p.inbox:
						if err := p.w.WriteMessages(context.Background(), m); err != nil {
							logger.L().WithError(err).Warn("kafka: flush on shutdown failed")
						}
					default:
						_ = p.w.Close()
						return
					}
				}
			case m := <-p.inbox:
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					logger.L().WithError(err).Warn("kafka: publish failed")
				}
			}
		}
	}()
}

// Publish implements Publisher. Marshal failures are logged and dropped;
// the ledger in the database remains the source of truth.
func (p *Producer) Publish(eventType, correlationID string, payload interface{}) {
	if p.closed.Load() {
		logger.L().WithField("event_type", eventType).Warn("kafka: producer closed, dropping event")
		return
	}

	env, err := NewEnvelope(eventType, p.producer, correlationID, payload)
	if err != nil {
		logger.L().WithError(err).Warn("kafka: dropping unmarshalable event")
		return
	}
	value, err := json.Marshal(env)
	if err != nil {
		logger.L().WithError(err).Warn("kafka: dropping unmarshalable envelope")
		return
	}

	select {
	case p.inbox <- kafka.Message{Key: []byte(correlationID), Value: value, Time: time.Now()}:
	default:
		logger.L().WithField("event_type", eventType).Warn("kafka: inbox full, dropping event")
	}
}

// WaitClosed blocks until the flush goroutine has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
