package events

import (
	"context"
	"encoding/json"
	"time"

	"goodwill-valuation/config"
	"goodwill-valuation/internal/dto"
	"goodwill-valuation/internal/model"
	"goodwill-valuation/pkg/logger"
	"goodwill-valuation/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	ValuationCreated EventType = "valuation_created"
	ValuationUpdated EventType = "valuation_updated"
	ValuationDeleted EventType = "valuation_deleted"
)

type Event struct {
	Type       EventType             `json:"type"`
	OccurredAt time.Time             `json:"occurredAt"`
	Valuation  dto.ValuationResponse `json:"valuation"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes valuation lifecycle events to Kafka from a single
// background loop. Publish never blocks the request path.
type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *logger.Logger
	closeChan chan struct{}
	done      chan struct{}
}

func NewProducer(cfg config.Kafka, log *logger.Logger) (*Producer, error) {
	conn, err := kafka.Dial("tcp", cfg.Brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     cfg.Partitions,
		ReplicationFactor: 1,
	})
	if err != nil {
		log.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	p := newProducer(&kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.Hash{},
		Topic:    cfg.Topic,
	}, cfg.QueueSize, log)

	utils.GoSafe(log, p.eventLoop)
	return p, nil
}

func newProducer(writer KafkaWriter, queueSize int, log *logger.Logger) *Producer {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &Producer{
		writer:    writer,
		events:    make(chan Event, queueSize),
		logger:    log.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (p *Producer) Publish(eventType EventType, valuation *model.Valuation) {
	event := Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Valuation:  dto.NewValuationResponse(valuation),
	}

	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("valuation_id", valuation.ID.String()),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			// flush whatever is already queued
			for {
				select {
				case event := <-p.events:
					p.sendEvent(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("valuation_id", event.Valuation.ID),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Valuation.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("valuation_id", event.Valuation.ID),
		)
	}
}

// Close stops the loop after draining queued events, then closes the writer.
func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(EventType, *model.Valuation) {}

func (NoopPublisher) Close() {}
