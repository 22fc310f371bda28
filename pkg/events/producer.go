// Package events publishes reservation lifecycle events to Kafka. Publishing
// is best effort: a broker outage never fails the request that triggered the
// event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"salas/pkg/logger"
	"salas/pkg/model"
)

const (
	EventReservationCreated = "reservation.created"
	EventReservationDeleted = "reservation.deleted"

	headerEventID   = "event-id"
	headerEventType = "event-type"
	headerSource    = "source"
)

// ReservationEvent is the payload written for every lifecycle event.
type ReservationEvent struct {
	EventType  string    `json:"event_type"`
	ID         string    `json:"id"`
	Day        string    `json:"day"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Room       string    `json:"room"`
	Area       string    `json:"area,omitempty"`
	Attendance int       `json:"attendance"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer wraps a kafka-go writer. A nil Producer is valid and drops all
// events, so callers never need to branch on whether Kafka is configured.
type Producer struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger
}

func NewProducer(brokers []string, topic, source string, log *logger.Logger) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // Hash by key for per-reservation ordering
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("Kafka writer error", "detail", msg)
		}),
	}

	return &Producer{writer: writer, source: source, log: log}
}

func (p *Producer) ReservationCreated(ctx context.Context, r *model.Reservation) {
	p.publish(ctx, EventReservationCreated, r)
}

func (p *Producer) ReservationDeleted(ctx context.Context, r *model.Reservation) {
	p.publish(ctx, EventReservationDeleted, r)
}

func (p *Producer) publish(ctx context.Context, eventType string, r *model.Reservation) {
	if p == nil {
		return
	}

	event := ReservationEvent{
		EventType:  eventType,
		ID:         r.ID,
		Day:        r.Day.UTC().Format("2006-01-02"),
		StartTime:  r.StartClock(),
		EndTime:    r.EndClock(),
		Room:       r.Room,
		Area:       r.Area,
		Attendance: r.Attendance,
		OccurredAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode reservation event",
			"event_type", eventType,
			"reservation_id", r.ID,
			"error", err,
		)
		return
	}

	msg := kafka.Message{
		Key:   []byte(r.ID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(uuid.NewString())},
			{Key: headerEventType, Value: []byte(eventType)},
			{Key: headerSource, Value: []byte(p.source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", r.ID,
			"error", err,
		)
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
