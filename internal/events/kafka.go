package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workouts"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
	}
}

func (p *KafkaPublisher) WorkoutCreated(ctx context.Context, w workouts.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "events.kafka.workoutCreated")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("workout.id", w.ID),
		attribute.String("kafka.topic", p.topic),
	)

	payload, err := json.Marshal(NewWorkoutCreated(w))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(w.ID),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(EventTypeWorkoutCreated)}},
	}); err != nil {
		return fmt.Errorf("write message to %s: %w", p.topic, err)
	}

	log.Tracef("workout created event published: %s", w.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
