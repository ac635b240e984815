package util

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"

	"lotusaroma/pkg/logger"
	"lotusaroma/pkg/metrics"
	"lotusaroma/storefront-service/internal/app/storefront/config"
)

// ErrPublisherUnavailable - breaker разомкнут, сообщение не отправлялось
var ErrPublisherUnavailable = errors.New("kafka publisher unavailable")

// messageWriter - часть kafka.Writer, нужная продюсеру
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer отправляет доменные события витрины в топик storefront_events.
// Перед брокером стоит circuit breaker: пока Kafka недоступна, запросы
// не ждут таймаута записи.
type KafkaProducer struct {
	writer  messageWriter
	topic   string
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewKafkaProducer создает producer для brokers ["host:port"]
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // один товар - одна партиция
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}

	return newKafkaProducer(writer, topic, breakerSettings(topic))
}

func newKafkaProducer(writer messageWriter, topic string, settings gobreaker.Settings) *KafkaProducer {
	return &KafkaProducer{
		writer:  writer,
		topic:   topic,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func breakerSettings(topic string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "kafka:" + topic,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.KafkaBreakerState.WithLabelValues(config.ServiceName, topic).Set(float64(to))
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Kafka circuit breaker state changed")
		},
	}
}

// PublishMessage отправляет сообщение; key задает партицию
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(config.ServiceName, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, message)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			timer.Error("breaker_open")
			return ErrPublisherUnavailable
		}
		timer.Error("write_failed")
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
