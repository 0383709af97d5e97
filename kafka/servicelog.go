package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/models"
)

// ServiceLogSink ships per-request audit entries to Kafka. Log shipping
// is fire-and-forget on an async producer: the request path never waits
// on the broker, and delivery errors are only logged.
type ServiceLogSink struct {
	producer sarama.AsyncProducer
	topic    string
	service  string
	logger   *zap.Logger
}

func InitServiceLogSink(service string, logger *zap.Logger) (*ServiceLogSink, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Return.Errors = true

	brokers := []string{getEnv("KAFKA_BROKER", "localhost:9092")}

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create service log producer: %w", err)
	}

	sink := &ServiceLogSink{
		producer: producer,
		topic:    getEnv("SERVICE_LOG_TOPIC", "service_logs"),
		service:  service,
		logger:   logger,
	}

	go func() {
		for err := range producer.Errors() {
			logger.Warn("Service log delivery failed", zap.Error(err))
		}
	}()

	logger.Info("Service log sink initialized", zap.String("topic", sink.topic))
	return sink, nil
}

// Log enqueues one audit entry. Drops the entry instead of blocking when
// the producer's input buffer is full.
func (s *ServiceLogSink) Log(traceID, endpoint, method string, statusCode int, message string) {
	entry := models.ServiceLog{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		Service:    s.service,
		Endpoint:   endpoint,
		HTTPMethod: method,
		StatusCode: statusCode,
		Message:    message,
		TraceID:    traceID,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("Failed to marshal service log entry", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(data),
	}

	select {
	case s.producer.Input() <- msg:
	default:
		s.logger.Warn("Service log buffer full, entry dropped", zap.String("endpoint", endpoint))
	}
}

func (s *ServiceLogSink) Close() error {
	return s.producer.Close()
}
