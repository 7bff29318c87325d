package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"eventures/pkg/logger"
)

// Publisher hands booking notifications to whatever delivers them
type Publisher interface {
	Publish(ctx context.Context, notification *BookingNotification) error
	Close() error
}

// ProducerConfig contains configuration for the Kafka publisher
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultProducerConfig returns a producer configuration for brokers and topic
func DefaultProducerConfig(brokers []string, topic string) *ProducerConfig {
	return &ProducerConfig{
		Brokers:          brokers,
		Topic:            topic,
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// NewSaramaConfig builds the sarama producer settings for cfg
func NewSaramaConfig(cfg *ProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = cfg.RequiredAcks
	saramaConfig.Producer.Compression = cfg.CompressionType
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Idempotent = cfg.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes

	// idempotent writes require a single in-flight request per connection
	if cfg.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

// KafkaPublisher publishes booking notifications to a Kafka topic
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaPublisher connects a sync producer to the configured brokers
func NewKafkaPublisher(cfg *ProducerConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.GetDefault(),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, notification *BookingNotification) error {
	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(notification.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	p.logger.InfoWithContext(ctx, "Booking notification published", map[string]interface{}{
		"topic":       p.topic,
		"partition":   partition,
		"offset":      offset,
		"type":        string(notification.Type),
		"booking_ref": notification.BookingRef,
	})
	return nil
}

func createHeaders(notification *BookingNotification) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		{Key: []byte("booking_id"), Value: []byte(notification.BookingID.String())},
		{Key: []byte("customer_id"), Value: []byte(notification.CustomerID.String())},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("eventures-bookings")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// NoopPublisher only logs; used when Kafka is disabled
type NoopPublisher struct {
	logger *logger.Logger
}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{logger: logger.GetDefault()}
}

func (p *NoopPublisher) Publish(ctx context.Context, notification *BookingNotification) error {
	p.logger.DebugContext(ctx, "Kafka disabled, notification not published",
		"type", string(notification.Type),
		"booking_ref", notification.BookingRef,
	)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
