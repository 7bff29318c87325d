package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"eventures/pkg/logger"
)

// Handler delivers one decoded notification
type Handler interface {
	Handle(ctx context.Context, notification *BookingNotification) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, notification *BookingNotification) error

func (f HandlerFunc) Handle(ctx context.Context, notification *BookingNotification) error {
	return f(ctx, notification)
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	Heartbeat            time.Duration
	RetryBackoff         time.Duration
	MaxProcessingTime    time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              brokers,
		GroupID:              groupID,
		Topics:               []string{topic},
		SessionTimeout:       30 * time.Second,
		Heartbeat:            3 * time.Second,
		RetryBackoff:         100 * time.Millisecond,
		MaxProcessingTime:    5 * time.Minute,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

// Consumer reads booking notifications from a consumer group and passes them
// to a Handler
type Consumer struct {
	group   sarama.ConsumerGroup
	config  *ConsumerConfig
	handler Handler
	logger  *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(cfg *ConsumerConfig, handler Handler) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = cfg.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = cfg.Heartbeat
	saramaConfig.Consumer.Retry.Backoff = cfg.RetryBackoff
	saramaConfig.Consumer.MaxProcessingTime = cfg.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if cfg.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}
	return newConsumerWithGroup(group, cfg, handler), nil
}

func newConsumerWithGroup(group sarama.ConsumerGroup, cfg *ConsumerConfig, handler Handler) *Consumer {
	return &Consumer{
		group:   group,
		config:  cfg,
		handler: handler,
		logger:  logger.GetDefault(),
	}
}

// Start launches numWorkers consumer loops. They run until Stop is called or
// ctx is cancelled.
func (c *Consumer) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, c.cancel = context.WithCancel(ctx)

	c.logger.Info("Starting notification consumer",
		"workers", numWorkers,
		"topics", c.config.Topics,
		"group", c.config.GroupID,
	)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}
}

func (c *Consumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		workerID: workerID,
		handler:  c.handler,
		config:   c.config,
		logger:   c.logger,
	}

	for {
		if err := c.group.Consume(ctx, c.config.Topics, handler); err != nil {
			c.logger.ErrorWithContext(ctx, "Error consuming notifications", err, map[string]interface{}{
				"worker": workerID,
			})
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
		if ctx.Err() != nil {
			c.logger.Info("Notification worker shutting down", "worker", workerID)
			return
		}
	}
}

func (c *Consumer) handleErrors() {
	for err := range c.group.Errors() {
		c.logger.Error("Consumer group error", "error", err.Error())
	}
}

// Stop cancels the workers, waits for them and closes the group
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.logger.Info("Notification consumer stopped")
	return nil
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	workerID int
	handler  Handler
	config   *ConsumerConfig
	logger   *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.logger.Debug("Consumer group session started", "worker", h.workerID)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.logger.Debug("Consumer group session ended", "worker", h.workerID)
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			err := h.processMessage(session.Context(), message)
			if err != nil && session.Context().Err() != nil {
				// session is ending; leave the offset so the next owner redelivers it
				h.logger.WarnWithContext(session.Context(), "Notification interrupted by shutdown", err, map[string]interface{}{
					"worker":    h.workerID,
					"partition": message.Partition,
					"offset":    message.Offset,
				})
				return nil
			}
			if err != nil {
				h.logger.ErrorWithContext(session.Context(), "Error processing notification", err, map[string]interface{}{
					"worker":    h.workerID,
					"partition": message.Partition,
					"offset":    message.Offset,
				})
			}
			// undecodable or undeliverable messages are not redelivered
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	notification, err := FromJSON(message.Value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return h.executeWithRetry(ctx, notification)
}

func (h *groupHandler) executeWithRetry(ctx context.Context, notification *BookingNotification) error {
	maxRetries := h.config.MaxRetries
	backoff := h.config.RetryBackoffDuration

	for attempt := 0; ; attempt++ {
		err := h.handler.Handle(ctx, notification)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return fmt.Errorf("notification %s failed after %d attempts: %w", notification.ID, attempt+1, err)
		}

		// exponential backoff
		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// LogHandler records each notification through the application logger in
// place of sending mail
type LogHandler struct {
	logger *logger.Logger
}

func NewLogHandler(l *logger.Logger) *LogHandler {
	if l == nil {
		l = logger.GetDefault()
	}
	return &LogHandler{logger: l}
}

func (h *LogHandler) Handle(ctx context.Context, n *BookingNotification) error {
	h.logger.InfoWithContext(ctx, "booking confirmation", map[string]interface{}{
		"type":        string(n.Type),
		"subject":     n.Subject(),
		"booking_id":  n.BookingID.String(),
		"booking_ref": n.BookingRef,
		"customer_id": n.CustomerID.String(),
		"email":       n.Email,
		"total":       n.Total,
		"currency":    n.Currency,
	})
	return nil
}
