package notifications

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventures/pkg/logger"
)

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string { return "member" }
func (s *fakeSession) GenerationID() int32 { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {}
func (s *fakeSession) Commit() {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) { s.marked = append(s.marked, msg.Offset) }
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string { return "booking-notifications" }
func (c *fakeClaim) Partition() int32 { return 0 }
func (c *fakeClaim) InitialOffset() int64 { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func testHandler(h Handler) *groupHandler {
	return &groupHandler{
		handler: h,
		config:  &ConsumerConfig{MaxRetries: 2, RetryBackoffDuration: time.Millisecond},
		logger:  logger.NewWithWriter(&bytes.Buffer{}, "error"),
	}
}

func TestConsumeClaim_DeliversAndMarks(t *testing.T) {
	n := sampleNotification()
	payload, err := n.ToJSON()
	require.NoError(t, err)

	var got []*BookingNotification
	h := testHandler(HandlerFunc(func(_ context.Context, n *BookingNotification) error {
		got = append(got, n)
		return nil
	}))

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- &sarama.ConsumerMessage{Value: payload, Offset: 7}
	claim.messages <- &sarama.ConsumerMessage{Value: []byte("not json"), Offset: 8}
	close(claim.messages)

	session := &fakeSession{ctx: context.Background()}
	require.NoError(t, h.ConsumeClaim(session, claim))

	require.Len(t, got, 1)
	assert.Equal(t, n.BookingRef, got[0].BookingRef)
	assert.Equal(t, []int64{7, 8}, session.marked)
}

func TestConsumeClaim_LeavesInterruptedMessageUnmarked(t *testing.T) {
	payload, err := sampleNotification().ToJSON()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	h := testHandler(HandlerFunc(func(context.Context, *BookingNotification) error {
		calls++
		cancel()
		return errors.New("smtp: connection closed")
	}))
	h.config.RetryBackoffDuration = time.Hour

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 1)}
	claim.messages <- &sarama.ConsumerMessage{Value: payload, Offset: 11}
	close(claim.messages)

	session := &fakeSession{ctx: ctx}
	require.NoError(t, h.ConsumeClaim(session, claim))

	assert.Equal(t, 1, calls)
	assert.Empty(t, session.marked, "offset stays uncommitted for redelivery")
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		h := testHandler(HandlerFunc(func(context.Context, *BookingNotification) error {
			calls++
			if calls < 3 {
				return errors.New("smtp unavailable")
			}
			return nil
		}))

		require.NoError(t, h.executeWithRetry(context.Background(), sampleNotification()))
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		h := testHandler(HandlerFunc(func(context.Context, *BookingNotification) error {
			calls++
			return boom
		}))

		err := h.executeWithRetry(context.Background(), sampleNotification())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h := testHandler(HandlerFunc(func(context.Context, *BookingNotification) error {
			return errors.New("boom")
		}))
		h.config.RetryBackoffDuration = time.Hour

		err := h.executeWithRetry(ctx, sampleNotification())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(logger.NewWithWriter(&buf, "info"))

	require.NoError(t, h.Handle(context.Background(), sampleNotification()))
	assert.Contains(t, buf.String(), "booking confirmation")
	assert.Contains(t, buf.String(), "EVT-20260301-ABC123")
	assert.Contains(t, buf.String(), "jane@example.com")
}
