package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
	"github.com/vladislavdragonenkov/orders-api/internal/service/outbox"
	"github.com/vladislavdragonenkov/orders-api/internal/storage/memory"
)

// recordingPublisher принимает сообщения и опционально проваливает
// первые failFirst попыток.
type recordingPublisher struct {
	mu        sync.Mutex
	published []domain.OutboxMessage
	failFirst int
	calls     int
}

func (p *recordingPublisher) Publish(msg domain.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.calls <= p.failFirst {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, msg)
	return nil
}

func (p *recordingPublisher) snapshot() (int, []domain.OutboxMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls, append([]domain.OutboxMessage(nil), p.published...)
}

func enqueue(t *testing.T, repo domain.OutboxRepository, eventType string) domain.OutboxMessage {
	t.Helper()

	msg, err := repo.Enqueue(context.Background(), domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "A1",
		EventType:     eventType,
		Payload:       []byte(`{}`),
	})
	require.NoError(t, err)
	return msg
}

func TestWorker_PublishesPending(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{})

	enqueue(t, repo, "order.created")
	enqueue(t, repo, "order.updated")

	worker.ProcessOnce(context.Background())

	_, published := publisher.snapshot()
	require.Len(t, published, 2)
	assert.Equal(t, "order.created", published[0].EventType)
	assert.Equal(t, "order.updated", published[1].EventType)

	pending, err := repo.PullPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWorker_RetriesTransientFailure(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{failFirst: 2}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{
		MaxAttempts:    3,
		RetryBaseDelay: 0,
	})

	enqueue(t, repo, "order.created")

	worker.ProcessOnce(context.Background())

	calls, published := publisher.snapshot()
	assert.Equal(t, 3, calls)
	require.Len(t, published, 1)

	pending, err := repo.PullPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWorker_MarksFailedAfterMaxAttempts(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{failFirst: 100}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{
		MaxAttempts:    2,
		RetryBaseDelay: 0,
	})

	enqueue(t, repo, "order.created")

	worker.ProcessOnce(context.Background())

	calls, published := publisher.snapshot()
	assert.Equal(t, 2, calls)
	assert.Empty(t, published)

	// Сообщение ушло из pending: статус failed, повторной доставки нет.
	pending, err := repo.PullPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

// Исчерпав попытки, worker отправляет сообщение в DLQ и помечает его failed.
func TestWorker_RoutesExhaustedToDLQ(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{failFirst: 100}
	dlq := &recordingPublisher{}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{
		MaxAttempts:    2,
		DLQPublisher:   dlq,
		RetryBaseDelay: 0,
	})

	msg := enqueue(t, repo, "order.created")

	worker.ProcessOnce(context.Background())

	_, deadLettered := dlq.snapshot()
	require.Len(t, deadLettered, 1)
	assert.Equal(t, msg.ID, deadLettered[0].ID)
	assert.Equal(t, "order.created", deadLettered[0].EventType)

	pending, err := repo.PullPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

// Недоступный DLQ не мешает пометить сообщение как failed.
func TestWorker_DLQFailureStillMarksFailed(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{failFirst: 100}
	dlq := &recordingPublisher{failFirst: 100}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{
		MaxAttempts:    1,
		DLQPublisher:   dlq,
		RetryBaseDelay: 0,
	})

	enqueue(t, repo, "order.created")

	worker.ProcessOnce(context.Background())

	pending, err := repo.PullPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWorker_EmptyBacklogIsNoop(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{})

	worker.ProcessOnce(context.Background())

	calls, _ := publisher.snapshot()
	assert.Zero(t, calls)
}

func TestWorker_CancelledContext(t *testing.T) {
	repo := memory.NewOutboxRepository()
	publisher := &recordingPublisher{}
	worker := outbox.NewWorker(repo, publisher, outbox.Options{})

	enqueue(t, repo, "order.created")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.ProcessOnce(ctx)

	calls, _ := publisher.snapshot()
	assert.Zero(t, calls)
}
