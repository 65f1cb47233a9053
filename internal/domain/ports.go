package domain

import (
	"context"
	"time"
)

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями атомарно.
	// Возвращает ErrDuplicateOrder, если запись с таким ID уже существует.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает все заказы вместе с позициями.
	List(ctx context.Context) ([]Order, error)
	// Update заменяет сумму, дату и весь набор позиций существующего заказа.
	// Идентификатор не меняется. Возвращает ErrOrderNotFound, если заказа нет.
	Update(ctx context.Context, order Order) error
	// Delete удаляет заказ и все его позиции или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id string) error
}

// CredentialStore — подключаемый источник учётных записей для Auth Guard.
// Возвращает ErrUserNotFound, если пользователя нет.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (Credential, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
