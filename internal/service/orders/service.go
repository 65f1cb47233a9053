package orders

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
	"github.com/vladislavdragonenkov/orders-api/internal/messaging/kafka"
)

// Service реализует операции над заказами поверх репозитория.
// Валидация и нормализация выполняются до любого обращения к хранилищу.
type Service struct {
	repo   domain.OrderRepository
	outbox domain.OutboxRepository
	logger *log.Entry
}

// NewService конструирует сервис заказов. outbox может быть nil —
// тогда события жизненного цикла не публикуются.
func NewService(repo domain.OrderRepository, outbox domain.OutboxRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders-service")
	}
	return &Service{
		repo:   repo,
		outbox: outbox,
		logger: logger,
	}
}

// Create валидирует и нормализует входной заказ, сохраняет его атомарно
// и возвращает нормализованную запись как подтверждение.
func (s *Service) Create(ctx context.Context, in OrderInput) (domain.Order, error) {
	order, err := Normalize(in)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return domain.Order{}, err
	}

	s.enqueueEvent(ctx, kafka.EventTypeOrderCreated, order)
	return order, nil
}

// Get возвращает заказ вместе с позициями.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

// List возвращает все заказы вместе с позициями.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// Update заменяет сумму, дату и полный набор позиций заказа id.
// Идентификатор в пути имеет приоритет над orderNumber из тела.
// Пустой список позиций допустим: замена на ноль позиций оставляет
// заказ без позиций.
func (s *Service) Update(ctx context.Context, id string, in OrderInput) (domain.Order, error) {
	// orderNumber из тела не обязателен при обновлении: идентификатор
	// приходит из пути и не может быть изменён.
	if in.OrderNumber == "" {
		in.OrderNumber = id
	}

	order, err := NormalizeReplacement(in)
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = id

	if err := s.repo.Update(ctx, order); err != nil {
		return domain.Order{}, err
	}

	s.enqueueEvent(ctx, kafka.EventTypeOrderUpdated, order)
	return order, nil
}

// Delete удаляет заказ и его позиции.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.enqueueEvent(ctx, kafka.EventTypeOrderDeleted, domain.Order{ID: id})
	return nil
}

// enqueueEvent кладёт событие жизненного цикла в outbox. Ошибка постановки
// не валит запрос: заказ уже сохранён, событие доедет при следующей записи
// или потеряется с warning в логе.
func (s *Service) enqueueEvent(ctx context.Context, eventType kafka.EventType, order domain.Order) {
	if s.outbox == nil {
		return
	}

	event := kafka.NewOrderEvent(eventType, order.ID, order.Value.String(), len(order.Items))
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to marshal order event")
		return
	}

	if _, err := s.outbox.Enqueue(ctx, domain.OutboxMessage{
		AggregateType: kafka.AggregateTypeOrder,
		AggregateID:   order.ID,
		EventType:     string(eventType),
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   order.ID,
			"event_type": eventType,
		}).Warn("failed to enqueue order event")
	}
}
