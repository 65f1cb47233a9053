package domain

import (
	"errors"
	"fmt"
)

// ErrValidation — базовая ошибка валидации входных данных; конкретные ошибки
// полей оборачивают её, чтобы транспорт мог отличить 400 через errors.Is.
var ErrValidation = errors.New("invalid order payload")

var (
	// Ошибка отсутствующего номера заказа.
	ErrOrderNumberRequired = fmt.Errorf("%w: orderNumber is required", ErrValidation)
	// Ошибка отсутствующей итоговой суммы.
	ErrTotalValueRequired = fmt.Errorf("%w: totalValue is required", ErrValidation)
	// Ошибка отсутствующей даты создания.
	ErrCreationDateRequired = fmt.Errorf("%w: creationDate is required", ErrValidation)
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = fmt.Errorf("%w: items are required", ErrValidation)
	// Ошибка нечислового идентификатора товара в позиции.
	ErrProductIDInvalid = fmt.Errorf("%w: itemId must be numeric", ErrValidation)
	// Ошибка неразборчивой даты создания.
	ErrCreationDateInvalid = fmt.Errorf("%w: creationDate must be a valid date-time", ErrValidation)

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateOrder сигнализирует о коллизии идентификатора при создании.
	ErrDuplicateOrder = errors.New("order already exists")

	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound возвращается хранилищем учётных записей.
	ErrUserNotFound = errors.New("user not found")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsValidation проверяет, относится ли ошибка к классу ошибок валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
