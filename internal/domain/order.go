package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem представляет одну позицию заказа. Позиции не имеют собственного
// идентификатора: они целиком принадлежат заказу и заменяются вместе с ним.
type OrderItem struct {
	// ProductID — числовой идентификатор товара.
	ProductID int64
	// Quantity — количество единиц товара.
	Quantity int32
	// Price — цена за единицу.
	Price decimal.Decimal
}

// Order агрегирует заголовок заказа и его позиции.
type Order struct {
	// ID задаётся клиентом и неизменяем после создания.
	ID string
	// Value — итоговая сумма заказа. Передаётся клиентом как есть и не
	// сверяется с суммой позиций (поведение источника сохранено).
	Value decimal.Decimal
	// CreationDate — момент создания заказа по данным клиента.
	CreationDate time.Time
	// Items хранит позиции в порядке поступления.
	Items []OrderItem
}

// Credential — учётная запись для входа: имя пользователя и bcrypt-хеш пароля.
type Credential struct {
	Username     string
	PasswordHash string
}
