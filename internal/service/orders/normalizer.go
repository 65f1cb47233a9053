package orders

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
)

// Форматы даты, принимаемые от клиента. Источник принимал любые даты,
// разбираемые конструктором Date; здесь список зафиксирован явно.
var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ItemID принимает в JSON как число, так и строку. Проверка на числовое
// значение выполняется при нормализации, а не при разборе JSON.
type ItemID string

func (i *ItemID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("itemId must be a string or a number")
	}
	*i = ItemID(n.String())
	return nil
}

// ItemInput — позиция заказа во внешнем представлении.
type ItemInput struct {
	ItemID       ItemID          `json:"itemId"`
	ItemQuantity int32           `json:"itemQuantity"`
	ItemValue    decimal.Decimal `json:"itemValue"`
}

// OrderInput — внешнее представление заказа (тело POST/PUT запроса).
// TotalValue — указатель, чтобы отличить отсутствующее поле от нуля.
type OrderInput struct {
	OrderNumber  string           `json:"orderNumber"`
	TotalValue   *decimal.Decimal `json:"totalValue"`
	CreationDate string           `json:"creationDate"`
	Items        []ItemInput      `json:"items"`
}

// Validate проверяет присутствие всех обязательных полей создаваемого
// заказа. Значения по умолчанию не подставляются.
func (in OrderInput) Validate() error {
	return in.validate(true)
}

func (in OrderInput) validate(requireItems bool) error {
	if strings.TrimSpace(in.OrderNumber) == "" {
		return domain.ErrOrderNumberRequired
	}
	if in.TotalValue == nil {
		return domain.ErrTotalValueRequired
	}
	if strings.TrimSpace(in.CreationDate) == "" {
		return domain.ErrCreationDateRequired
	}
	if requireItems && len(in.Items) == 0 {
		return domain.ErrItemsRequired
	}
	return nil
}

// Normalize превращает внешнее представление в нормализованную запись.
// Чистая трансформация: не обращается к хранилищу и ничего не мутирует.
func Normalize(in OrderInput) (domain.Order, error) {
	return normalize(in, true)
}

// NormalizeReplacement — как Normalize, но допускает пустой список позиций:
// обновление заменяет набор целиком, и пустая замена легальна.
func NormalizeReplacement(in OrderInput) (domain.Order, error) {
	return normalize(in, false)
}

func normalize(in OrderInput, requireItems bool) (domain.Order, error) {
	if err := in.validate(requireItems); err != nil {
		return domain.Order{}, err
	}

	creationDate, err := parseCreationDate(in.CreationDate)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for idx, item := range in.Items {
		productID, err := strconv.ParseInt(strings.TrimSpace(string(item.ItemID)), 10, 64)
		if err != nil {
			return domain.Order{}, fmt.Errorf("item[%d]: %w", idx, domain.ErrProductIDInvalid)
		}
		items = append(items, domain.OrderItem{
			ProductID: productID,
			Quantity:  item.ItemQuantity,
			Price:     item.ItemValue,
		})
	}

	return domain.Order{
		ID:           in.OrderNumber,
		Value:        *in.TotalValue,
		CreationDate: creationDate,
		Items:        items,
	}, nil
}

func parseCreationDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", raw, domain.ErrCreationDateInvalid)
}
