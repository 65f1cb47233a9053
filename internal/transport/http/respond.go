package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
)

type itemResponse struct {
	ProductID int64           `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderResponse struct {
	OrderID      string          `json:"orderId"`
	Value        decimal.Decimal `json:"value"`
	CreationDate time.Time       `json:"creationDate"`
	Items        []itemResponse  `json:"items"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]itemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return orderResponse{
		OrderID:      order.ID,
		Value:        order.Value,
		CreationDate: order.CreationDate,
		Items:        items,
	}
}

// respondError переводит доменную ошибку в HTTP-статус. Причина ошибки
// хранилища уходит только в лог, в тело ответа — общее сообщение.
func respondError(c *gin.Context, logger *log.Entry, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, domain.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, gin.H{"error": "order already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
