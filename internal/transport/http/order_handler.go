package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
	"github.com/vladislavdragonenkov/orders-api/internal/metrics"
	"github.com/vladislavdragonenkov/orders-api/internal/service/orders"
)

// OrderHandler обрабатывает HTTP-запросы к /orders.
type OrderHandler struct {
	svc     *orders.Service
	metrics *metrics.HTTPMetrics
	logger  *log.Entry
}

// NewOrderHandler конструирует handler заказов. metrics может быть nil.
func NewOrderHandler(svc *orders.Service, m *metrics.HTTPMetrics, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.WithField("component", "order-handler")
	}
	return &OrderHandler{
		svc:     svc,
		metrics: m,
		logger:  logger,
	}
}

// Create обрабатывает POST /orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var in orders.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) {
			h.metrics.OrderConflict()
		}
		respondError(c, h.logger, err)
		return
	}

	h.metrics.OrderCreated()
	c.JSON(http.StatusCreated, gin.H{
		"message": "order created successfully",
		"order":   toOrderResponse(order),
	})
}

// Get обрабатывает GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// List обрабатывает GET /orders/list.
func (h *OrderHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, order := range list {
		result = append(result, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, result)
}

// Update обрабатывает PUT /orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	var in orders.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), c.Param("id"), in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.metrics.OrderUpdated()
	c.JSON(http.StatusOK, gin.H{"message": "order updated successfully"})
}

// Delete обрабатывает DELETE /orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.metrics.OrderDeleted()
	c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully"})
}
