package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-api/internal/auth"
	"github.com/vladislavdragonenkov/orders-api/internal/metrics"
	"github.com/vladislavdragonenkov/orders-api/internal/service/orders"
)

// NewRouter собирает HTTP API сервиса заказов.
// Мутирующие маршруты защищены bearer-токеном; чтение открыто.
func NewRouter(svc *orders.Service, guard *auth.Guard, m *metrics.HTTPMetrics, logger *log.Entry) *gin.Engine {
	if logger == nil {
		logger = log.WithField("component", "http-router")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics(m))

	orderHandler := NewOrderHandler(svc, m, logger)
	loginHandler := NewLoginHandler(guard, logger)
	authRequired := RequireAuth(guard)

	router.POST("/login", loginHandler.Login)

	router.GET("/orders/list", orderHandler.List)
	router.GET("/orders/:id", orderHandler.Get)
	router.POST("/orders", authRequired, orderHandler.Create)
	router.PUT("/orders/:id", authRequired, orderHandler.Update)
	router.DELETE("/orders/:id", authRequired, orderHandler.Delete)

	return router
}

// requestMetrics записывает длительность и статус каждого запроса.
func requestMetrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
