package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics содержит метрики HTTP API и операций над заказами.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec

	ordersCreated  prometheus.Counter
	ordersUpdated  prometheus.Counter
	ordersDeleted  prometheus.Counter
	orderConflicts prometheus.Counter
}

// NewHTTPMetrics создаёт и регистрирует метрики в default registerer.
func NewHTTPMetrics() *HTTPMetrics {
	return newHTTPMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newHTTPMetricsWithRegisterer(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &HTTPMetrics{
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orders_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_http_requests_total",
			Help: "Total number of HTTP requests grouped by method, route and status",
		}, []string{"method", "route", "status"}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_updated_total",
			Help: "Total number of orders updated",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		orderConflicts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_duplicate_conflicts_total",
			Help: "Total number of create attempts rejected by identifier collision",
		}),
	}
}

// ObserveRequest фиксирует длительность и статус одного HTTP-запроса.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// OrderCreated увеличивает счётчик созданных заказов.
func (m *HTTPMetrics) OrderCreated() {
	if m != nil {
		m.ordersCreated.Inc()
	}
}

// OrderUpdated увеличивает счётчик обновлённых заказов.
func (m *HTTPMetrics) OrderUpdated() {
	if m != nil {
		m.ordersUpdated.Inc()
	}
}

// OrderDeleted увеличивает счётчик удалённых заказов.
func (m *HTTPMetrics) OrderDeleted() {
	if m != nil {
		m.ordersDeleted.Inc()
	}
}

// OrderConflict фиксирует коллизию идентификатора при создании.
func (m *HTTPMetrics) OrderConflict() {
	if m != nil {
		m.orderConflicts.Inc()
	}
}

// register* прячут обработку AlreadyRegisteredError: повторная регистрация
// возвращает существующий collector вместо паники.
func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	counter := prometheus.NewCounter(opts)
	if err := registerer.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(prometheus.Counter); ok2 {
				return existing
			}
		}
	}
	return counter
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*prometheus.CounterVec); ok2 {
				return existing
			}
		}
	}
	return vec
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*prometheus.HistogramVec); ok2 {
				return existing
			}
		}
	}
	return vec
}
