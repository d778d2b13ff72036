package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	// HTTP метрики
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Метрики базы данных
	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnsOpen     *prometheus.GaugeVec
	dbConnsInUse    *prometheus.GaugeVec
	dbConnsIdle     *prometheus.GaugeVec

	// Бизнес-метрики
	bookingsCreated   *prometheus.CounterVec
	bookingsCancelled *prometheus.CounterVec
	creditsIssued     *prometheus.CounterVec
	creditsSpent      *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		bookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: constLabels,
		}, []string{"class_type"}),

		bookingsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled",
			ConstLabels: constLabels,
		}, []string{"initiator"}),

		creditsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "credits_issued_total",
			Help:        "Total number of credits issued to profiles",
			ConstLabels: constLabels,
		}, []string{"transaction_type"}),

		creditsSpent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "credits_spent_total",
			Help:        "Total number of credits deducted from profiles",
			ConstLabels: constLabels,
		}, []string{"transaction_type"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBConnStats обновляет gauge'ы connection pool
func (m *Metrics) SetDBConnStats(db string, open, inUse, idle int) {
	m.dbConnsOpen.WithLabelValues(db).Set(float64(open))
	m.dbConnsInUse.WithLabelValues(db).Set(float64(inUse))
	m.dbConnsIdle.WithLabelValues(db).Set(float64(idle))
}

// IncBookingCreated инкрементирует счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(classType string) {
	m.bookingsCreated.WithLabelValues(classType).Inc()
}

// IncBookingCancelled инкрементирует счетчик отмененных бронирований
func (m *Metrics) IncBookingCancelled(initiator string) {
	m.bookingsCancelled.WithLabelValues(initiator).Inc()
}

// AddCreditsIssued учитывает начисленные кредиты
func (m *Metrics) AddCreditsIssued(transactionType string, amount int) {
	if amount > 0 {
		m.creditsIssued.WithLabelValues(transactionType).Add(float64(amount))
	}
}

// AddCreditsSpent учитывает списанные кредиты
func (m *Metrics) AddCreditsSpent(transactionType string, amount int) {
	if amount > 0 {
		m.creditsSpent.WithLabelValues(transactionType).Add(float64(amount))
	}
}
